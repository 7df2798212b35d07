package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tabnap/tabnap/internal/browser"
	"github.com/tabnap/tabnap/internal/engine"
	"github.com/tabnap/tabnap/internal/logger"
	"github.com/tabnap/tabnap/internal/sources/presets"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time     // for testing, defaults to time.Now
	AllowedHosts []string             // Host headers allowed to access the server
	AllowedCIDRS []string             // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Engine       *engine.Engine       // snooze scheduling engine
	Tabs         browser.Tabs         // browser bridge, active-tab lookup on snooze creation
	RedisClient  *redis.Client        // Redis client connection, readiness probe
	Presets      []presets.Definition // snooze preset definitions (built-in or YAML-loaded)
}

// Now resolves the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
