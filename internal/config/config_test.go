package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{name: "valid duration", value: "90s", def: time.Minute, want: 90 * time.Second},
		{name: "invalid falls back to default", value: "ninety", def: time.Minute, want: time.Minute},
		{name: "unset falls back to default", value: "", def: 5 * time.Minute, want: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_DURATION"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			}
			if got := mustDuration(key, tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{name: "explicit true", value: "true", def: false, want: true},
		{name: "explicit false", value: "false", def: true, want: false},
		{name: "garbage falls back to default", value: "yep", def: true, want: true},
		{name: "unset falls back to default", value: "", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			}
			if got := mustBool(key, tt.def); got != tt.want {
				t.Errorf("mustBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "a", want: []string{"a"}},
		{name: "spaces and quotes", input: ` a , "b" , 'c' `, want: []string{"a", "b", "c"}},
		{name: "skips empties", input: "a,,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABNAP_BRIDGE_URL", "http://127.0.0.1:7341")
	t.Setenv("TABNAP_REDIS_ADDR", "localhost:6379")
	t.Setenv("TABNAP_REDIS_PASSWORD_REQUIRED", "false")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.HeartbeatInterval != 5*time.Minute {
		t.Errorf("HeartbeatInterval = %v, want 5m", cfg.HeartbeatInterval)
	}
	if cfg.ProcessingLease != 10*time.Minute {
		t.Errorf("ProcessingLease = %v, want 10m", cfg.ProcessingLease)
	}
	if cfg.BridgeURL != "http://127.0.0.1:7341" {
		t.Errorf("BridgeURL = %q", cfg.BridgeURL)
	}
}

func TestLoadRejectsShortHeartbeat(t *testing.T) {
	t.Setenv("TABNAP_BRIDGE_URL", "http://127.0.0.1:7341")
	t.Setenv("TABNAP_REDIS_ADDR", "localhost:6379")
	t.Setenv("TABNAP_REDIS_PASSWORD_REQUIRED", "false")
	t.Setenv("TABNAP_HEARTBEAT_INTERVAL", "5s")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should have panicked on sub-minute heartbeat")
		}
	}()
	Load()
}
