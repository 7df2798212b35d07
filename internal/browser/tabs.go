package browser

import "context"

// Tab is the identity of a browser tab as seen by the bridge.
type Tab struct {
	ID    int64  `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Tabs is the tab/window action surface the engine calls into. The
// production implementation talks to a local browser bridge over HTTP;
// tests substitute a fake.
type Tabs interface {
	// ActiveTab returns the currently focused tab.
	ActiveTab(ctx context.Context) (Tab, error)
	// OpenTab creates a new tab at the given URL.
	OpenTab(ctx context.Context, url string) error
	// CloseTab closes a tab by id.
	CloseTab(ctx context.Context, id int64) error
}
