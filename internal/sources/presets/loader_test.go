package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "presets.yaml")

	yamlContent := `---
presets:
  - id: coffee
    label: Coffee break
    hours: 0.25
  - id: lunch
    label: After lunch
    at: "13:30"
  - id: weekly
    label: Fri 4 PM
    at: "16:00"
    weekday: 5
    hideOn: [5]
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	defs, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(defs) != 3 {
		t.Fatalf("Load() returned %d presets, want 3", len(defs))
	}
	if defs[2].Weekday == nil || *defs[2].Weekday != 5 {
		t.Errorf("Load() weekly preset weekday = %v, want 5", defs[2].Weekday)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/presets.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing label",
			content: `presets:
  - id: broken
    hours: 1
`,
		},
		{
			name: "both hours and at",
			content: `presets:
  - id: broken
    label: Broken
    hours: 1
    at: "09:00"
`,
		},
		{
			name: "neither hours nor at",
			content: `presets:
  - id: broken
    label: Broken
`,
		},
		{
			name: "bad clock",
			content: `presets:
  - id: broken
    label: Broken
    at: "25:00"
`,
		},
		{
			name: "weekday without at",
			content: `presets:
  - id: broken
    label: Broken
    hours: 1
    weekday: 3
`,
		},
		{
			name: "weekday out of range",
			content: `presets:
  - id: broken
    label: Broken
    at: "09:00"
    weekday: 9
`,
		},
		{
			name: "unknown window",
			content: `presets:
  - id: broken
    label: Broken
    hours: 1
    when: nighttime
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yamlPath := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(yamlPath, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("Failed to create test YAML file: %v", err)
			}

			if _, err := NewLoader(yamlPath).Load(); err == nil {
				t.Error("Load() should reject invalid preset")
			}
		})
	}
}
