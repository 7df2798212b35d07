package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tabnap/tabnap/internal/domain"
)

// Loader handles loading and parsing of a presets YAML file.
type Loader struct {
	filePath string
}

// NewLoader creates a presets loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads, parses and validates the presets file.
func (l *Loader) Load() ([]Definition, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse presets yaml: %w", err)
	}

	for i := range config.Presets {
		if err := validate(&config.Presets[i]); err != nil {
			return nil, fmt.Errorf("preset %d: %w", i, err)
		}
	}

	return config.Presets, nil
}

func validate(def *Definition) error {
	if def.ID == "" || def.Label == "" {
		return fmt.Errorf("%w: id and label are required", domain.ErrInvalidInput)
	}

	hasHours := def.Hours > 0
	hasAt := def.At != ""
	if hasHours == hasAt {
		return fmt.Errorf("%w: exactly one of hours or at must be set", domain.ErrInvalidInput)
	}
	if hasAt {
		if _, _, err := domain.ParseClock(def.At); err != nil {
			return err
		}
	}
	if def.Weekday != nil {
		if !hasAt {
			return fmt.Errorf("%w: weekday requires at", domain.ErrInvalidInput)
		}
		if *def.Weekday < 0 || *def.Weekday > 6 {
			return fmt.Errorf("%w: weekday %d out of range", domain.ErrInvalidInput, *def.Weekday)
		}
	}
	switch def.When {
	case "", whenMorning, whenAfternoon, whenEvening:
	default:
		return fmt.Errorf("%w: unknown window %q", domain.ErrInvalidInput, def.When)
	}
	for _, d := range def.HideOn {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: hideOn day %d out of range", domain.ErrInvalidInput, d)
		}
	}
	return nil
}
