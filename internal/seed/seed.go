// Package seed loads the activity catalog the roster store starts from.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"mergington-activities/internal/entities"

	"gopkg.in/yaml.v3"
)

//go:embed activities.yaml
var defaultCatalog []byte

type catalogFile struct {
	Activities []activityEntry `yaml:"activities"`
}

type activityEntry struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// Default returns the built-in catalog.
func Default() ([]entities.Activity, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) ([]entities.Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog, keeping declaration order.
func Parse(data []byte) ([]entities.Activity, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]entities.Activity, 0, len(f.Activities))
	for _, e := range f.Activities {
		out = append(out, entities.Activity{
			Name:            e.Name,
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    e.Participants,
		}.Clone())
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that a catalog satisfies the roster invariants.
func Validate(catalog []entities.Activity) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: catalog has no activities", entities.ErrInvalidArgument)
	}

	names := make(map[string]struct{}, len(catalog))
	for _, a := range catalog {
		if a.Name == "" {
			return fmt.Errorf("%w: activity name is required", entities.ErrInvalidArgument)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", entities.ErrInvalidArgument, a.Name)
		}
		names[a.Name] = struct{}{}

		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q max_participants must be positive", entities.ErrInvalidArgument, a.Name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return fmt.Errorf("%w: %q has %d participants, max %d",
				entities.ErrInvalidArgument, a.Name, len(a.Participants), a.MaxParticipants)
		}

		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: %q lists %s twice", entities.ErrInvalidArgument, a.Name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
