package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is a named scan preset: an extension allowlist plus exclude
// globs, loaded from a YAML file.
type Profile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Extensions  []string `yaml:"extensions"`
	Exclude     []string `yaml:"exclude"`
}

// LoadProfile reads a single profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	if profile.Name == "" {
		profile.Name = profileNameFromPath(path)
	}

	return &profile, nil
}

// LoadProfiles reads every .yaml/.yml profile under dir.
func LoadProfiles(dir string) ([]*Profile, error) {
	var profiles []*Profile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || (filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml") {
			return nil
		}

		profile, err := LoadProfile(path)
		if err != nil {
			return err
		}
		profiles = append(profiles, profile)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// FindProfile resolves a profile by name within dir, falling back to
// treating name as a file path.
func FindProfile(dir, name string) (*Profile, error) {
	if _, err := os.Stat(name); err == nil {
		return LoadProfile(name)
	}

	profiles, err := LoadProfiles(dir)
	if err != nil {
		return nil, err
	}

	for _, profile := range profiles {
		if profile.Name == name {
			return profile, nil
		}
	}

	return nil, fmt.Errorf("profile not found: %s", name)
}

func profileNameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
