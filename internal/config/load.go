package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/wiredwork/orcheo/pkg/streamerr"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads a settings file from disk, parses it as YAML, validates it,
// and returns the resulting Settings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, streamerr.NewParseError(path, 0, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, streamerr.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(&settings); err != nil {
		return nil, streamerr.NewValidationError("settings", err.Error(), err)
	}

	return &settings, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
