package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/pkg/paths"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order inside the config directory.
var configNames = []string{
	"ristate.yml",
	"ristate.yaml",
	"ristate.toml",
}

// Load reads, validates and decodes a configuration file. The format is
// chosen by extension: .toml is TOML, anything else YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	file, err := LoadFromBytes(data, strings.EqualFold(filepath.Ext(path), ".toml"))
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	file.Path = path
	return file, nil
}

// LoadDefault loads the file at explicitPath, or the first ristate config in
// the XDG config directory. When neither exists it returns an empty File.
func LoadDefault(explicitPath string) (*File, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}

	path, err := FindConfigFile(paths.ConfigDir())
	if err != nil {
		return &File{}, nil
	}
	return Load(path)
}

// LoadFromBytes parses a configuration document.
func LoadFromBytes(data []byte, isTOML bool) (*File, error) {
	expanded := expandEnvVars(string(data))

	raw := map[string]interface{}{}
	if isTOML {
		if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	// Round-trip through JSON so both parsers hand the validator the same
	// value types.
	doc, err := normalize(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to normalize configuration")
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &file,
		TagName: "yaml",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create mapstructure decoder")
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	return &file, nil
}

// FindConfigFile returns the first ristate config file in dir.
func FindConfigFile(dir string) (string, error) {
	if dir != "" {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", errors.ConfigNotFound(dir).WithDetail("searchPath", dir)
}

func normalize(raw map[string]interface{}) (interface{}, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
