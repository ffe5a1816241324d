package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the embedded JSON Schema dauw.json is validated
// against before it is unmarshaled, the same compiler.AddResource +
// compiler.Compile(url) sequence core/types uses for decorator
// parameter schemas.
const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"debug": {"type": "boolean"},
		"noColor": {"type": "boolean"},
		"watch": {"type": "boolean"},
		"cacheDir": {"type": "string"}
	}
}`

// config is the decoded dauw.json. Only CacheDir is used (by run and
// watch); Debug, NoColor and Watch are validated and decoded but do not
// change any command's behaviour, which is set by its flags alone.
type config struct {
	Debug    bool   `json:"debug"`
	NoColor  bool   `json:"noColor"`
	Watch    bool   `json:"watch"`
	CacheDir string `json:"cacheDir"`
}

func defaultConfig() config {
	return config{CacheDir: ".dauw-cache"}
}

// loadConfig reads path, validates it against configSchema, and
// unmarshals it into a config. A missing file is not an error — the
// caller gets defaultConfig().
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	const resourceURL = "dauw-config.json"
	if err := compiler.AddResource(resourceURL, strings.NewReader(configSchema)); err != nil {
		return cfg, fmt.Errorf("loading config schema: %w", err)
	}
	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return cfg, fmt.Errorf("compiling config schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := schema.Validate(raw); err != nil {
		return cfg, fmt.Errorf("%s does not match the config schema: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}
