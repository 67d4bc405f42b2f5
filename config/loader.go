// Package config loads an engine.Config from YAML or JSON bytes, grounded
// on omeyang-XKit/pkg/config/xconf's koanf-based loader: same three
// koanf building blocks (a rawbytes provider feeding a format-specific
// parser into a koanf.Koanf), generalized here to a single function
// rather than a stateful Config interface, since kvmemo only ever loads
// configuration once at startup.
package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/Gagan2004bansal/KVMemo/engine"
)

// Format selects how Load parses its input bytes.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Load parses data as format, overlays it onto engine.DefaultConfig, and
// validates the result. Keys absent from data keep their defaults (koanf
// only overlays keys it finds); a key that is present overrides the
// default even when its value is the field's zero value.
func Load(data []byte, format Format) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return cfg, fmt.Errorf("config: unsupported format %q", format)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return cfg, fmt.Errorf("config: parse: %w", err)
		}
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
