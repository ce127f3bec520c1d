package format

import (
	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// PresetConfig is the YAML-serializable shape of Options. Quote
// characters are expressed as one-rune strings since YAML has no byte
// scalar, then decoded into Options.
type PresetConfig struct {
	Uppercase        bool   `yaml:"uppercase"`
	Indent           string `yaml:"indent"`
	QuoteOpen        string `yaml:"quoteOpen"`
	QuoteClose       string `yaml:"quoteClose"`
	AlwaysQuoteIdent bool   `yaml:"alwaysQuoteIdent"`
}

// Named presets matching the built-in dialect Options values, keyed the
// way a caller's YAML document would name them.
var namedPresets = map[string]Options{
	"postgres":  PostgresOptions,
	"mysql":     MySQLOptions,
	"sqlserver": SQLServerOptions,
}

// Preset looks up a built-in dialect preset by name ("postgres", "mysql",
// "sqlserver"). ok is false for an unrecognized name.
func Preset(name string) (Options, bool) {
	opts, ok := namedPresets[name]
	return opts, ok
}

// LoadOptionsYAML decodes a YAML document into Options, for callers that
// want to supply a custom dialect preset file instead of constructing
// Options by hand.
func LoadOptionsYAML(data []byte) (Options, error) {
	var cfg PresetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Options{}, errors.Annotate(err, "decode format preset YAML")
	}
	opts := Options{
		Uppercase:        cfg.Uppercase,
		Indent:           cfg.Indent,
		AlwaysQuoteIdent: cfg.AlwaysQuoteIdent,
	}
	if cfg.QuoteOpen != "" {
		opts.QuoteOpen = cfg.QuoteOpen[0]
	} else {
		opts.QuoteOpen = '"'
	}
	if cfg.QuoteClose != "" {
		opts.QuoteClose = cfg.QuoteClose[0]
	} else {
		opts.QuoteClose = '"'
	}
	return opts, nil
}
