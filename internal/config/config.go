// Package config loads cmd/blockc's optional TOML configuration file,
// grounded on the teacher's internal/tqw package, which uses
// toml.Unmarshal to parse its own world-file header (tqw.go's
// ScanFileInfo). Flags always take precedence over a loaded config; see
// cmd/blockc/main.go's merge of *pflag values over a *Config.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full set of CLI defaults loadable from a TOML file via
// --config.
type Config struct {
	// Algorithm selects which canonical collection construction the table
	// generator runs: "clr1" (the only one this module implements; kept as
	// a named field so a future slr addition has a natural home, mirroring
	// the teacher's own choice between GenerateCanonicalLR1Parser and
	// GenerateSimpleLRParser).
	Algorithm string `toml:"algorithm"`

	// TableCache is a directory where the synthesized ACTION/GOTO table is
	// cached (internal/parsetable.Encode/Decode) so repeated invocations
	// over the same grammar skip LR(1) construction. Empty disables
	// caching.
	TableCache string `toml:"table_cache"`

	// TraceParse turns on the parser's shift/reduce trace listener by
	// default.
	TraceParse bool `toml:"trace_parse"`
}

// Default returns the built-in defaults used when no --config file is
// given.
func Default() Config {
	return Config{Algorithm: "clr1"}
}

// Load reads and parses the TOML file at path, starting from Default() so
// any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
