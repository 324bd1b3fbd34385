// Package rc loads the optional configuration file.
//
// The file is YAML with the following keys, all optional:
//
//	delims: ",;"          # delimiter set, default a single space
//	max-cell-bytes: 1000  # bound on the length of a cell
//	db: ~/gridedit.db     # database recording the history of runs
//	log: /tmp/gridedit.log
//
// Values from the command line take precedence over values from the file.
package rc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"gridedit.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[rc] ")

// Config is the content of a configuration file.
type Config struct {
	Delims       *string `yaml:"delims"`
	MaxCellBytes int     `yaml:"max-cell-bytes"`
	DB           string  `yaml:"db"`
	Log          string  `yaml:"log"`
}

// DefaultPath returns the path of the configuration file used when none is
// specified: gridedit/rc.yaml under $XDG_CONFIG_HOME, or under ~/.config if
// $XDG_CONFIG_HOME is not set.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gridedit", "rc.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(home, ".config", "gridedit", "rc.yaml"), nil
}

// Load reads the configuration file at path. If path is empty, the default
// path is used, and a missing file results in an empty Config instead of an
// error.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		var err error
		path, err = DefaultPath()
		if err != nil {
			logger.Println(err)
			return &Config{}, nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	defer f.Close()
	logger.Println("loading", path)
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.DB = expandHome(cfg.DB)
	cfg.Log = expandHome(cfg.Log)
	return cfg, nil
}

// Parse parses a configuration from r. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&cfg)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if cfg.MaxCellBytes < 0 {
		return nil, fmt.Errorf("max-cell-bytes must not be negative, got %d", cfg.MaxCellBytes)
	}
	return &cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
