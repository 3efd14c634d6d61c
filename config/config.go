// Package config holds the generator settings. Values come from an optional
// YAML file and are overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given. It may be absent.
const DefaultFile = "glgen.yaml"

// Flag names.
const (
	FlagConfig   = "config"
	FlagRegistry = "registry"
	FlagOutput   = "output"
	FlagPackage  = "package"
	FlagVerbose  = "verbose"
)

type Config struct {
	// Registry is the path of the registry document.
	Registry string `yaml:"registry"`

	// Output is the directory the generated files are written to.
	Output string `yaml:"output"`

	// Package is the package clause of the generated files.
	Package string `yaml:"package"`

	Verbose bool `yaml:"verbose"`

	// Debounce is how long watch mode waits for the registry to settle.
	Debounce time.Duration `yaml:"debounce"`
}

func Default() Config {
	return Config{
		Registry: "registry/gl.xml",
		Output:   "gl",
		Package:  "gl",
		Debounce: 200 * time.Millisecond,
	}
}

// Load reads path over the defaults. A missing file is only an error when
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// RegisterFlags declares the flags understood by ApplyFlags.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, DefaultFile, "path of the YAML config file")
	fs.String(FlagRegistry, d.Registry, "path of the OpenGL registry document")
	fs.StringP(FlagOutput, "o", d.Output, "directory the generated files are written to")
	fs.String(FlagPackage, d.Package, "package name of the generated files")
	fs.BoolP(FlagVerbose, "v", false, "log debug output")
}

// ApplyFlags overrides c with every flag set explicitly on fs.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error

	if fs.Changed(FlagRegistry) {
		if c.Registry, err = fs.GetString(FlagRegistry); err != nil {
			return err
		}
	}
	if fs.Changed(FlagOutput) {
		if c.Output, err = fs.GetString(FlagOutput); err != nil {
			return err
		}
	}
	if fs.Changed(FlagPackage) {
		if c.Package, err = fs.GetString(FlagPackage); err != nil {
			return err
		}
	}
	if fs.Changed(FlagVerbose) {
		if c.Verbose, err = fs.GetBool(FlagVerbose); err != nil {
			return err
		}
	}

	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Registry == "":
		return errors.New("config: registry path is empty")
	case c.Output == "":
		return errors.New("config: output directory is empty")
	case !token.IsIdentifier(c.Package):
		return fmt.Errorf("config: invalid package name %q", c.Package)
	case c.Debounce < 0:
		return fmt.Errorf("config: negative debounce %s", c.Debounce)
	}
	return nil
}

// FromFlags loads the config file named by fs and applies fs over it.
func FromFlags(fs *pflag.FlagSet) (Config, error) {
	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Load(path, fs.Changed(FlagConfig))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.ApplyFlags(fs); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}
