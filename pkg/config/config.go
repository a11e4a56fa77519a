// Package config loads pipelines described in YAML and installs them on a registry.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-textpipeline/pkg/pipeline"
	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
	"github.com/askiada/go-textpipeline/pkg/rules"
)

// AppName is the directory name used under the XDG config home.
const AppName = "textpipe"

// MaxInputSize limits the size of a configuration file.
var MaxInputSize = 1 << 20

var (
	ErrEmptyConfig   = errors.New("empty configuration")
	ErrInputTooLarge = errors.New("configuration exceeds maximum size")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config describes the registry defaults and the pipelines to register.
type Config struct {
	Defaults  *Defaults  `yaml:"defaults,omitempty"`
	Pipelines []Pipeline `yaml:"pipelines"`
}

// Defaults override the registry defaults when set.
type Defaults struct {
	StopOnError *bool `yaml:"stopOnError,omitempty"`
	Parallel    *bool `yaml:"parallel,omitempty"`
}

// Pipeline is a named list of rules. StopOnError and Parallel override the defaults when set.
type Pipeline struct {
	StopOnError *bool  `yaml:"stopOnError,omitempty"`
	Parallel    *bool  `yaml:"parallel,omitempty"`
	Name        string `yaml:"name"`
	Steps       []Step `yaml:"steps"`
}

// Step refers to a rule of a catalog. A step is enabled unless Enabled is false.
type Step struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Rule    string `yaml:"rule"`
	Name    string `yaml:"name,omitempty"`
	Args    []any  `yaml:"args,omitempty"`
}

// DefaultPath returns the configuration file used when none is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // the path is chosen by the user
	if err != nil {
		return nil, errors.Wrap(err, "unable to read configuration")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", path)
	}

	return cfg, nil
}

// Parse parses and validates a YAML configuration. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, ErrEmptyConfig
	}

	if len(data) > MaxInputSize {
		return nil, errors.Wrapf(ErrInputTooLarge, "%d bytes (max %d)", len(data), MaxInputSize)
	}

	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse configuration")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every pipeline has a unique name and at least one step with a rule.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Pipelines))

	for i, p := range c.Pipelines {
		if p.Name == "" {
			return errors.Wrapf(ErrInvalidConfig, "pipeline %d: name is required", i)
		}

		if _, ok := seen[p.Name]; ok {
			return errors.Wrapf(ErrInvalidConfig, "pipeline %q: defined twice", p.Name)
		}

		seen[p.Name] = struct{}{}

		if len(p.Steps) == 0 {
			return errors.Wrapf(ErrInvalidConfig, "pipeline %q: at least one step is required", p.Name)
		}

		for j, s := range p.Steps {
			if s.Rule == "" {
				return errors.Wrapf(ErrInvalidConfig, "pipeline %q: step %d: rule is required", p.Name, j)
			}
		}
	}

	return nil
}

// RegistryOptions returns the registry options the configuration asks for.
func (c *Config) RegistryOptions() []pipeline.Option {
	if c.Defaults == nil {
		return nil
	}

	opts := model.DefaultOptions()

	if c.Defaults.StopOnError != nil {
		opts.StopOnError = *c.Defaults.StopOnError
	}

	if c.Defaults.Parallel != nil {
		opts.Parallel = *c.Defaults.Parallel
	}

	return []pipeline.Option{pipeline.WithDefaults(opts)}
}

// Plugin returns a plugin registering every pipeline of the configuration,
// resolving rules with catalog.
func (c *Config) Plugin(catalog rules.Catalog) pipeline.Plugin {
	return func(reg *pipeline.Registry) error {
		if reg == nil {
			return pipeline.ErrRegistryMustBeSet
		}

		for _, p := range c.Pipelines {
			specs, err := p.specs(catalog)
			if err != nil {
				return err
			}

			err = reg.Register(p.Name, specs, p.options()...)
			if err != nil {
				return err
			}
		}

		return nil
	}
}

func (p Pipeline) specs(catalog rules.Catalog) ([]pipeline.Spec, error) {
	specs := make([]pipeline.Spec, len(p.Steps))

	for i, s := range p.Steps {
		fn, err := catalog.Step(s.Rule)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline %q: step %d", p.Name, i)
		}

		name := s.Name
		if name == "" {
			name = s.Rule
		}

		specs[i] = pipeline.Spec{
			Fn:       fn,
			Name:     name,
			Args:     s.Args,
			Disabled: s.Enabled != nil && !*s.Enabled,
		}
	}

	return specs, nil
}

func (p Pipeline) options() []pipeline.RegisterOption {
	opts := []pipeline.RegisterOption{}

	if p.StopOnError != nil {
		opts = append(opts, pipeline.StopOnError(*p.StopOnError))
	}

	if p.Parallel != nil {
		opts = append(opts, pipeline.Parallel(*p.Parallel))
	}

	return opts
}

// String returns the configuration as YAML.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("invalid configuration: %v", err)
	}

	return string(out)
}
