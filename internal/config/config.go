package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"reconcile.json", "reconcile.yaml", "reconcile.yml"}

const (
	// DefaultAddr is the default listen address of the serve command.
	DefaultAddr = ":3000"

	// DefaultLivePath is the default websocket endpoint.
	DefaultLivePath = "/live"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "reconcile"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "reconcile"
)

// Config is the reconcile configuration file.
type Config struct {
	// Dev enables development diagnostics (duplicate keys, unknown
	// elements, hydration mismatches).
	Dev bool `json:"dev" yaml:"dev"`

	// TextInputTypes are the input types treated as interchangeable.
	TextInputTypes []string `json:"textInputTypes,omitempty" yaml:"textInputTypes,omitempty"`

	// IgnoredElements are tags skipped by the unknown element check. A
	// value wrapped in slashes, like "/^x-/", is a regular expression.
	IgnoredElements []string `json:"ignoredElements,omitempty" yaml:"ignoredElements,omitempty"`

	// ServerRenderedAttr marks server-rendered root elements.
	ServerRenderedAttr string `json:"serverRenderedAttr,omitempty" yaml:"serverRenderedAttr,omitempty"`

	// ComponentTagPrefix marks component placeholder tags.
	ComponentTagPrefix string `json:"componentTagPrefix,omitempty" yaml:"componentTagPrefix,omitempty"`

	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
	Server  ServerConfig  `json:"server" yaml:"server"`

	// configPath is the path the config was loaded from.
	configPath string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Path is the websocket endpoint of live sessions.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Dev:                true,
		TextInputTypes:     append([]string(nil), vdom.DefaultTextInputTypes...),
		ServerRenderedAttr: patch.DefaultServerRenderedAttr,
		ComponentTagPrefix: patch.DefaultComponentTagPrefix,
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
			Path: DefaultLivePath,
		},
	}
}

// Load loads the first config file found in dir.
func Load(dir string) (*Config, error) {
	if path, ok := fileIn(dir); ok {
		return LoadFile(path)
	}
	return nil, errors.New("C001").
		WithDetail("No " + strings.Join(FileNames, ", ") + " found in " + dir).
		WithSuggestion("Create reconcile.json or pass --config")
}

// LoadFile loads a config file. Files ending in .yaml or .yml are decoded
// as YAML, anything else as JSON. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("Config file not found: " + path).
				Wrap(err)
		}
		return nil, errors.New("C001").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C001").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the config to path in the format its extension selects.
func (c *Config) SaveTo(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C001").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C001").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills fields an explicit empty value cleared.
func (c *Config) applyDefaults() {
	d := New()
	if len(c.TextInputTypes) == 0 {
		c.TextInputTypes = d.TextInputTypes
	}
	if c.ServerRenderedAttr == "" {
		c.ServerRenderedAttr = d.ServerRenderedAttr
	}
	if c.ComponentTagPrefix == "" {
		c.ComponentTagPrefix = d.ComponentTagPrefix
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.Path == "" {
		c.Server.Path = d.Server.Path
	}
}

// Validate checks the configuration. Every problem is reported as C001.
func (c *Config) Validate() error {
	for _, t := range c.TextInputTypes {
		if strings.TrimSpace(t) == "" {
			return errors.New("C001").
				WithDetail("textInputTypes contains an empty type")
		}
	}
	if _, _, err := c.ignored(); err != nil {
		return err
	}
	if c.ServerRenderedAttr == "" || strings.ContainsAny(c.ServerRenderedAttr, " \t\n\"'=<>/") {
		return errors.New("C001").
			WithDetailf("serverRenderedAttr %q is not a valid attribute name", c.ServerRenderedAttr)
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return errors.New("C001").
			WithDetailf("server.path %q must start with /", c.Server.Path).
			WithSuggestion("Use a path like " + DefaultLivePath)
	}
	if c.Server.Addr == "" {
		return errors.New("C001").
			WithDetail("server.addr is empty")
	}
	return nil
}

// ignored splits IgnoredElements into plain tags and compiled patterns.
func (c *Config) ignored() ([]string, []*regexp.Regexp, error) {
	var tags []string
	var patterns []*regexp.Regexp
	for _, v := range c.IgnoredElements {
		if len(v) > 2 && strings.HasPrefix(v, "/") && strings.HasSuffix(v, "/") {
			re, err := regexp.Compile(v[1 : len(v)-1])
			if err != nil {
				return nil, nil, errors.New("C001").
					WithDetailf("ignoredElements pattern %s: %v", v, err).
					Wrap(err)
			}
			patterns = append(patterns, re)
			continue
		}
		tags = append(tags, v)
	}
	return tags, patterns, nil
}

// PatchOptions converts the config to Patcher options.
func (c *Config) PatchOptions() ([]patch.Option, error) {
	tags, patterns, err := c.ignored()
	if err != nil {
		return nil, err
	}
	opts := []patch.Option{
		patch.WithDevMode(c.Dev),
		patch.WithTextInputTypes(c.TextInputTypes),
		patch.WithServerRenderedAttr(c.ServerRenderedAttr),
		patch.WithComponentTagPrefix(c.ComponentTagPrefix),
	}
	if len(tags) > 0 {
		opts = append(opts, patch.WithIgnoredElements(tags...))
	}
	for _, re := range patterns {
		opts = append(opts, patch.WithIgnoredPattern(re))
	}
	return opts, nil
}

// Find walks up from startDir to the first directory holding a config
// file and returns that file's path.
func Find(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		if path, ok := fileIn(dir); ok {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest config file above the working
// directory, or returns the defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if path, ok := Find(wd); ok {
		return LoadFile(path)
	}
	return New(), nil
}

func fileIn(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
