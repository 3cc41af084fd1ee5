package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/vango-dev/navkit/internal/errors"
	"github.com/vango-dev/navkit/pkg/router"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "navkit.json"

	// EnvPrefix prefixes environment overrides, e.g. NAVKIT_MODE.
	EnvPrefix = "NAVKIT"

	// DefaultAddr is the default listen address of the remote server.
	DefaultAddr = "localhost:8080"

	// DefaultBufferSize is the default WebSocket read and write buffer size.
	DefaultBufferSize = 1024

	// DefaultMode is the default address mode.
	DefaultMode = "history"
)

// Config represents the complete navkit.json configuration.
type Config struct {
	// Name is the application name shown by the remote client.
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Mode is "history" (or "path") or "hash" (or "fragment").
	Mode string `json:"mode,omitempty" mapstructure:"mode"`

	// Base is the history-mode path prefix.
	Base string `json:"base,omitempty" mapstructure:"base"`

	// MaxRedirects bounds redirect chains (default: router.DefaultMaxRedirects).
	MaxRedirects int `json:"maxRedirects,omitempty" mapstructure:"maxRedirects"`

	// Routes is the route table, in match order. Routes are read straight
	// from the file so that parameter names keep their case.
	Routes []RouteConfig `json:"routes" mapstructure:"-"`

	// Server contains remote server configuration.
	Server ServerConfig `json:"server,omitempty" mapstructure:"server"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouteConfig is one route of the table.
type RouteConfig struct {
	// Name optionally identifies the route for named navigation.
	Name string `json:"name,omitempty"`

	// Path is the route pattern, e.g. "/items/:id".
	Path string `json:"path"`

	// View is the text rendered when the route is current.
	View string `json:"view,omitempty"`

	// Redirect makes this a redirect route.
	Redirect *RefConfig `json:"redirect,omitempty"`
}

// RefConfig is a navigation target: a literal path or a named route.
type RefConfig struct {
	Path   string            `json:"path,omitempty"`
	Name   string            `json:"name,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	Query  map[string]string `json:"query,omitempty"`
}

// Ref converts the target to a router.Ref.
func (r *RefConfig) Ref() router.Ref {
	return router.Ref{
		Path:   r.Path,
		Name:   r.Name,
		Params: router.Params(r.Params),
		Query:  router.Query(r.Query),
	}
}

// ServerConfig contains remote server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" mapstructure:"addr"`

	// ReadBufferSize is the WebSocket read buffer size in bytes.
	ReadBufferSize int `json:"readBufferSize,omitempty" mapstructure:"readBufferSize"`

	// WriteBufferSize is the WebSocket write buffer size in bytes.
	WriteBufferSize int `json:"writeBufferSize,omitempty" mapstructure:"writeBufferSize"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `json:"metrics,omitempty" mapstructure:"metrics"`

	// Tracing records an OpenTelemetry span per resolution pass.
	Tracing bool `json:"tracing,omitempty" mapstructure:"tracing"`
}

// New creates a new Config with default values and no routes.
func New() *Config {
	return &Config{
		Mode:         DefaultMode,
		MaxRedirects: router.DefaultMaxRedirects,
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadBufferSize:  DefaultBufferSize,
			WriteBufferSize: DefaultBufferSize,
			Metrics:         true,
		},
	}
}

// Sample returns a starter configuration with a small route table.
func Sample(name string) *Config {
	cfg := New()
	cfg.Name = name
	cfg.Routes = []RouteConfig{
		{Path: "/", Redirect: &RefConfig{Name: "home"}},
		{Name: "home", Path: "/home", View: "Welcome home."},
		{Name: "items", Path: "/items", View: "All items."},
		{Name: "item", Path: "/items/:id", View: "One item."},
		{Path: "/old/:id", Redirect: &RefConfig{Path: "/items"}},
	}
	return cfg
}

// setDefaults registers every setting with v so environment overrides
// apply to them.
func setDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("name", d.Name)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("base", d.Base)
	v.SetDefault("maxRedirects", d.MaxRedirects)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.readBufferSize", d.Server.ReadBufferSize)
	v.SetDefault("server.writeBufferSize", d.Server.WriteBufferSize)
	v.SetDefault("server.metrics", d.Server.Metrics)
	v.SetDefault("server.tracing", d.Server.Tracing)
}

// Load reads configuration from the specified directory.
// It looks for navkit.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path. Settings may
// be overridden by NAVKIT_-prefixed environment variables, with '.'
// replaced by '_' (e.g. NAVKIT_SERVER_ADDR).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("N023").
				WithDetail("No navkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'navkit init' to create one")
		}
		return nil, errors.New("N024").WithLocation(path, 0).Wrap(err)
	}

	var file struct {
		Routes []RouteConfig `json:"routes"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, parseError(path, data, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.New("N024").WithLocation(path, 0).Wrap(err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("N024").WithLocation(path, 0).Wrap(err)
	}
	cfg.Routes = file.Routes
	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// parseError describes a JSON decoding failure, with the line it occurred on
// when known.
func parseError(path string, data []byte, err error) error {
	line := 0
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntax):
		line = lineAt(data, syntax.Offset)
	case stderrors.As(err, &typeErr):
		line = lineAt(data, typeErr.Offset)
	}
	return errors.New("N024").
		WithLocation(path, line).
		WithSuggestion("Check that navkit.json is valid JSON").
		Wrap(err)
}

// lineAt returns the 1-based line of a byte offset.
func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("N024").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("N024").WithLocation(path, 0).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = router.DefaultMaxRedirects
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = DefaultBufferSize
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = DefaultBufferSize
	}
}

// Validate checks if the configuration is valid: the mode parses, every
// route is either a view or a redirect, names are unique, patterns are well
// formed and named redirect targets exist.
func (c *Config) Validate() error {
	if _, err := router.ParseMode(c.Mode); err != nil {
		return c.located(errors.FromRouter(err)).
			WithDetail(fmt.Sprintf("Unknown mode %q.", c.Mode)).
			WithSuggestion(`Use "history" or "hash"`)
	}
	if c.MaxRedirects < 0 {
		return c.located(errors.New("N025")).
			WithDetail("maxRedirects must not be negative")
	}
	if c.Server.Addr == "" || c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0 {
		return c.located(errors.New("N026"))
	}

	for i, rc := range c.Routes {
		hasView := rc.View != ""
		hasRedirect := rc.Redirect != nil
		switch {
		case hasView && hasRedirect:
			return c.located(errors.New("N025")).
				WithDetail(fmt.Sprintf("routes[%d] (%q) has both a view and a redirect.", i, rc.Path))
		case !hasView && !hasRedirect:
			return c.located(errors.New("N025")).
				WithDetail(fmt.Sprintf("routes[%d] (%q) has neither a view nor a redirect.", i, rc.Path)).
				WithExample(`{"name": "home", "path": "/home", "view": "Welcome home."}`)
		case hasRedirect && rc.Redirect.Path == "" && rc.Redirect.Name == "":
			return c.located(errors.New("N025")).
				WithDetail(fmt.Sprintf("routes[%d] (%q) redirects to neither a path nor a name.", i, rc.Path))
		}
	}

	table, err := c.Table()
	if err != nil {
		return err
	}
	for i, rc := range c.Routes {
		if rc.Redirect == nil || rc.Redirect.Path != "" {
			continue
		}
		if _, err := table.BuildPath(rc.Redirect.Ref()); err != nil {
			return c.located(errors.FromRouter(err)).
				WithDetail(fmt.Sprintf("routes[%d] (%q) redirects to an invalid target.", i, rc.Path))
		}
	}
	return nil
}

// located attaches the config file location to e.
func (c *Config) located(e *errors.NavError) *errors.NavError {
	if c.configPath != "" {
		e.WithLocation(c.configPath, 0)
	}
	return e
}

// RouterRoutes converts the route configuration into router routes. Views render
// their configured text.
func (c *Config) RouterRoutes() []router.Route {
	routes := make([]router.Route, len(c.Routes))
	for i, rc := range c.Routes {
		r := router.Route{Name: rc.Name, Path: rc.Path}
		if rc.Redirect != nil {
			ref := rc.Redirect.Ref()
			r.Redirect = func() router.Ref { return ref }
		} else {
			view := rc.View
			r.Render = func() router.View { return view }
		}
		routes[i] = r
	}
	return routes
}

// Table builds the route table.
func (c *Config) Table() (*router.Table, error) {
	table, err := router.NewTable(c.RouterRoutes()...)
	if err != nil {
		return nil, c.located(errors.FromRouter(err))
	}
	return table, nil
}

// RouterConfig returns the construction-time router configuration.
func (c *Config) RouterConfig() (router.Config, error) {
	mode, err := router.ParseMode(c.Mode)
	if err != nil {
		return router.Config{}, c.located(errors.FromRouter(err))
	}
	return router.Config{
		Routes:       c.RouterRoutes(),
		Mode:         mode,
		Base:         c.Base,
		MaxRedirects: c.MaxRedirects,
	}, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing navkit.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("N023").
				WithDetail("No navkit.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'navkit init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has a navkit.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
