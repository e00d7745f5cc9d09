package patch

import (
	"log/slog"
	"regexp"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// DefaultServerRenderedAttr marks the root element of server-rendered markup.
const DefaultServerRenderedAttr = "data-server-rendered"

// DefaultComponentTagPrefix marks tags of component placeholders that
// hydration accepts without comparing against the real tag.
const DefaultComponentTagPrefix = "component-"

// Config configures a Patcher.
type Config struct {
	// Logger receives diagnostics when no Reporter is set.
	// Default: slog.Default()
	Logger *slog.Logger

	// Reporter receives every diagnostic. Default: log at Warn via Logger.
	Reporter func(*Diagnostic)

	// Observer receives a report after every pass.
	Observer Observer

	// DevMode enables duplicate key, unknown element and hydration mismatch
	// diagnostics. Default: true
	DevMode bool

	// TextInputTypes are input types treated as interchangeable.
	// Default: vdom.DefaultTextInputTypes
	TextInputTypes []string

	// IgnoredElements and IgnoredPatterns exclude tags from unknown element
	// checks.
	IgnoredElements []string
	IgnoredPatterns []*regexp.Regexp

	// ServerRenderedAttr is the marker attribute that switches a mount into
	// hydration. Default: DefaultServerRenderedAttr
	ServerRenderedAttr string

	// ComponentTagPrefix: see DefaultComponentTagPrefix.
	ComponentTagPrefix string

	// ActiveInstance returns the component currently rendering, used to
	// scope slot content. Default: none.
	ActiveInstance func() vdom.Context

	// IsUnknownElement decides whether a tag is unknown to the host.
	// Default: vdom.IsUnknownElement
	IsUnknownElement func(tag string) bool

	// TrackClassBinding is called while hydrating an element whose only
	// bindings were server rendered but which has dynamic classes.
	TrackClassBinding func(v *vdom.VNode)
}

// Option configures a Patcher.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReporter sets the diagnostic reporter.
func WithReporter(fn func(*Diagnostic)) Option {
	return func(c *Config) {
		c.Reporter = fn
	}
}

// WithObserver sets the pass observer.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// WithDevMode toggles development diagnostics.
func WithDevMode(enabled bool) Option {
	return func(c *Config) {
		c.DevMode = enabled
	}
}

// WithTextInputTypes sets the interchangeable input types.
func WithTextInputTypes(types []string) Option {
	return func(c *Config) {
		c.TextInputTypes = types
	}
}

// WithIgnoredElements adds tags excluded from unknown element checks.
func WithIgnoredElements(tags ...string) Option {
	return func(c *Config) {
		c.IgnoredElements = append(c.IgnoredElements, tags...)
	}
}

// WithIgnoredPattern excludes tags matching re from unknown element checks.
func WithIgnoredPattern(re *regexp.Regexp) Option {
	return func(c *Config) {
		c.IgnoredPatterns = append(c.IgnoredPatterns, re)
	}
}

// WithServerRenderedAttr sets the hydration marker attribute.
func WithServerRenderedAttr(name string) Option {
	return func(c *Config) {
		c.ServerRenderedAttr = name
	}
}

// WithComponentTagPrefix sets the component tag prefix.
func WithComponentTagPrefix(prefix string) Option {
	return func(c *Config) {
		c.ComponentTagPrefix = prefix
	}
}

// WithActiveInstance sets the active rendering instance lookup.
func WithActiveInstance(fn func() vdom.Context) Option {
	return func(c *Config) {
		c.ActiveInstance = fn
	}
}

// WithUnknownElementCheck replaces the unknown element predicate.
func WithUnknownElementCheck(fn func(tag string) bool) Option {
	return func(c *Config) {
		c.IsUnknownElement = fn
	}
}

// WithClassTracking sets the class binding callback used during hydration.
func WithClassTracking(fn func(v *vdom.VNode)) Option {
	return func(c *Config) {
		c.TrackClassBinding = fn
	}
}

func defaultConfig() Config {
	return Config{
		DevMode:            true,
		ServerRenderedAttr: DefaultServerRenderedAttr,
		ComponentTagPrefix: DefaultComponentTagPrefix,
		IsUnknownElement:   vdom.IsUnknownElement,
	}
}

func (c *Config) isIgnored(tag string) bool {
	for _, name := range c.IgnoredElements {
		if name == tag {
			return true
		}
	}
	for _, re := range c.IgnoredPatterns {
		if re != nil && re.MatchString(tag) {
			return true
		}
	}
	return false
}
