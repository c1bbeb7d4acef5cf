package hxup

// Engine ties the rule registry, the destructor registry and the follow
// variants together. One Engine serves one document.
//
//	e := hxup.New(hxup.WithFragments(fetcher), hxup.WithLogger(slog.Default()))
//	if err := e.Boot(); err != nil {
//	    log.Fatal(err)
//	}
//	e.Registry().Compiler(".clock", startClock)
//
//	e.Compile(fragment, hxup.CompileOptions{}) // after insertion
//	e.Clean(fragment)                          // before removal
type Engine struct {
	config         Config
	registry       *Registry
	destructors    *DestructorRegistry
	variants       *Variants
	defaultVariant *FollowVariant
	fragments      Fragments
	confirmer      Confirmer
	logger         SLogger

	// OnError is called for every error the engine recovers from: malformed
	// data, failing callbacks and failing destructors. Customize this to
	// surface errors appropriately for your application.
	OnError func(error)
}

// Option configures New.
type Option func(*options)

type options struct {
	config    Config
	registry  *Registry
	variants  *Variants
	fragments Fragments
	confirmer Confirmer
	logger    SLogger
}

// WithConfig replaces the attribute conventions. Blank fields keep their
// defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithRegistry uses an existing rule registry.
func WithRegistry(reg *Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithVariants uses an existing variant registry. The engine adds its
// default variant to it.
func WithVariants(vs *Variants) Option {
	return func(o *options) {
		o.variants = vs
	}
}

// WithFragments sets the fragment layer the default variant hands requests to.
func WithFragments(f Fragments) Option {
	return func(o *options) {
		o.fragments = f
	}
}

// WithConfirmer sets the confirmation prompt for up-confirm links.
func WithConfirmer(c Confirmer) Option {
	return func(o *options) {
		o.confirmer = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l SLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates an engine and registers its default follow variant.
func New(opts ...Option) *Engine {
	o := &options{config: DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.variants == nil {
		o.variants = NewVariants()
	}
	if o.logger == nil {
		o.logger = DefaultSLogger()
	}

	e := &Engine{
		config:      o.config.withDefaults(),
		registry:    o.registry,
		destructors: NewDestructorRegistry(),
		variants:    o.variants,
		fragments:   o.fragments,
		confirmer:   o.confirmer,
		logger:      o.logger,
	}

	// Default error handler
	e.OnError = func(err error) {
		e.logger.Error("hxup: recovered error", "err", err)
	}
	e.destructors.OnError = e.report

	e.defaultVariant = e.variants.Add(e.config.DefaultSelector, e.followDefault, e.followDefault)
	e.variants.MarkDefault(e.defaultVariant)

	return e
}

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Destructors returns the engine's destructor registry.
func (e *Engine) Destructors() *DestructorRegistry {
	return e.destructors
}

// Variants returns the engine's follow variant registry.
func (e *Engine) Variants() *Variants {
	return e.variants
}

// DefaultVariant returns the variant that follows [up-target] and
// [up-follow] links by handing them to the fragment layer.
func (e *Engine) DefaultVariant() *FollowVariant {
	return e.defaultVariant
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Reset drops every rule registered after boot and every follow variant
// except the default one.
func (e *Engine) Reset() {
	e.registry.Reset()
	e.variants.Reset()
}

func (e *Engine) report(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}
