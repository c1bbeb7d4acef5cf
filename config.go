package hxup

// Config holds the attribute and selector conventions the engine reads.
type Config struct {
	// DataAttribute holds the JSON payload passed to rule callbacks.
	DataAttribute string `toml:"data_attribute"`

	// FieldSelector matches form fields that keep their own clicks.
	FieldSelector string `toml:"field_selector"`

	// DefaultSelector is matched by the default follow variant.
	DefaultSelector string `toml:"default_selector"`
}

// DefaultConfig returns the standard up-* attribute conventions.
func DefaultConfig() Config {
	return Config{
		DataAttribute:   "up-data",
		FieldSelector:   "select, input:not([type=submit]):not([type=image]), button[type]:not([type=submit]), textarea",
		DefaultSelector: "[up-target], [up-follow]",
	}
}

// withDefaults fills blank fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DataAttribute == "" {
		c.DataAttribute = def.DataAttribute
	}
	if c.FieldSelector == "" {
		c.FieldSelector = def.FieldSelector
	}
	if c.DefaultSelector == "" {
		c.DefaultSelector = def.DefaultSelector
	}
	return c
}
