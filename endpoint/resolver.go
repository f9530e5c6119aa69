package endpoint

// Config holds per-deployment URL overrides for the named targets. A
// missing or empty entry falls back to the built-in default.
type Config struct {
	URLs map[Target]string `json:"urls,omitempty" yaml:"urls,omitempty"`
}

// ConfigFromEnv builds a Config from MAKE_WEBHOOK_URL and N8N_WEBHOOK_URL
// using lookup (typically os.LookupEnv).
func ConfigFromEnv(lookup func(string) (string, bool)) Config {
	cfg := Config{URLs: make(map[Target]string, len(envKeys))}
	for target, key := range envKeys {
		if v, ok := lookup(key); ok && v != "" {
			cfg.URLs[target] = v
		}
	}
	return cfg
}

// Resolver maps targets to URLs. It performs no I/O and keeps no state
// beyond its configuration.
type Resolver struct {
	urls map[Target]string
}

// NewResolver creates a resolver over cfg. The config is copied.
func NewResolver(cfg Config) *Resolver {
	urls := make(map[Target]string, len(defaults))
	for target, def := range defaults {
		urls[target] = def
		if v := cfg.URLs[target]; v != "" {
			urls[target] = v
		}
	}
	return &Resolver{urls: urls}
}

// Resolve returns the delivery URL for target. For TargetCustom the
// customURL is returned verbatim and must be non-empty; it is ignored for
// the named targets.
func (r *Resolver) Resolve(target Target, customURL string) (string, error) {
	if target == TargetCustom {
		if customURL == "" {
			return "", &ResolveError{Target: target, Err: ErrCustomURLRequired}
		}
		return customURL, nil
	}

	u, ok := r.urls[target]
	if !ok {
		return "", &ResolveError{Target: target, Err: ErrUnknownTarget}
	}
	return u, nil
}

// URLs returns the resolved URL of every named target.
func (r *Resolver) URLs() map[Target]string {
	out := make(map[Target]string, len(r.urls))
	for k, v := range r.urls {
		out[k] = v
	}
	return out
}
