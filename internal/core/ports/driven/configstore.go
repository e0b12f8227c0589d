package driven

// ConfigStore provides access to service configuration. Implementations
// handle persistence and type conversion. Well-known keys: data_dir,
// corpus_dir, listen_addr, check_deadline_seconds, rate_limit_per_minute.
type ConfigStore interface {
	// Get retrieves a configuration value by key, reporting presence.
	Get(key string) (any, bool)

	// GetString retrieves a string value, empty when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false when absent or mistyped.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
