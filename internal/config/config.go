// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error kinds.
package config

// Match policy names accepted by the reconciliation engine.
const (
	MatchPolicyEmailCompanyDOBOrName = "email-company-dob-or-name"
	MatchPolicyUsernameExact         = "username-exact"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxFileSizeMB caps the size of an uploaded roster file.
	MaxFileSizeMB int `koanf:"max_file_size_mb"`

	// MatchPolicy selects the identity-matching policy.
	MatchPolicy string `koanf:"match_policy"`

	// DisableOnOmission, when true, emits a disable toggle for active
	// employees absent from the uploaded file. Off by default: only an
	// explicit is_active=false row disables an employee.
	DisableOnOmission bool `koanf:"disable_on_omission"`

	// UploadQueueSize bounds the number of uploads reconciled at once;
	// further uploads wait their turn.
	UploadQueueSize int `koanf:"upload_queue_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		MaxFileSizeMB:     25,
		MatchPolicy:       MatchPolicyEmailCompanyDOBOrName,
		DisableOnOmission: false,
		UploadQueueSize:   4,
	}
}
