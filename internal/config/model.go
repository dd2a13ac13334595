package config

type Config struct {
	Portal Portal `yaml:"portal"`
	Auth   Auth   `yaml:"auth"`
	Hub    Hub    `yaml:"hub"`
	Redis  Redis  `yaml:"redis"`
}

type Portal struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Bind    struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"bind"`
	Audit struct {
		Enabled   bool   `yaml:"enabled"`
		SecretRef string `yaml:"secret_ref"`
	} `yaml:"audit"`
	JWTSecret    string `yaml:"jwt_secret"`
	SessionTTL   int    `yaml:"session_ttl"` // seconds
	DownloadsDir string `yaml:"downloads_dir"`
}

type Auth struct {
	URL      string `yaml:"url"`
	RolesKey string `yaml:"roles_key"`
	// SecretRead is the statically configured client key handed to
	// authenticated sessions for hub access.
	SecretRead string `yaml:"secret_read"`
	// InsecureSkipVerify disables TLS certificate verification on the token
	// endpoint. This is a known, pre-existing weakening of the deployment;
	// it is kept configurable instead of hardcoded. Leave false unless the
	// endpoint genuinely serves an unverifiable certificate.
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	TokenCacheTTL      int    `yaml:"token_cache_ttl"` // seconds
	RequiredRole       string `yaml:"required_role"`
}

type Hub struct {
	BaseURL        string `yaml:"base_url"`
	DefaultDataset string `yaml:"default_dataset"`
	ClientTTL      int    `yaml:"client_ttl"` // seconds, hub client cache
	TimeoutSec     int    `yaml:"timeout_sec"`
}

type Redis struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	DB      int    `yaml:"db"`
	Prefix  string `yaml:"prefix"`
	AuthRef string `yaml:"auth_ref"`
}
