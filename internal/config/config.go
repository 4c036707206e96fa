package config

import "time"

// Analyzer backends.
const (
	AnalyzerBackendKagome = "kagome"
	AnalyzerBackendExec   = "exec"
)

// Config is the root application configuration.
//
// Fields whose zero value is meaningful (apply_on_start: false, timeout: 0,
// mutations_per_minute: 0, max_age: 0) take their defaults from Defaults
// instead of env-default tags, which cleanenv would apply over an explicit
// zero.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"50021"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"10485760"`
}

// DictionaryConfig holds user dictionary storage settings.
type DictionaryConfig struct {
	Path         string `yaml:"path"           env:"DICT_PATH"           env-default:"./data/user_dict.json"`
	WorkDir      string `yaml:"work_dir"       env:"DICT_WORK_DIR"       env-default:"./data/work"`
	ApplyOnStart bool   `yaml:"apply_on_start" env:"DICT_APPLY_ON_START"`
}

// AnalyzerConfig selects and configures the morphological analyzer that
// consumes the compiled dictionary.
type AnalyzerConfig struct {
	Backend    string `yaml:"backend"     env:"ANALYZER_BACKEND"     env-default:"kagome"`
	SystemDict string `yaml:"system_dict" env:"ANALYZER_SYSTEM_DICT" env-default:"ipa"`
	// CompileCommand and CompileArgs are used by the exec backend. Arguments
	// may contain {src} and {dst}.
	CompileCommand string   `yaml:"compile_command" env:"ANALYZER_COMPILE_COMMAND"`
	CompileArgs    []string `yaml:"compile_args"    env:"ANALYZER_COMPILE_ARGS"    env-separator:","`
	// ReloadCommand is the full reload command line; {dst} is the compiled dictionary.
	ReloadCommand []string      `yaml:"reload_command" env:"ANALYZER_RELOAD_COMMAND" env-separator:","`
	Timeout       time.Duration `yaml:"timeout"        env:"ANALYZER_TIMEOUT"`
}

// AuthConfig holds bearer-token settings. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"userdict"`
}

// Enabled reports whether mutating routes require a bearer token.
func (c AuthConfig) Enabled() bool { return c.JWTSecret != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits for mutating routes.
// Zero disables limiting.
type RateLimitConfig struct {
	MutationsPerMinute int           `yaml:"mutations_per_minute" env:"RATE_LIMIT_MUTATIONS_PER_MINUTE"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"     env:"RATE_LIMIT_CLEANUP_INTERVAL"     env-default:"5m"`
}

// Defaults returns the configuration that loading starts from.
func Defaults() Config {
	return Config{
		Dictionary: DictionaryConfig{ApplyOnStart: true},
		Analyzer:   AnalyzerConfig{Timeout: time.Minute},
		CORS:       CORSConfig{MaxAge: 86400},
		RateLimit:  RateLimitConfig{MutationsPerMinute: 120},
	}
}
