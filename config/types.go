package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// SourceConfig names one fare-table source: a local path or a URL, plus an
// optional alias table alongside it.
type SourceConfig struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	URL       string `yaml:"url" validate:"omitempty,url"`
	AliasPath string `yaml:"aliasPath"`
	AliasURL  string `yaml:"aliasURL" validate:"omitempty,url"`
}

// CacheConfig contains the optional Redis tier for resolve responses.
type CacheConfig struct {
	RedisAddr  string `yaml:"redisAddr"`
	RedisPass  string `yaml:"redisPass"`
	RedisDB    int    `yaml:"redisDB" validate:"gte=0"`
	TTLSeconds int    `yaml:"ttlSeconds" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Source   SourceConfig   `yaml:"source"`
	Sources  []SourceConfig `yaml:"sources"`
	Cache    CacheConfig    `yaml:"cache"`
	LogLevel string         `yaml:"logLevel"`
}
