package config

type config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	Minio    minio    `yaml:"minio" mapstructure:"minio"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
	Relation relation `yaml:"relation" mapstructure:"relation"`
	Comment  comment  `yaml:"comment" mapstructure:"comment"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	MaxBodySize    int      `yaml:"max_body_size" mapstructure:"max_body_size"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	PprofAddr      string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
}

type mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	Timeout      string `yaml:"timeout"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type redis struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	ProfileTTL string `yaml:"profile_ttl" mapstructure:"profile_ttl"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jaeger struct {
	Enabled bool   `yaml:"enabled"`
	Agent   string `yaml:"agent"`
}

type relation struct {
	CountRetryAttempts int    `yaml:"count_retry_attempts" mapstructure:"count_retry_attempts"`
	CountRetryDelay    string `yaml:"count_retry_delay" mapstructure:"count_retry_delay"`
}

type comment struct {
	RateLimit  int64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateWindow string `yaml:"rate_window" mapstructure:"rate_window"`
}
