package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUPPLYSIM_APP_ENV" required:"true"`
	Port         string `envconfig:"SUPPLYSIM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SUPPLYSIM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUPPLYSIM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SUPPLYSIM_DB_DSN"`
	Driver string `envconfig:"SUPPLYSIM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SUPPLYSIM_DB_HOST"`
	LegacyPort     int    `envconfig:"SUPPLYSIM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SUPPLYSIM_DB_USER"`
	LegacyPassword string `envconfig:"SUPPLYSIM_DB_PASSWORD"`
	LegacyName     string `envconfig:"SUPPLYSIM_DB_NAME"`
	LegacySSLMode  string `envconfig:"SUPPLYSIM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SUPPLYSIM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SUPPLYSIM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SUPPLYSIM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SUPPLYSIM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SUPPLYSIM_REDIS_URL"`
	Address      string        `envconfig:"SUPPLYSIM_REDIS_ADDR"`
	Password     string        `envconfig:"SUPPLYSIM_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUPPLYSIM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUPPLYSIM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUPPLYSIM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUPPLYSIM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUPPLYSIM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUPPLYSIM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SUPPLYSIM_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SUPPLYSIM_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SUPPLYSIM_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SUPPLYSIM_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SUPPLYSIM_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SUPPLYSIM_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SUPPLYSIM_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SUPPLYSIM_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SUPPLYSIM_AUTO_MIGRATE" default:"false"`
	AllowReset  bool `envconfig:"SUPPLYSIM_ALLOW_RESET" default:"false"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"SUPPLYSIM_IDEMPOTENCY_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
