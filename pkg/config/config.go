package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Portal        PortalConfig
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
	Env          string `envconfig:"LOUNGECAST_APP_ENV" required:"true"`
	Port         string `envconfig:"LOUNGECAST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LOUNGECAST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOUNGECAST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LOUNGECAST_DB_DSN"`
	Driver string `envconfig:"LOUNGECAST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LOUNGECAST_DB_HOST"`
	LegacyPort     int    `envconfig:"LOUNGECAST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LOUNGECAST_DB_USER"`
	LegacyPassword string `envconfig:"LOUNGECAST_DB_PASSWORD"`
	LegacyName     string `envconfig:"LOUNGECAST_DB_NAME"`
	LegacySSLMode  string `envconfig:"LOUNGECAST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LOUNGECAST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LOUNGECAST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LOUNGECAST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOUNGECAST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LOUNGECAST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LOUNGECAST_REDIS_ADDR"`
	Password     string        `envconfig:"LOUNGECAST_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOUNGECAST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOUNGECAST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOUNGECAST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOUNGECAST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOUNGECAST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LOUNGECAST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LOUNGECAST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LOUNGECAST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LOUNGECAST_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LOUNGECAST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LOUNGECAST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LOUNGECAST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LOUNGECAST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LOUNGECAST_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LOUNGECAST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"LOUNGECAST_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LOUNGECAST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LOUNGECAST_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LOUNGECAST_AUTO_MIGRATE" default:"false"`
}

type PortalConfig struct {
	// MaxDailySuggestions seeds the portal settings row on first boot; the
	// live value is owned by the settings table afterwards.
	MaxDailySuggestions int `envconfig:"LOUNGECAST_MAX_DAILY_SUGGESTIONS" default:"3"`
	TopVotedLimit       int `envconfig:"LOUNGECAST_TOP_VOTED_LIMIT" default:"5"`
	FeaturedMediaLimit  int `envconfig:"LOUNGECAST_FEATURED_MEDIA_LIMIT" default:"6"`
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
