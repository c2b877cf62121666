package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is applied by envconfig when resolving variables.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ZURI_DB_DSN"
	EnvDBHost = "ZURI_DB_HOST"
	EnvDBUser = "ZURI_DB_USER"
	EnvDBName = "ZURI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Checkout      CheckoutConfig
	Promo         PromoConfig
	Maps          MapsConfig
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
	Env          string `envconfig:"ZURI_APP_ENV" required:"true"`
	Port         string `envconfig:"ZURI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ZURI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ZURI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ZURI_DB_DSN"`
	Driver string `envconfig:"ZURI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ZURI_DB_HOST"`
	LegacyPort     int    `envconfig:"ZURI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ZURI_DB_USER"`
	LegacyPassword string `envconfig:"ZURI_DB_PASSWORD"`
	LegacyName     string `envconfig:"ZURI_DB_NAME"`
	LegacySSLMode  string `envconfig:"ZURI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ZURI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ZURI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ZURI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ZURI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ZURI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ZURI_REDIS_ADDR"`
	Password     string        `envconfig:"ZURI_REDIS_PASSWORD"`
	DB           int           `envconfig:"ZURI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ZURI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ZURI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ZURI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ZURI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ZURI_REDIS_WRITE_TIMEOUT" default:"5s"`

	// SessionCheckTimeout bounds the per-request session lookup so a hung
	// Redis node cannot stall authenticated requests indefinitely.
	SessionCheckTimeout time.Duration `envconfig:"ZURI_REDIS_SESSION_CHECK_TIMEOUT" default:"3s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ZURI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ZURI_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ZURI_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ZURI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ZURI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ZURI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ZURI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ZURI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ZURI_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ZURI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ZURI_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ZURI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ZURI_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ZURI_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ZURI_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ZURI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ZURI_AUTO_MIGRATE" default:"false"`
}

// CheckoutConfig carries the storefront's fixed pricing knobs. Amounts are
// whole Kenyan shillings.
type CheckoutConfig struct {
	FreeShippingThresholdKES int    `envconfig:"ZURI_FREE_SHIPPING_THRESHOLD_KES" default:"5000"`
	FlatShippingKES          int    `envconfig:"ZURI_FLAT_SHIPPING_KES" default:"300"`
	OrderNumberPrefix        string `envconfig:"ZURI_ORDER_NUMBER_PREFIX" default:"ZW-"`
}

// PromoConfig drives the weekend promo window. The cart and checkout
// surfaces carry different percentages on purpose; see internal/promo.
type PromoConfig struct {
	Code            string `envconfig:"ZURI_PROMO_CODE" default:"ZURIWKND"`
	CartPercent     int    `envconfig:"ZURI_PROMO_CART_PERCENT" default:"15"`
	CheckoutPercent int    `envconfig:"ZURI_PROMO_CHECKOUT_PERCENT" default:"40"`
	MinBannerItems  int    `envconfig:"ZURI_PROMO_MIN_BANNER_ITEMS" default:"2"`
}

type MapsConfig struct {
	APIKey         string        `envconfig:"ZURI_GOOGLE_MAPS_API_KEY"`
	RequestTimeout time.Duration `envconfig:"ZURI_GOOGLE_MAPS_TIMEOUT" default:"10s"`

	// Commute routes originate at the boutique. Defaults point at the
	// Nairobi CBD storefront.
	OriginLat float64 `envconfig:"ZURI_COMMUTE_ORIGIN_LAT" default:"-1.2833"`
	OriginLng float64 `envconfig:"ZURI_COMMUTE_ORIGIN_LNG" default:"36.8219"`
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
