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
	Pricing       PricingConfig
	Checkout      CheckoutConfig
	Cart          CartConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
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
	Env          string `envconfig:"PRINTCRAFT_APP_ENV" required:"true"`
	Port         string `envconfig:"PRINTCRAFT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRINTCRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRINTCRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRINTCRAFT_DB_DSN"`
	Driver string `envconfig:"PRINTCRAFT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRINTCRAFT_DB_HOST"`
	LegacyPort     int    `envconfig:"PRINTCRAFT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRINTCRAFT_DB_USER"`
	LegacyPassword string `envconfig:"PRINTCRAFT_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRINTCRAFT_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRINTCRAFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTCRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRINTCRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTCRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTCRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTCRAFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRINTCRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTCRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTCRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTCRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTCRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTCRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTCRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTCRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PRINTCRAFT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PRINTCRAFT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PRINTCRAFT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PRINTCRAFT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PRINTCRAFT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PRINTCRAFT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PRINTCRAFT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PRINTCRAFT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PRINTCRAFT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PRINTCRAFT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PRINTCRAFT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PRINTCRAFT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PRINTCRAFT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PRINTCRAFT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PRINTCRAFT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PRINTCRAFT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PRINTCRAFT_AUTO_MIGRATE" default:"false"`
}

// PricingConfig carries the customization add-on price book used by the
// pricing engine. Values are whole currency units, not cents.
type PricingConfig struct {
	ImageUploadCost      float64  `envconfig:"PRINTCRAFT_PRICING_IMAGE_UPLOAD_COST" default:"5"`
	TextAreaCost         float64  `envconfig:"PRINTCRAFT_PRICING_TEXT_AREA_COST" default:"2"`
	MaxBillableTextAreas int      `envconfig:"PRINTCRAFT_PRICING_MAX_BILLABLE_TEXT_AREAS" default:"5"`
	FullBodyDesignCost   float64  `envconfig:"PRINTCRAFT_PRICING_FULL_BODY_DESIGN_COST" default:"10"`
	PremiumFontSurcharge float64  `envconfig:"PRINTCRAFT_PRICING_PREMIUM_FONT_SURCHARGE" default:"1.5"`
	PremiumFonts         []string `envconfig:"PRINTCRAFT_PRICING_PREMIUM_FONTS" default:"Brush Script,Edwardian,Copperplate"`
}

type CheckoutConfig struct {
	FreeShippingThreshold float64 `envconfig:"PRINTCRAFT_CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"100"`
	ShippingFee           float64 `envconfig:"PRINTCRAFT_CHECKOUT_SHIPPING_FEE" default:"7.5"`
	TaxRate               float64 `envconfig:"PRINTCRAFT_CHECKOUT_TAX_RATE" default:"0.08"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"PRINTCRAFT_CART_SESSION_TTL" default:"168h"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"PRINTCRAFT_GCP_PROJECT_ID"`
}

// PubSubConfig names the topic order lifecycle events are published to.
// Leaving the topic empty disables eventing entirely.
type PubSubConfig struct {
	OrderEventsTopic string `envconfig:"PRINTCRAFT_PUBSUB_ORDER_EVENTS_TOPIC"`
}

func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.OrderEventsTopic) != ""
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
