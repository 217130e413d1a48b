package config

import (
	"errors"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	AppPort               int    `mapstructure:"APP_PORT"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogFormat             string `mapstructure:"LOG_FORMAT"`
	DevMode               bool   `mapstructure:"DEV_MODE"`
	StoreBackend          string `mapstructure:"STORE_BACKEND"`
	MongoURI              string `mapstructure:"MONGO_URI"`
	MongoDBName           string `mapstructure:"MONGO_DB_NAME"`
	MongoTxnTimeoutSec    int    `mapstructure:"MONGO_TXN_TIMEOUT_SEC"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	JWTAlgorithm          string `mapstructure:"JWT_ALGORITHM"`
	JWTPublicKeyFile      string `mapstructure:"JWT_PUBLIC_KEY_FILE"`
	JWTUserClaim          string `mapstructure:"JWT_USER_CLAIM"`
	AllowedOrigins        string `mapstructure:"ALLOWED_ORIGINS"`
	APIRatePerMin         int    `mapstructure:"API_RATE_PER_MIN"`
	RouteMetricsEnabled   bool   `mapstructure:"ROUTE_METRICS_ENABLED"`
	RequestLoggingEnabled bool   `mapstructure:"REQUEST_LOGGING_ENABLED"`
	WSMaxSessionSec       int    `mapstructure:"WS_MAX_SESSION_SEC"`
	WSOutboxBuffer        int    `mapstructure:"WS_OUTBOX_BUFFER"`
	AttachmentsBackend    string `mapstructure:"ATTACHMENTS_BACKEND"`
	UploadDir             string `mapstructure:"UPLOAD_DIR"`
	UploadURL             string `mapstructure:"UPLOAD_URL"`
	MaxUploadMB           int    `mapstructure:"MAX_UPLOAD_MB"`
	PyroscopeAddress      string `mapstructure:"PYROSCOPE_SERVER_ADDRESS"`
}

// Store backends.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Attachment backends.
const (
	AttachmentsGridFS = "gridfs"
	AttachmentsDisk   = "disk"
)

// DevJWTSecret signs tokens in DEV_MODE when JWT_SECRET is not set.
const DevJWTSecret = "note-ledger-dev-mode-secret-not-for-production-use"

var (
	ErrAppPortRange            = errors.New("APP_PORT must be between 1 and 65535")
	ErrLogLevelEmpty           = errors.New("LOG_LEVEL cannot be empty")
	ErrLogFormatEmpty          = errors.New("LOG_FORMAT cannot be empty")
	ErrStoreBackendUnsupported = errors.New("STORE_BACKEND must be either mongo or memory")
	ErrMongoURIEmpty           = errors.New("MONGO_URI cannot be empty")
	ErrMongoDBNameEmpty        = errors.New("MONGO_DB_NAME cannot be empty")
	ErrMongoTxnTimeout         = errors.New("MONGO_TXN_TIMEOUT_SEC must be greater than 0")
	ErrJWTSecretRequired       = errors.New("JWT_SECRET is required unless DEV_MODE is enabled")
	ErrJWTSecretTooShort       = errors.New("JWT_SECRET must be at least 32 characters for HS256")
	ErrJWTPublicKeyRequired    = errors.New("JWT_PUBLIC_KEY_FILE is required for RS256")
	ErrJWTAlgorithmUnsupported = errors.New("JWT_ALGORITHM must be either HS256 or RS256")
	ErrJWTUserClaimEmpty       = errors.New("JWT_USER_CLAIM cannot be empty")
	ErrAPIRatePerMin           = errors.New("API_RATE_PER_MIN must be greater than or equal to 1")
	ErrWSMaxSession            = errors.New("WS_MAX_SESSION_SEC must be greater than 0")
	ErrWSOutboxBuffer          = errors.New("WS_OUTBOX_BUFFER must be greater than 0")
	ErrAttachmentsUnsupported  = errors.New("ATTACHMENTS_BACKEND must be either gridfs or disk")
	ErrAttachmentsNeedMongo    = errors.New("ATTACHMENTS_BACKEND=gridfs requires STORE_BACKEND=mongo")
	ErrUploadDirEmpty          = errors.New("UPLOAD_DIR cannot be empty for the disk backend")
	ErrMaxUploadMB             = errors.New("MAX_UPLOAD_MB must be greater than 0")
)

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DEV_MODE", false)
	v.SetDefault("STORE_BACKEND", StoreMongo)
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DB_NAME", "noteledger")
	v.SetDefault("MONGO_TXN_TIMEOUT_SEC", 10)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_PUBLIC_KEY_FILE", "")
	v.SetDefault("JWT_USER_CLAIM", "user_id")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("API_RATE_PER_MIN", 600)
	v.SetDefault("ROUTE_METRICS_ENABLED", true)
	v.SetDefault("REQUEST_LOGGING_ENABLED", true)
	v.SetDefault("WS_MAX_SESSION_SEC", 900)
	v.SetDefault("WS_OUTBOX_BUFFER", 256)
	v.SetDefault("ATTACHMENTS_BACKEND", AttachmentsGridFS)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_URL", "/uploads")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("PYROSCOPE_SERVER_ADDRESS", "")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// a missing .env is fine
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validate checks if required configuration fields are properly set
func (c Config) Validate() error {
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return ErrAppPortRange
	}
	if c.LogLevel == "" {
		return ErrLogLevelEmpty
	}
	if c.LogFormat == "" {
		return ErrLogFormatEmpty
	}

	switch c.StoreBackend {
	case StoreMongo:
		if c.MongoURI == "" {
			return ErrMongoURIEmpty
		}
		if c.MongoDBName == "" {
			return ErrMongoDBNameEmpty
		}
		if c.MongoTxnTimeoutSec <= 0 {
			return ErrMongoTxnTimeout
		}
	case StoreMemory:
	default:
		return ErrStoreBackendUnsupported
	}

	switch c.JWTAlgorithm {
	case "HS256":
		if c.JWTSecret == "" && !c.DevMode {
			return ErrJWTSecretRequired
		}
		if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
			return ErrJWTSecretTooShort
		}
	case "RS256":
		if c.JWTPublicKeyFile == "" {
			return ErrJWTPublicKeyRequired
		}
	default:
		return ErrJWTAlgorithmUnsupported
	}
	if c.JWTUserClaim == "" {
		return ErrJWTUserClaimEmpty
	}

	if c.APIRatePerMin < 1 {
		return ErrAPIRatePerMin
	}
	if c.WSMaxSessionSec <= 0 {
		return ErrWSMaxSession
	}
	if c.WSOutboxBuffer <= 0 {
		return ErrWSOutboxBuffer
	}

	switch c.AttachmentsBackend {
	case AttachmentsGridFS:
		if c.StoreBackend != StoreMongo {
			return ErrAttachmentsNeedMongo
		}
	case AttachmentsDisk:
		if c.UploadDir == "" {
			return ErrUploadDirEmpty
		}
	default:
		return ErrAttachmentsUnsupported
	}
	if c.MaxUploadMB <= 0 {
		return ErrMaxUploadMB
	}
	return nil
}

// SigningSecret returns the HMAC secret used for HS256 tokens.
func (c Config) SigningSecret() string {
	if c.JWTSecret == "" && c.DevMode {
		return DevJWTSecret
	}
	return c.JWTSecret
}

// Origins splits ALLOWED_ORIGINS into trimmed entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
