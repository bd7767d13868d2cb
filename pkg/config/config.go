package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Mail    MailConfig
	Notify  NotifyConfig
	Storage StorageConfig
	Metrics MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Locale   string // idioma por defecto para textos generados (ej. nombre de la bodega principal)
}

// StoreConfig selecciona el almacén documental.
type StoreConfig struct {
	Driver string // "postgres" | "memory"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig conexión a Redis (credenciales OAuth de Gmail/Calendar).
// Addr vacío = credenciales en memoria.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	SealKey   string // 32 bytes en hex para cifrar los tokens guardados
	KeyPrefix string
}

// JWTConfig validación del token emitido por el proveedor de identidad.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MailConfig endpoints y límites de las APIs de Google.
type MailConfig struct {
	GmailBaseURL    string
	CalendarBaseURL string
	RatePerSecond   float64
	Burst           int
	Timeout         time.Duration
}

// NotifyConfig intervalo del sondeo de notificaciones y ventana de caducidad.
type NotifyConfig struct {
	PollInterval time.Duration
	ExpiryWindow time.Duration
}

// StorageConfig almacenamiento S3-compatible para informes y cotizaciones archivadas.
// Bucket vacío = archivo deshabilitado.
type StorageConfig struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UsePathStyle      bool
	PresignExpiration time.Duration
}

// Enabled indica si hay un bucket configurado.
func (c StorageConfig) Enabled() bool { return c.Bucket != "" }

// MetricsConfig exposición de /metrics (Prometheus).
type MetricsConfig struct {
	Enabled bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, REDIS_ADDR, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "allinstock"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Locale:   getString(v, "APP_LOCALE", "pt"),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "postgres"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "allinstock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:      getString(v, "REDIS_ADDR", ""),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			SealKey:   getString(v, "CREDENTIALS_SEAL_KEY", ""),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "allinstock:oauth:"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Mail: MailConfig{
			GmailBaseURL:    getString(v, "GMAIL_BASE_URL", "https://gmail.googleapis.com"),
			CalendarBaseURL: getString(v, "CALENDAR_BASE_URL", "https://www.googleapis.com/calendar/v3"),
			RatePerSecond:   getFloat(v, "GOOGLE_RATE_PER_SECOND", 5),
			Burst:           getInt(v, "GOOGLE_RATE_BURST", 10),
			Timeout:         getDuration(v, "GOOGLE_TIMEOUT", 20*time.Second),
		},
		Notify: NotifyConfig{
			PollInterval: getDuration(v, "NOTIFY_POLL_INTERVAL", 5*time.Minute),
			ExpiryWindow: getDuration(v, "NOTIFY_EXPIRY_WINDOW", 30*24*time.Hour),
		},
		Storage: StorageConfig{
			Endpoint:          getString(v, "STORAGE_ENDPOINT", ""),
			Region:            getString(v, "STORAGE_REGION", "us-east-1"),
			Bucket:            getString(v, "STORAGE_BUCKET", ""),
			AccessKey:         getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:         getString(v, "STORAGE_SECRET_KEY", ""),
			UsePathStyle:      getBool(v, "STORAGE_USE_PATH_STYLE", true),
			PresignExpiration: getDuration(v, "STORAGE_PRESIGN_EXPIRATION", 15*time.Minute),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
	}

	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "memory" {
		return nil, fmt.Errorf("STORE_DRIVER inválido: %q", cfg.Store.Driver)
	}
	if cfg.Notify.PollInterval <= 0 {
		return nil, fmt.Errorf("NOTIFY_POLL_INTERVAL debe ser positivo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getDuration acepta "90s", "5m", "1h".
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return d
	}
	return def
}
