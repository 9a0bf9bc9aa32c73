package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Entornos. Solo development tolera secretos ausentes; sin APP_ENV se asume production.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Token   TokenConfig
	APIAuth APIAuthConfig
	Store   StoreConfig
	Mongo   MongoConfig
	DB      DBConfig
	ERPNext ERPNextConfig
	SMTP    SMTPConfig
	OTP     OTPConfig
	Reports ReportsConfig

	// GeneratedSecrets lista las claves que se rellenaron con valores aleatorios en development.
	GeneratedSecrets []string
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	CORSOrigins string
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

// TokenConfig configuración del códec de tokens firmados.
type TokenConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// APIAuthConfig credenciales de servicio que habilitan el token de alcance "api".
type APIAuthConfig struct {
	User string
	Pass string
	Key  string
}

// StoreConfig selecciona el backend del almacén de usuarios: "mongo" o "postgres".
type StoreConfig struct {
	Driver string
}

// MongoConfig conexión a MongoDB.
type MongoConfig struct {
	URI      string
	Database string
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

// ERPNextConfig acceso a la API REST de ERPNext (sistema de registro externo).
type ERPNextConfig struct {
	BaseURL        string
	APIKey         string
	APISecret      string
	TimeoutSeconds int
	PageSize       int
}

// SMTPConfig servidor de correo saliente.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// OTPConfig parámetros de los códigos de un solo uso enviados por correo.
type OTPConfig struct {
	Issuer        string
	PeriodSeconds int
	Digits        int
	MaxAttempts   int
}

// ReportsConfig ajustes de los reportes.
type ReportsConfig struct {
	EmptyAsNotFound bool   // true: cero filas en /reports responde 404
	HeadcountCutoff string // HH:MM; marcaje antes de esta hora cuenta como presente
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Termina con Validate: fuera de development no hay secretos por defecto.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", EnvProduction),
			Name:        getString(v, "APP_NAME", "hrportal-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Token: TokenConfig{
			Secret:     getString(v, "TOKEN_SECRET", ""),
			Expiration: getInt(v, "TOKEN_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "TOKEN_ISSUER", "hrportal-api"),
		},
		APIAuth: APIAuthConfig{
			User: getString(v, "API_AUTH_USER", ""),
			Pass: getString(v, "API_AUTH_PASS", ""),
			Key:  getString(v, "API_AUTH_KEY", ""),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", "mongo")),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DATABASE", "hrportal"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "hrportal"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		ERPNext: ERPNextConfig{
			BaseURL:        strings.TrimRight(getString(v, "ERPNEXT_URL", "http://localhost:8000"), "/"),
			APIKey:         getString(v, "ERPNEXT_API_KEY", ""),
			APISecret:      getString(v, "ERPNEXT_API_SECRET", ""),
			TimeoutSeconds: getInt(v, "ERPNEXT_TIMEOUT_SECONDS", 30),
			PageSize:       getInt(v, "ERPNEXT_PAGE_SIZE", 500),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", "localhost"),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", "no-reply@localhost"),
		},
		OTP: OTPConfig{
			Issuer:        getString(v, "OTP_ISSUER", "HR Portal"),
			PeriodSeconds: getInt(v, "OTP_PERIOD_SECONDS", 300),
			Digits:        getInt(v, "OTP_DIGITS", 6),
			MaxAttempts:   getInt(v, "OTP_MAX_ATTEMPTS", 5),
		},
		Reports: ReportsConfig{
			EmptyAsNotFound: getBool(v, "REPORTS_EMPTY_AS_NOT_FOUND", true),
			HeadcountCutoff: getString(v, "HEADCOUNT_CUTOFF", "10:00"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate exige los secretos de firma y de API. En development rellena los ausentes con
// valores aleatorios por proceso y los deja anotados en GeneratedSecrets.
func (c *Config) Validate() error {
	secrets := []struct {
		key string
		val *string
	}{
		{"TOKEN_SECRET", &c.Token.Secret},
		{"API_AUTH_USER", &c.APIAuth.User},
		{"API_AUTH_PASS", &c.APIAuth.Pass},
		{"API_AUTH_KEY", &c.APIAuth.Key},
	}

	var missing []string
	for _, s := range secrets {
		if strings.TrimSpace(*s.val) != "" {
			continue
		}
		if c.App.Env != EnvDevelopment {
			missing = append(missing, s.key)
			continue
		}
		generated, err := randomSecret()
		if err != nil {
			return fmt.Errorf("config: generar %s: %w", s.key, err)
		}
		*s.val = generated
		c.GeneratedSecrets = append(c.GeneratedSecrets, s.key)
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: variables requeridas sin valor en %s: %s", c.App.Env, strings.Join(missing, ", "))
	}

	switch c.Store.Driver {
	case "mongo", "postgres":
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	if c.Token.Expiration <= 0 {
		return errors.New("config: TOKEN_EXPIRATION_MINUTES debe ser positivo")
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
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
		case int:
			return v.GetInt(key)
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
