package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Remote  RemoteConfig
	Storage StorageConfig
	Search  SearchConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	AllowDemo bool // habilita login demo y el override de rol (nunca en producción)
}

// IsProduction indica si corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// RemoteConfig configuración del fetch de la colección remota de demo.
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StorageConfig configuración del almacenamiento local del dispositivo.
// Backend: "file" (un JSON por clave) o "sqlite" (tabla kv en un archivo).
type StorageConfig struct {
	Backend string
	Path    string
}

// SearchConfig configuración del motor de búsqueda de la vista de usuarios.
type SearchConfig struct {
	DebounceMillis int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// HTTP_PORT, JWT_SECRET, REMOTE_API_BASE_URL, STORAGE_BACKEND, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "admin-panel"),
			AllowDemo: getBool(v, "APP_ALLOW_DEMO", true),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "admin-panel"),
		},
		Remote: RemoteConfig{
			BaseURL:        getString(v, "REMOTE_API_BASE_URL", "https://jsonplaceholder.typicode.com"),
			TimeoutSeconds: getInt(v, "REMOTE_TIMEOUT_SECONDS", 10),
		},
		Storage: StorageConfig{
			Backend: getString(v, "STORAGE_BACKEND", "file"),
			Path:    getString(v, "STORAGE_PATH", "./data"),
		},
		Search: SearchConfig{
			DebounceMillis: getInt(v, "SEARCH_DEBOUNCE_MS", 300),
		},
	}

	// En producción el login demo y el override de rol quedan fuera siempre.
	if cfg.App.IsProduction() {
		cfg.App.AllowDemo = false
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
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
