package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCalendarID = "33"
	DefaultTimezone   = "Asia/Tokyo"
	DefaultUserAgent  = "toshin-chieria-calender-api/1.0 (+https://github.com/nw3q/toshin-chieria-calender-api)"
)

// Config es la configuración completa del servicio.
// Se carga desde YAML (opcional) y se sobreescribe con variables de entorno.
type Config struct {
	// Listen es la dirección HTTP de escucha (ej. ":8080").
	Listen string `yaml:"listen"`

	// SourceBaseURL es la URL de la página del calendario upstream.
	// Obligatoria: sin ella el fetcher falla con error de configuración.
	SourceBaseURL string `yaml:"source_base_url"`

	// SourcePageID es el id de página del fallback wp-json. Opcional;
	// si está vacío no se intenta el fallback de content-API.
	SourcePageID string `yaml:"source_page_id"`

	// CalendarID identifica el calendario en los campos de procedencia.
	CalendarID string `yaml:"calendar_id"`

	// Timezone es la zona IANA usada para resolver el año/mes actual.
	Timezone string `yaml:"timezone"`

	// UserAgent identifica este servicio ante el upstream.
	UserAgent string `yaml:"user_agent"`

	// CacheTTLSeconds es la vigencia de las respuestas en la cache compartida.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// DatabaseDSN, si viene, activa la cache compartida en Postgres.
	// Si está vacío se usa la cache en memoria.
	DatabaseDSN string `yaml:"database_dsn"`
}

func Default() *Config {
	return &Config{
		Listen:          ":8080",
		CalendarID:      DefaultCalendarID,
		Timezone:        DefaultTimezone,
		UserAgent:       DefaultUserAgent,
		CacheTTLSeconds: 300,
	}
}

// Normalize rellena valores faltantes con defaults razonables, para que
// configs parciales (o antiguas) sigan funcionando.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.CalendarID == "" {
		c.CalendarID = DefaultCalendarID
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = 300
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load lee la configuración YAML desde path.
// Si el archivo no existe, devuelve defaults (el servicio puede correr
// solo con variables de entorno).
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// ApplyEnv sobreescribe campos con variables de entorno no vacías.
// Los nombres vienen del deploy original (bindings del worker).
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
	if v := os.Getenv("SOURCE_BASE_URL"); v != "" {
		c.SourceBaseURL = v
	}
	if v := os.Getenv("SOURCE_PAGE_ID"); v != "" {
		c.SourcePageID = v
	}
	if v := os.Getenv("CALENDAR_ID"); v != "" {
		c.CalendarID = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DatabaseDSN = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.CacheTTLSeconds = n
		}
	}
}

// LoadFromEnv carga CONFIG_PATH (si existe) y aplica overrides de entorno.
func LoadFromEnv() (*Config, error) {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.Normalize()
	return cfg, nil
}
