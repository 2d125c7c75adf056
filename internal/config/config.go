package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Overpass OverpassConfig
	Wikidata WikidataConfig
	Importer ImporterConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ReverseGeocodeTTL time.Duration
}

type LogConfig struct {
	Level string
}

// OverpassConfig - настройки клиента Overpass API
type OverpassConfig struct {
	URL                string
	QueryTimeout       int // секунды, уходит в заголовок запроса [timeout:N]
	RequestTimeout     time.Duration
	MaxAttempts        int
	RetryBaseDelay     time.Duration
	GeometryBatchSize  int
	GeometryBatchDelay time.Duration
}

// WikidataConfig - настройки клиента Wikidata API
type WikidataConfig struct {
	URL            string
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration
	BatchSize      int
	BatchDelay     time.Duration
}

// ImporterConfig - настройки пайплайна импорта границ
type ImporterConfig struct {
	Country            string // ISO3; пустая строка включает мультистрановый режим
	MinAdminLevel      int
	MaxAdminLevel      int
	DBBatchSize        int
	CountryConcurrency int
	CountryBatchDelay  time.Duration
	Countries          []string // переопределение каталога стран для мультистранового режима
	UserAgent          string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: в контейнере конфигурация приходит из окружения
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ReverseGeocodeTTL: time.Duration(viper.GetInt("REVERSE_GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Overpass: OverpassConfig{
			URL:                viper.GetString("OVERPASS_URL"),
			QueryTimeout:       viper.GetInt("OVERPASS_QUERY_TIMEOUT"),
			RequestTimeout:     time.Duration(viper.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Second,
			MaxAttempts:        viper.GetInt("OVERPASS_MAX_ATTEMPTS"),
			RetryBaseDelay:     time.Duration(viper.GetInt("OVERPASS_RETRY_BASE_DELAY_MS")) * time.Millisecond,
			GeometryBatchSize:  viper.GetInt("OVERPASS_GEOMETRY_BATCH"),
			GeometryBatchDelay: time.Duration(viper.GetInt("OVERPASS_GEOMETRY_BATCH_DELAY_MS")) * time.Millisecond,
		},
		Wikidata: WikidataConfig{
			URL:            viper.GetString("WIKIDATA_URL"),
			RequestTimeout: time.Duration(viper.GetInt("WIKIDATA_REQUEST_TIMEOUT")) * time.Second,
			MaxAttempts:    viper.GetInt("WIKIDATA_MAX_ATTEMPTS"),
			RetryBaseDelay: time.Duration(viper.GetInt("WIKIDATA_RETRY_BASE_DELAY_MS")) * time.Millisecond,
			BatchSize:      viper.GetInt("WIKIDATA_BATCH"),
			BatchDelay:     time.Duration(viper.GetInt("WIKIDATA_BATCH_DELAY_MS")) * time.Millisecond,
		},
		Importer: ImporterConfig{
			Country:            strings.ToUpper(strings.TrimSpace(viper.GetString("IMPORT_COUNTRY"))),
			MinAdminLevel:      viper.GetInt("IMPORT_MIN_ADMIN_LEVEL"),
			MaxAdminLevel:      viper.GetInt("IMPORT_MAX_ADMIN_LEVEL"),
			DBBatchSize:        viper.GetInt("IMPORT_DB_BATCH"),
			CountryConcurrency: viper.GetInt("IMPORT_COUNTRY_CONCURRENCY"),
			CountryBatchDelay:  time.Duration(viper.GetInt("IMPORT_COUNTRY_BATCH_DELAY_MS")) * time.Millisecond,
			Countries:          parseCountryList(viper.GetString("IMPORT_COUNTRIES")),
			UserAgent:          viper.GetString("IMPORT_USER_AGENT"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults проставляет значения по умолчанию для незаданных параметров
func applyDefaults(cfg *Config) {
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30 * time.Second
	}
	if cfg.Cache.ReverseGeocodeTTL == 0 {
		cfg.Cache.ReverseGeocodeTTL = 300 * time.Second
	}

	if cfg.Overpass.URL == "" {
		cfg.Overpass.URL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.QueryTimeout == 0 {
		cfg.Overpass.QueryTimeout = 90
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 120 * time.Second
	}
	if cfg.Overpass.MaxAttempts == 0 {
		cfg.Overpass.MaxAttempts = 3
	}
	if cfg.Overpass.RetryBaseDelay == 0 {
		cfg.Overpass.RetryBaseDelay = 1000 * time.Millisecond
	}
	if cfg.Overpass.GeometryBatchSize == 0 {
		cfg.Overpass.GeometryBatchSize = 100
	}
	if cfg.Overpass.GeometryBatchDelay == 0 {
		cfg.Overpass.GeometryBatchDelay = 250 * time.Millisecond
	}

	if cfg.Wikidata.URL == "" {
		cfg.Wikidata.URL = "https://www.wikidata.org"
	}
	if cfg.Wikidata.RequestTimeout == 0 {
		cfg.Wikidata.RequestTimeout = 30 * time.Second
	}
	if cfg.Wikidata.MaxAttempts == 0 {
		cfg.Wikidata.MaxAttempts = 3
	}
	if cfg.Wikidata.RetryBaseDelay == 0 {
		cfg.Wikidata.RetryBaseDelay = 1000 * time.Millisecond
	}
	if cfg.Wikidata.BatchSize == 0 {
		cfg.Wikidata.BatchSize = 50
	}
	if cfg.Wikidata.BatchDelay == 0 {
		cfg.Wikidata.BatchDelay = 100 * time.Millisecond
	}

	if cfg.Importer.MinAdminLevel == 0 {
		cfg.Importer.MinAdminLevel = 4
	}
	if cfg.Importer.MaxAdminLevel == 0 {
		cfg.Importer.MaxAdminLevel = 11
	}
	if cfg.Importer.DBBatchSize == 0 {
		cfg.Importer.DBBatchSize = 1000
	}
	if cfg.Importer.CountryConcurrency == 0 {
		cfg.Importer.CountryConcurrency = 5
	}
	if cfg.Importer.CountryBatchDelay == 0 {
		cfg.Importer.CountryBatchDelay = 5000 * time.Millisecond
	}
	if cfg.Importer.UserAgent == "" {
		cfg.Importer.UserAgent = "boundary-importer/1.0 (administrative boundary ETL; ops@boundary-importer.dev)"
	}
}

func validate(cfg *Config) error {
	if cfg.Importer.MinAdminLevel < 2 || cfg.Importer.MinAdminLevel > 11 {
		return fmt.Errorf("invalid IMPORT_MIN_ADMIN_LEVEL: %d (must be 2-11)", cfg.Importer.MinAdminLevel)
	}
	if cfg.Importer.MaxAdminLevel < 2 || cfg.Importer.MaxAdminLevel > 11 {
		return fmt.Errorf("invalid IMPORT_MAX_ADMIN_LEVEL: %d (must be 2-11)", cfg.Importer.MaxAdminLevel)
	}
	if cfg.Importer.MinAdminLevel > cfg.Importer.MaxAdminLevel {
		return fmt.Errorf("IMPORT_MIN_ADMIN_LEVEL (%d) must not exceed IMPORT_MAX_ADMIN_LEVEL (%d)",
			cfg.Importer.MinAdminLevel, cfg.Importer.MaxAdminLevel)
	}
	if cfg.Importer.Country != "" && len(cfg.Importer.Country) != 3 {
		return fmt.Errorf("invalid IMPORT_COUNTRY: %q (expected ISO3 code)", cfg.Importer.Country)
	}
	return nil
}

func parseCountryList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToUpper(strings.TrimSpace(p)); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
