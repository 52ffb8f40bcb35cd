package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverOracle = "oracle"
)

type Config struct {
	DB          DBConfig
	Server      ServerConfig
	Redis       RedisConfig
	Logger      LoggerConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	Auth        AuthConfig
	Paper       PaperConfig
	Export      ExportConfig
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type LoggerConfig struct {
	Env   string
	Level string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// AuthConfig limits login attempts per client IP.
type AuthConfig struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
}

type PaperConfig struct {
	VariantPolicy string
	RandomSeed    uint64
}

type ExportConfig struct {
	PDFEnabled         bool
	CacheTTL           time.Duration
	RenderTimeout      time.Duration
	InstitutionName    string
	InstitutionTagline string
}

// ParseTTLStringOrDefault parses a Go duration string such as "15m", falling back on empty or bad input.
func ParseTTLStringOrDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "examcraft.db")
	v.SetDefault("db.port", 1521)
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("auth.rate_limit_max", 20)
	v.SetDefault("paper.variant_policy", "permute")
	v.SetDefault("export.pdf_enabled", false)
	v.SetDefault("export.institution_name", "Examination Question Paper")
	v.SetDefault("export.institution_tagline", "Academic Excellence & Knowledge Assessment")
}

// LoadConfig reads config.yaml and lets environment variables override any key
// (db.host -> DB_HOST). A missing config file falls back to defaults.
func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	config := &Config{
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Path:     v.GetString("db.path"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		JWT: JWTConfig{
			SecretKey:       v.GetString("jwt.secret_key"),
			AccessTokenTTL:  ParseTTLStringOrDefault(v.GetString("jwt.access_token_ttl"), 15*time.Minute),
			RefreshTokenTTL: ParseTTLStringOrDefault(v.GetString("jwt.refresh_token_ttl"), 7*24*time.Hour),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     v.GetString("google_oauth.client_id"),
			ClientSecret: v.GetString("google_oauth.client_secret"),
			RedirectURL:  v.GetString("google_oauth.redirect_url"),
		},
		Auth: AuthConfig{
			RateLimitMax:    v.GetInt("auth.rate_limit_max"),
			RateLimitWindow: ParseTTLStringOrDefault(v.GetString("auth.rate_limit_window"), time.Minute),
		},
		Paper: PaperConfig{
			VariantPolicy: v.GetString("paper.variant_policy"),
			RandomSeed:    v.GetUint64("paper.random_seed"),
		},
		Export: ExportConfig{
			PDFEnabled:         v.GetBool("export.pdf_enabled"),
			CacheTTL:           ParseTTLStringOrDefault(v.GetString("export.cache_ttl"), 10*time.Minute),
			RenderTimeout:      ParseTTLStringOrDefault(v.GetString("export.render_timeout"), 30*time.Second),
			InstitutionName:    v.GetString("export.institution_name"),
			InstitutionTagline: v.GetString("export.institution_tagline"),
		},
	}

	return config
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == DriverOracle {
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	}
	return c.DB.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
