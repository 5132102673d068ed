package config

import (
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Pg                Pg       `yaml:"pg"`
	JwtTTLSeconds     int      `yaml:"jwt_ttl_seconds"`
	LogLevel          string   `yaml:"log_level"`
	LogJSON           bool     `yaml:"log_json"`
	SecureCookies     bool     `yaml:"secure_cookies"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	ActivityPageLimit int      `yaml:"activity_page_limit"` // max audit rows returned per activity query
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLSeconds) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, then applies
// environment overrides for secrets. A .env file next to the process is
// honored if present so local runs don't need exports.
func MustLoad(configFolder string) *Config {
	_ = godotenv.Load() // missing .env is fine

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if v := os.Getenv("QUIZDECK_PG_PASSWORD"); v != "" {
		public.Pg.Password = v
	}
	if v := os.Getenv("QUIZDECK_JWT_KEY"); v != "" {
		private.JwtKey = v
	}

	if public.ActivityPageLimit <= 0 {
		public.ActivityPageLimit = 200
	}

	if public.JwtTTLSeconds <= 0 {
		panic("config: jwt_ttl_seconds must be positive")
	}
	if public.Pg.Host == "" || public.Pg.Dbname == "" {
		panic("config: pg host and dbname are required")
	}
	if private.JwtKey == "" {
		panic("config: jwt_key is required")
	}

	return &Config{public, private}
}
