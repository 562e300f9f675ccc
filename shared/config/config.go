package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpAddr      string        `yaml:"http_addr"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	TopicsPerPage int           `yaml:"topics_per_page"`
	PostsPerPage  int           `yaml:"posts_per_page"`
	RecentPosts   int           `yaml:"recent_posts"` // posts shown next to the reply form
	BoardCacheTTL time.Duration `yaml:"board_cache_ttl"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	JwtTTL        time.Duration `yaml:"jwt_ttl"` // lifetime of tokens minted by dev-token
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Redis struct {
	URL string `yaml:"url"` // empty disables the board cache
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	Redis  Redis  `yaml:"redis"`
	JwtKey string `yaml:"jwt_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

func (p *Public) applyDefaults() {
	if p.HttpAddr == "" {
		p.HttpAddr = ":8080"
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.TopicsPerPage <= 0 {
		p.TopicsPerPage = 20
	}
	if p.PostsPerPage <= 0 {
		p.PostsPerPage = 10
	}
	if p.RecentPosts <= 0 {
		p.RecentPosts = 10
	}
	if p.BoardCacheTTL <= 0 {
		p.BoardCacheTTL = time.Minute
	}
	if p.JwtTTL <= 0 {
		p.JwtTTL = 24 * time.Hour
	}
}

func (p *Private) validate() error {
	if p.JwtKey == "" {
		return fmt.Errorf("jwt_key is required")
	}
	if p.Pg.Host == "" {
		return fmt.Errorf("pg.host is required")
	}
	if p.Pg.Port == 0 {
		p.Pg.Port = 5432
	}
	return nil
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// Panics on missing files or missing required private settings.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	if err := private.validate(); err != nil {
		panic("invalid private config: " + err.Error())
	}

	return &Config{Public: public, Private: private}
}
