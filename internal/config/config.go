package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`

		// AllowedOrigins pins CORS to the dashboard frontend. Empty means
		// wildcard without credentials.
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Auth struct {
		BaseURL         string        `yaml:"base_url"`
		AnonKey         string        `yaml:"anon_key"`
		Timeout         time.Duration `yaml:"timeout" default:"10s"`
		SessionCacheTTL time.Duration `yaml:"session_cache_ttl" default:"5m"`
	} `yaml:"auth"`

	Database struct {
		URL            string        `yaml:"url"`
		MaxConns       int           `yaml:"max_conns" default:"10"`
		ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`
	} `yaml:"database"`

	Uploads struct {
		TempDir      string        `yaml:"temp_dir"`
		MaxSize      int64         `yaml:"max_size" default:"10485760"` // bytes
		RateLimit    int           `yaml:"rate_limit" default:"30"`     // parses per minute per user
		RateBurst    int           `yaml:"rate_burst" default:"5"`
		ParseTimeout time.Duration `yaml:"parse_timeout" default:"30s"`
	} `yaml:"uploads"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
		Enabled  bool          `yaml:"enabled" default:"true"`
	} `yaml:"redis"`

	DigitalOcean struct {
		Spaces struct {
			BucketURL       string `yaml:"bucket_url"`
			CDNEndpoint     string `yaml:"cdn_endpoint"`
			AccessKeyID     string `yaml:"access_key_id"`
			AccessKeySecret string `yaml:"access_key_secret"`
			Region          string `yaml:"region" default:"blr1"`
			BucketName      string `yaml:"bucket_name"`
		} `yaml:"spaces"`
	} `yaml:"digitalocean"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Auth.Timeout = 10 * time.Second
	config.Auth.SessionCacheTTL = 5 * time.Minute

	config.Database.MaxConns = 10
	config.Database.ConnectTimeout = 10 * time.Second

	config.Uploads.TempDir = os.TempDir()
	config.Uploads.MaxSize = 10 << 20
	config.Uploads.RateLimit = 30
	config.Uploads.RateBurst = 5
	config.Uploads.ParseTimeout = 30 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.Enabled = true

	config.DigitalOcean.Spaces.Region = "blr1"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}

	if authURL := os.Getenv("SUPABASE_URL"); authURL != "" {
		c.Auth.BaseURL = authURL
	}

	if anonKey := os.Getenv("SUPABASE_ANON_KEY"); anonKey != "" {
		c.Auth.AnonKey = anonKey
	}

	if cacheTTL := os.Getenv("SESSION_CACHE_TTL"); cacheTTL != "" {
		if ttl, err := time.ParseDuration(cacheTTL); err == nil {
			c.Auth.SessionCacheTTL = ttl
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}

	if maxConns := os.Getenv("DATABASE_MAX_CONNS"); maxConns != "" {
		if n, err := strconv.Atoi(maxConns); err == nil {
			c.Database.MaxConns = n
		}
	}

	if tempDir := os.Getenv("UPLOAD_TEMP_DIR"); tempDir != "" {
		c.Uploads.TempDir = tempDir
	}

	if maxSize := os.Getenv("UPLOAD_MAX_SIZE"); maxSize != "" {
		if n, err := strconv.ParseInt(maxSize, 10, 64); err == nil {
			c.Uploads.MaxSize = n
		}
	}

	if rateLimit := os.Getenv("UPLOAD_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.Uploads.RateLimit = n
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisEnabled := os.Getenv("REDIS_ENABLED"); redisEnabled != "" {
		c.Redis.Enabled = redisEnabled == "true" || redisEnabled == "1"
	}

	// DigitalOcean Spaces configuration
	if bucketURL := os.Getenv("BUCKET_URL"); bucketURL != "" {
		c.DigitalOcean.Spaces.BucketURL = bucketURL
	}

	if cdnEndpoint := os.Getenv("BUCKET_CDN_ENDPOINT"); cdnEndpoint != "" {
		c.DigitalOcean.Spaces.CDNEndpoint = cdnEndpoint
	}

	if accessKeyID := os.Getenv("BUCKET_ACCESS_KEY_ID"); accessKeyID != "" {
		c.DigitalOcean.Spaces.AccessKeyID = accessKeyID
	}

	if accessKeySecret := os.Getenv("BUCKET_ACCESS_KEY_SECRET"); accessKeySecret != "" {
		c.DigitalOcean.Spaces.AccessKeySecret = accessKeySecret
	}

	if region := os.Getenv("BUCKET_REGION"); region != "" {
		c.DigitalOcean.Spaces.Region = region
	}

	if bucketName := os.Getenv("BUCKET_NAME"); bucketName != "" {
		c.DigitalOcean.Spaces.BucketName = bucketName
	}
}

// SpacesConfigured reports whether object storage credentials are present.
// Document storage is optional; the parse endpoint works without it.
func (c *Config) SpacesConfigured() bool {
	s := c.DigitalOcean.Spaces
	return s.AccessKeyID != "" && s.AccessKeySecret != "" && s.BucketName != ""
}
