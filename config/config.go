// config/config.go
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// BackendConfig points at the TÜSEP REST API.
type BackendConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig selects where bearer credentials are kept between restarts.
type SessionConfig struct {
	Store      string        `mapstructure:"store"` // file, redis or mongo
	FileDir    string        `mapstructure:"fileDir"`
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookieName"`
	MaxAge     time.Duration `mapstructure:"maxAge"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
	Prefix           string `mapstructure:"prefix"`
}

// Enabled reports whether report workbooks should be archived.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// TimerConfig tunes the repair timer websocket.
type TimerConfig struct {
	PongWait     time.Duration `mapstructure:"pongWait"`
	PollInterval time.Duration `mapstructure:"pollInterval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	S3      S3Config      `mapstructure:"s3"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Timer   TimerConfig   `mapstructure:"timer"`
	Log     LogConfig     `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("backend.baseURL", "http://localhost:8001/api")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("session.store", "file")
	v.SetDefault("session.fileDir", "~/.tusep")
	v.SetDefault("session.cookieName", "tusep_sid")
	v.SetDefault("session.maxAge", 24*time.Hour)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("mongo.dbName", "tusep_web")
	v.SetDefault("s3.prefix", "reports")
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("timer.pongWait", 60*time.Second)
	v.SetDefault("timer.pollInterval", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadConfig reads config.yaml from path and overlays environment variables.
// A missing file is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	v.AutomaticEnv()
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("backend.baseURL", "BACKEND_BASE_URL")
	v.BindEnv("backend.timeout", "BACKEND_TIMEOUT")
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("session.fileDir", "SESSION_FILE_DIR")
	v.BindEnv("session.secret", "SESSION_SECRET")
	v.BindEnv("session.cookieName", "SESSION_COOKIE_NAME")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("timer.pollInterval", "TIMER_POLL_INTERVAL")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	// CORS_ALLOWED_ORIGINS is a comma separated list.
	if raw := v.GetString("CORS_ALLOWED_ORIGINS"); raw != "" {
		config.CORS.AllowedOrigins = splitList(raw)
	}
	config.Backend.BaseURL = strings.TrimRight(config.Backend.BaseURL, "/")
	return
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
