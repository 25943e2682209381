// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Mongo         MongoConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	CRM           CRMConfiguration
	Auth          AuthConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// MongoConfiguration stores data for the document store connection
type MongoConfiguration struct {
	URI      string
	Database string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr            string
	DefaultCacheTTL string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

// CRMConfiguration stores the external CRM gateway endpoints
type CRMConfiguration struct {
	BaseURL  string
	ProxyURL string
	APIKey   string
}

// AuthConfiguration stores token signing settings
type AuthConfiguration struct {
	JWTSecret string
	TokenTTL  string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "pingwise")
	viper.SetDefault("redis.addr", "localhost:6379")
	// Development key only, 32 bytes for AES-256. Override in production.
	viper.SetDefault("redis.encryptionKey", "0123456789abcdef0123456789abcdef")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("log.dir", "logging")
	viper.SetDefault("crm.baseURL", "https://crm.pingwise.app")
	viper.SetDefault("crm.proxyURL", "http://localhost:8080/api/crm")
	viper.SetDefault("crm.loginTimeout", "30s")
	viper.SetDefault("crm.healthTimeout", "5s")
	viper.SetDefault("auth.tokenTTL", "24h")
	// Development secret. Override in production.
	viper.SetDefault("auth.jwtSecret", "pingwise-dev-secret")
	viper.SetDefault("cache.featureTTL", "5m")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", "1m")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
