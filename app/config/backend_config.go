// Author: SGS Locations (2026). Apache 2.0 License

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"photosync/app/logging"

	"github.com/redis/go-redis/v9"
)

// Configuration types
type Config struct {
	Address          string         `json:"address"`          // listen address of the backend, defaults to ":7788"
	SmugmugAPIURL    string         `json:"smugmugApiUrl"`    // base url of the SmugMug API, defaults to https://api.smugmug.com
	CallbackURL      string         `json:"callbackUrl"`      // OAuth callback, must match the url registered with SmugMug exactly
	AdminRedirectURL string         `json:"adminRedirectUrl"` // property-creation page the browser is sent back to after the callback
	RedisHost        string         `json:"redisHost"`        // redis host, tokens are persisted here
	Options          OptionalConfig `json:"options"`          // customizations
}

type OptionalConfig struct {
	S3Config             S3Config `json:"s3Config"`                       // destination bucket for imported images
	CDNDomain            string   `json:"cdnDomain,omitempty"`            // when set, public image urls are built on this domain instead of the s3 endpoint
	UploadFolder         string   `json:"uploadFolder,omitempty"`         // key prefix for imported images, defaults to "properties"
	RedisDB              int      `json:"redisDB,omitempty"`              // by default DB 0 is used, if you need to use other DB, specify it here
	PathToRedisPassword  string   `json:"pathToRedisPassword,omitempty"`  // by default no password for Redis is set, if you need to authenticate, store here the path to the file containing the redis password
	PathToConsumerSecret string   `json:"pathToConsumerSecret,omitempty"` // alternative to the SMUGMUG_API_SECRET environment variable
}

// Environment variables used for credentials:
// * SmugMug application key:    SMUGMUG_API_KEY
// * SmugMug application secret: SMUGMUG_API_SECRET (or pathToConsumerSecret)
// * S3: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY via the SDK default chain
type S3Config struct {
	AWSEndpoint  string `json:"awsEndpoint"`
	AWSRegion    string `json:"awsRegion"`
	AWSPathstyle bool   `json:"awsPathstyle"`
	AWSBucket    string `json:"awsBucket"`
}

var config Config

// static vars
var rdb RedisClient     // redis client singleton
var consumerKey = ""    // read from SMUGMUG_API_KEY
var consumerSecret = "" // read from SMUGMUG_API_SECRET or pathToConsumerSecret
var redisPassword = ""  // read from pathToRedisPassword

func init() {
	// read configuration
	configFile := os.Getenv("BACKEND_CONFIG_FILE")
	b, err := os.ReadFile(configFile)
	if err == nil {
		logging.Logger.Printf("using backend configuration from %v\n", configFile)
		err := json.Unmarshal(b, &config)
		if err != nil {
			panic(fmt.Errorf("config could not be loaded from %v: %v", configFile, err))
		}
	}
	if config.Address == "" {
		config.Address = ":7788"
	}
	if config.SmugmugAPIURL == "" {
		config.SmugmugAPIURL = "https://api.smugmug.com"
	}
	if config.Options.UploadFolder == "" {
		config.Options.UploadFolder = "properties"
	}

	// initialize variables
	consumerKey = strings.TrimSpace(os.Getenv("SMUGMUG_API_KEY"))
	consumerSecret = strings.TrimSpace(os.Getenv("SMUGMUG_API_SECRET"))

	b, err = os.ReadFile(config.Options.PathToConsumerSecret)
	if err == nil {
		logging.Logger.Println("consumer secret is read from file " + config.Options.PathToConsumerSecret)
		consumerSecret = strings.TrimSpace(string(b))
	}

	b, err = os.ReadFile(config.Options.PathToRedisPassword)
	if err == nil {
		logging.Logger.Println("redis password read from file " + config.Options.PathToRedisPassword)
		redisPassword = strings.TrimSpace(string(b))
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     config.RedisHost,
		Password: redisPassword,
		DB:       config.Options.RedisDB,
	})
}

type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func GetRedis() RedisClient {
	return rdb
}

func SetRedis(r RedisClient) {
	rdb = r
}

func RedisReady(ctx context.Context) bool {
	res, err := GetRedis().Ping(ctx).Result()
	if err != nil {
		logging.Logger.Printf("redis error: %v", err)
		return false
	}
	return res == "PONG"
}

func GetConfig() Config {
	return config
}

// SetConfig overrides the loaded configuration, used by tests.
func SetConfig(c Config) {
	if c.SmugmugAPIURL == "" {
		c.SmugmugAPIURL = "https://api.smugmug.com"
	}
	if c.Options.UploadFolder == "" {
		c.Options.UploadFolder = "properties"
	}
	config = c
}

// ConsumerCredentials returns the SmugMug application key pair. Both values
// are required before any step of the authorization flow can run.
func ConsumerCredentials() (key, secret string, err error) {
	if consumerKey == "" || consumerSecret == "" {
		return "", "", fmt.Errorf("SmugMug consumer key or secret not configured")
	}
	return consumerKey, consumerSecret, nil
}

// SetConsumerCredentials overrides the application key pair, used by tests.
func SetConsumerCredentials(key, secret string) {
	consumerKey = key
	consumerSecret = secret
}
