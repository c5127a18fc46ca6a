package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Storage backend selectors.
const (
	StorageBolt  = "bolt"
	StorageRedis = "redis"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string        `yaml:"git_commit" envconfig:"BIB_GIT_COMMIT"`
	GitTag       string        `yaml:"git_tag" envconfig:"BIB_GIT_TAG"`
	BuildTime    string        `yaml:"build_time" envconfig:"BIB_BUILD_TIME"`
	IsProduction bool          `yaml:"is_production" envconfig:"BIB_IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"BIB_LOG_LEVEL"`
	LogFile      string        `yaml:"log_file" envconfig:"BIB_LOG_FILE"`
	Storage      string        `yaml:"storage" envconfig:"BIB_STORAGE"`
	Server       ServerConfig  `yaml:"server"`
	Auth         AuthConfig    `yaml:"auth"`
	BoltDB       BoltDBConfig  `yaml:"boltdb"`
	Redis        RedisConfig   `yaml:"redis"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BIB_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BIB_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BIB_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BIB_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BIB_SERVER_SHUTDOWN_TIMEOUT"`
}

// AuthConfig holds the static credential material. Users maps a
// username to its password, APIKeys maps an opaque bearer key to the
// username it was issued for. Login hands out the first key found for
// the authenticated user.
type AuthConfig struct {
	Users   map[string]string `yaml:"users" envconfig:"BIB_AUTH_USERS"`
	APIKeys map[string]string `yaml:"api_keys" envconfig:"BIB_AUTH_API_KEYS"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"BIB_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"BIB_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"BIB_BOLTDB_BUCKET_NAME"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BIB_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"BIB_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BIB_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BIB_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BIB_REDIS_WRITE_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"BIB_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"BIB_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BIB_REDIS_DATABASE_INDEX"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Storage) == 0 {
		config.Storage = StorageBolt
	}

	if config.Storage != StorageBolt && config.Storage != StorageRedis {
		return fmt.Errorf("unknown storage backend %q: use %q or %q", config.Storage, StorageBolt, StorageRedis)
	}

	if config.Storage == StorageRedis && (len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0) {
		return errors.New("make sure to set valid redis address and port in configuration file")
	}

	if config.Storage == StorageBolt && len(config.BoltDB.FilePath) == 0 {
		return errors.New("make sure to set a boltdb file path in configuration file")
	}

	if len(config.Auth.Users) == 0 || len(config.Auth.APIKeys) == 0 {
		return errors.New("make sure to configure at least one user and one api key")
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined
// sources then build the App configuration data. The dotenv file is
// optional, environment variables with prefix `BIB` win over the file.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	if _, err = os.Stat("./config.env"); err == nil {
		if err = godotenv.Load("./config.env"); err != nil {
			return config, fmt.Errorf("failed to set environment configurations: %s", err)
		}
	}

	err = LoadConfigEnvs("BIB", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
