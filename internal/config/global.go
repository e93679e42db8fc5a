package config

import (
	"fmt"
	"forum-permission-service/internal/utils/runtime"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"strings"
)

const (
	kafkaHostFlag     = "kafka-host"
	kafkaPortFlag     = "kafka-port"
	mongoDBURIFlag    = "mongodb-uri"
	developmentFlag   = "development"
	grpcPortFlag      = "port"
	metricsPortFlag   = "metrics-port"
	cacheSizeFlag     = "cache-size"
	adminRoleNameFlag = "admin-role-name"
)

type Config struct {
	Kafka   KafkaConfig
	MongoDB MongoDBConfig
	Cache   CacheConfig

	Development bool

	GRPCPort    int
	MetricsPort int

	// AdminRoleName is the role that bypasses every permission check.
	AdminRoleName string
}

type KafkaConfig struct {
	Host string
	Port int
}

type MongoDBConfig struct {
	URI string
}

type CacheConfig struct {
	Size int
}

func LoadGlobalConfig() (*Config, error) {
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(grpcPortFlag, 10010)
	viper.SetDefault(metricsPortFlag, 8081)
	viper.SetDefault(cacheSizeFlag, 4096)
	viper.SetDefault(adminRoleNameFlag, "Admin")

	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(grpcPortFlag, viper.GetInt32(grpcPortFlag), "gRPC port")
	pflag.Int32(metricsPortFlag, viper.GetInt32(metricsPortFlag), "Prometheus metrics port")
	pflag.Int(cacheSizeFlag, viper.GetInt(cacheSizeFlag), "Maximum number of cached lookups")
	pflag.String(adminRoleNameFlag, viper.GetString(adminRoleNameFlag), "Role name granted every permission")
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(kafkaHostFlag))
	runtime.Must(viper.BindEnv(kafkaPortFlag))
	runtime.Must(viper.BindEnv(mongoDBURIFlag))
	runtime.Must(viper.BindEnv(developmentFlag))
	runtime.Must(viper.BindEnv(grpcPortFlag))
	runtime.Must(viper.BindEnv(metricsPortFlag))
	runtime.Must(viper.BindEnv(cacheSizeFlag))
	runtime.Must(viper.BindEnv(adminRoleNameFlag))

	cfg := &Config{
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Cache: CacheConfig{
			Size: viper.GetInt(cacheSizeFlag),
		},
		Development:   viper.GetBool(developmentFlag),
		GRPCPort:      int(viper.GetInt32(grpcPortFlag)),
		MetricsPort:   int(viper.GetInt32(metricsPortFlag)),
		AdminRoleName: viper.GetString(adminRoleNameFlag),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Cache.Size <= 0 {
		return fmt.Errorf("%s must be positive, got %d", cacheSizeFlag, c.Cache.Size)
	}
	if c.AdminRoleName == "" {
		return fmt.Errorf("%s must not be empty", adminRoleNameFlag)
	}
	return nil
}
