package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

type ServerConfig struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR"`
}

type StorageConfig struct {
	//整份資料庫紀錄的儲存後端：redis或mysql
	Backend string `yaml:"backend" env:"STORAGE_BACKEND"`
}

type DatabaseConfig struct {
	Username string `yaml:"username" env:"DB_USERNAME"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     string `yaml:"port" env:"DB_PORT"`
	Database string `yaml:"database" env:"DB_DATABASE"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	Database int    `yaml:"database" env:"REDIS_DATABASE"`
}

type JWTConfig struct {
	PrivateKey string `yaml:"privateKey" env:"JWT_PRIVATE_KEY"`
	PublicKey  string `yaml:"publicKey" env:"JWT_PUBLIC_KEY"`
}

type SeedConfig struct {
	//預設資料文件來源，可為本機路徑或http(s)網址
	Source string `yaml:"source" env:"SEED_SOURCE"`
}

type SessionConfig struct {
	TTLHours int `yaml:"ttlHours" env:"SESSION_TTL_HOURS"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Seed     SeedConfig     `yaml:"seed"`
	Session  SessionConfig  `yaml:"session"`
}

// 讀取設定檔，環境變數可覆蓋檔案內容
func LoadConfig(filename string) (Config, error) {
	config := Config{
		Server:  ServerConfig{Addr: ":3000"},
		Storage: StorageConfig{Backend: BackendRedis},
		Seed:    SeedConfig{Source: "data/db.json"},
		Session: SessionConfig{TTLHours: 24},
	}

	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	if err := env.Parse(&config); err != nil {
		return config, err
	}

	return config, nil
}

func SetupMySQLConnection(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Database.Username,
		config.Database.Password,
		config.Database.Host,
		config.Database.Port,
		config.Database.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func SetupRedisConnection(config Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Database,
	})

	return redisClient, nil
}
