package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Logger  logger
	Blob    blob
	Indexer indexer
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// blob configures the S3-compatible attachment store (MinIO in local setups).
type blob struct {
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION"`
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
}

// indexer configures dispatch of accepted note content to the external
// search/RAG collaborator.
type indexer struct {
	URL       string `env:"INDEXER_URL"`
	QueueSize int    `env:"INDEXER_QUEUE_SIZE" envDefault:"256"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", ":8080")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("app_env", EnvProd)
	viper.SetDefault("s3_region", "us-east-1")
	viper.SetDefault("indexer_queue_size", 256)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Logger: logger{LogLevel: viper.GetString("log_level")},
		Blob: blob{
			Endpoint:  viper.GetString("s3_endpoint"),
			Region:    viper.GetString("s3_region"),
			Bucket:    viper.GetString("s3_bucket"),
			AccessKey: viper.GetString("s3_access_key"),
			SecretKey: viper.GetString("s3_secret_key"),
		},
		Indexer: indexer{
			URL:       viper.GetString("indexer_url"),
			QueueSize: viper.GetInt("indexer_queue_size"),
		},
	}

	return &config
}
