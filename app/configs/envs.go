package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv            string
	Port              string
	DBDriver          string
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	DBSSLMode         string
	AppAuthKey        string
	AppEncKey         string
	AdminPasswordHash string
	StorageDriver     string
	StorageURL        string
	StorageKey        string
	StorageBucket     string
	UploadDir         string
	RealtimeDriver    string
	RedisURL          string
	OtelExporter      string
	OtelEndpoint      string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", "8080"),
		DBDriver:          getEnv("DB_DRIVER", "mysql"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		DBSSLMode:         getEnv("DB_SSLMODE", "require"),
		AppAuthKey:        os.Getenv("APP_AUTH_KEY"),
		AppEncKey:         os.Getenv("APP_ENC_KEY"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		StorageDriver:     getEnv("STORAGE_DRIVER", "local"),
		StorageURL:        os.Getenv("STORAGE_URL"),
		StorageKey:        os.Getenv("STORAGE_KEY"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "productos"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		RealtimeDriver:    getEnv("REALTIME_DRIVER", "memory"),
		RedisURL:          os.Getenv("REDIS_URL"),
		OtelExporter:      os.Getenv("OTEL_EXPORTER"),
		OtelEndpoint:      os.Getenv("OTEL_ENDPOINT"),
	}

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

var LoadENV = LoadEnv()
