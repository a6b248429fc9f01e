package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Init loads .env and checks the variables the app cannot run without.
func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	for _, key := range []string{"DB_DSN", "REDIS_ADDR", "JWT_SECRET"} {
		if os.Getenv(key) == "" {
			Logger.Fatal(key + " is not set")
		}
	}
}
