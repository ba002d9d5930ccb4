package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads a local .env file if present. Missing file is fine in
// production where the environment is set by the deployment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}
