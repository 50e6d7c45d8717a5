package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs at startup. It is passed into
// constructors explicitly; nothing here lives in package-level state.
type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	SecretKey    string
	StoreBackend string
}

// Load reads configuration from the environment, with a .env file as an
// optional source. SECRET_KEY has no default: tokens signed with a guessable
// key are worthless.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, errors.New("SECRET_KEY not set")
	}

	return &Config{
		Port:         getEnv("PORT", "5001"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:      getEnv("MONGODB_DB", "microblog"),
		SecretKey:    secret,
		StoreBackend: getEnv("STORE_BACKEND", "mongo"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
