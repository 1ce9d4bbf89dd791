package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "iris"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from a .env file in the current
// directory, then from the config file in the user's config directory.
// Errors are ignored since neither file has to exist.
func LoadEnvFile() {
	_ = godotenv.Load()

	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// CheckRequiredConfig returns the names of required environment variables
// that are not set. The vision service credential is the only hard
// requirement; everything else has a usable default.
func CheckRequiredConfig() []string {
	var missing []string
	for _, name := range []string{"GEMINI_API_KEY"} {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
