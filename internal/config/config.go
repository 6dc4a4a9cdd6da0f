// Package config loads the application configuration from defaults, an
// optional YAML file, a .env file and FINTRACK_* environment variables.
package config

import (
	"path/filepath"

	"fintrack/internal/fileutils"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are not overridden.
// It returns the file it loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if !fileutils.FileExists(envFile) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", err
		}
		return envFile, nil
	}
	return "", nil
}
