package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/thatguysimon/docs.pact.io/internal/logfields"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads KEY=VALUE pairs from the first env file that exists. Variables
// already present in the process environment are not overwritten. Having no env
// file is not an error.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		slog.Debug("Loaded environment file", logfields.Path(envPath))
		return nil
	}
	return nil
}
