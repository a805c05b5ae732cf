package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables that already hold a value are left alone. Errors are ignored.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		vals, err := godotenv.Read(path)
		if err != nil {
			continue
		}
		for key, val := range vals {
			if key != "" && os.Getenv(key) == "" {
				_ = os.Setenv(key, val)
			}
		}
	}
}
