// Package envfile reads env-style files (the `env > file` output format)
// into maps suitable for Crontab.SetEnv.
package envfile

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load parses the file at path into a variable map. KEY=VALUE lines,
// quoting, comments and blank lines follow dotenv conventions.
func Load(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
	}
	return env, nil
}

// LoadOptional is Load for a file that may not exist. A missing file
// yields an empty map and no error.
func LoadOptional(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return Load(path)
}
