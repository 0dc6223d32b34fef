// File: lixenwraith/envproxy/io.go
package envproxy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// LoadDotenv reads dotenv files, such as an edited sample environment file,
// into store. Keys already present in the store are left untouched, and the
// first file defining a key wins.
func LoadDotenv(store Store, paths ...string) error {
	if store == nil {
		store = Environ{}
	}
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read dotenv file '%s': %w", path, err)
		}
		for key, value := range values {
			if _, exists := store.Lookup(key); exists {
				continue
			}
			if err := store.Store(key, value); err != nil {
				return fmt.Errorf("failed to set %q from '%s': %w", key, path, err)
			}
		}
		getLogger().WithFields(log.Fields{"path": path, "keys": len(values)}).Debug("Loaded dotenv file")
	}
	return nil
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".env":
		return "env"
	default:
		return ""
	}
}
