package datadir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dirs holds the application data directory layout created at startup.
type Dirs struct {
	Base    string
	Logs    string
	DB      string
	Uploads string
	Exports string
	Temp    string
}

// Ensure creates the base data directory and its standard subdirectories,
// returning their paths. Creation is idempotent.
func Ensure(base string) (*Dirs, error) {
	dirs := &Dirs{
		Base:    base,
		Logs:    filepath.Join(base, "logs"),
		DB:      filepath.Join(base, "db"),
		Uploads: filepath.Join(base, "uploads"),
		Exports: filepath.Join(base, "exports"),
		Temp:    filepath.Join(base, "temp"),
	}
	for _, dir := range []string{dirs.Base, dirs.Logs, dirs.DB, dirs.Uploads, dirs.Exports, dirs.Temp} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return dirs, nil
}
