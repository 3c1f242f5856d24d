package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Scaffold is a freshly created up/down migration pair
type Scaffold struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration scaffolds an up/down SQL pair under migrationsDir. The
// version prefix is the current timestamp so files sort in creation order,
// and the stub headers match the committed migrations.
func CreateMigration(migrationsDir, name, description string) (*Scaffold, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().Format("20060102150405")
	base := version + "_" + sanitizeName(name)

	s := &Scaffold{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(migrationsDir, base+".up.sql"),
		DownPath: filepath.Join(migrationsDir, base+".down.sql"),
	}

	up := fmt.Sprintf("-- Migration: %s\n-- Description: %s\n\n", name, description)
	if err := os.WriteFile(s.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("failed to write up migration: %w", err)
	}

	down := fmt.Sprintf("-- Migration: %s\n-- Description: Revert %s\n\n", name, description)
	if err := os.WriteFile(s.DownPath, []byte(down), 0644); err != nil {
		_ = os.Remove(s.UpPath)
		return nil, fmt.Errorf("failed to write down migration: %w", err)
	}

	return s, nil
}

// sanitizeName lowercases a migration name and collapses separators into
// single underscores, dropping anything else.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c + ('a' - 'A'))
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of all migration pairs in a
// directory, sorted by version. A missing directory is an empty list.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		migrations = append(migrations, strings.TrimSuffix(entry.Name(), ".up.sql"))
	}
	sort.Strings(migrations)

	return migrations, nil
}
