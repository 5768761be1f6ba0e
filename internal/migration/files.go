// Package migration implements the paired-file SQL migration manager.
package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File is one migration with its paired up and down scripts.
type File struct {
	Version  string
	UpPath   string
	DownPath string
}

// Discover finds migrations in dir. A migration is visible only when both
// its .up.sql and .down.sql files exist; the result is sorted by version.
func Discover(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		version := strings.TrimSuffix(entry.Name(), ".up.sql")
		downPath := filepath.Join(dir, version+".down.sql")
		if _, err := os.Stat(downPath); err != nil {
			continue
		}
		files = append(files, File{
			Version:  version,
			UpPath:   filepath.Join(dir, entry.Name()),
			DownPath: downPath,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

// CreateFiles writes an empty up/down pair for a new migration and returns
// the two file names. Versions are timestamp-prefixed so lexical order
// matches creation order.
func CreateFiles(dir, name string, now time.Time) (upName, downName string, err error) {
	version := fmt.Sprintf("%s_%s", now.Format("20060102150405"), name)
	upName = version + ".up.sql"
	downName = version + ".down.sql"

	upContent := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, now.Format(time.RFC3339))
	if err = os.WriteFile(filepath.Join(dir, upName), []byte(upContent), 0o644); err != nil {
		return "", "", fmt.Errorf("write up file: %w", err)
	}

	downContent := fmt.Sprintf("-- Rollback: %s\n-- Created: %s\n\n", name, now.Format(time.RFC3339))
	if err = os.WriteFile(filepath.Join(dir, downName), []byte(downContent), 0o644); err != nil {
		return "", "", fmt.Errorf("write down file: %w", err)
	}

	return upName, downName, nil
}
