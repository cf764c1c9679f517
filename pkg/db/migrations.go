package db

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Migration is a single embedded SQL migration file
type Migration struct {
	Filename string
	SQL      string
}

// PendingMigrations returns the .sql files under dir in fsys that are not in applied,
// sorted by filename
func PendingMigrations(fsys fs.FS, dir string, applied map[string]bool) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var filenames []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			filenames = append(filenames, entry.Name())
		}
	}
	sort.Strings(filenames)

	var pending []Migration
	for _, filename := range filenames {
		if applied[filename] {
			continue
		}
		content, err := fs.ReadFile(fsys, dir+"/"+filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", filename, err)
		}
		pending = append(pending, Migration{Filename: filename, SQL: string(content)})
	}

	return pending, nil
}
