package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps raw page snapshots and derived documents on disk:
// snapshots under <root>/<term>/<subject>.html and documents as
// <root>/<name>.json. Terms and subjects become path segments, so a
// snapshot survives a process restart and Update can rerun without
// refetching.
type Store struct {
	root string
}

func NewStore(root string) (Store, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return Store{}, fmt.Errorf("create data directory: %w", err)
	}
	return Store{root: root}, nil
}

func (s Store) pagePath(term, subject string) string {
	return filepath.Join(s.root, term, subject+".html")
}

func (s Store) WritePage(term, subject, contents string) error {
	err := os.MkdirAll(filepath.Join(s.root, term), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(s.pagePath(term, subject), []byte(contents), 0644)
}

func (s Store) ReadPage(term, subject string) (string, error) {
	contents, err := os.ReadFile(s.pagePath(term, subject))
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// Subjects lists the subjects a term has snapshots for.
func (s Store) Subjects(term string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, term))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var subjects []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		subjects = append(subjects, strings.TrimSuffix(name, ".html"))
	}
	return subjects, nil
}

// WriteDocument marshals value as indented JSON into <root>/<name>.json.
func (s Store) WriteDocument(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.root, name+".json"), data, 0644)
}
