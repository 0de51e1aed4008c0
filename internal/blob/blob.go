// Package blob stores garment images on disk. Staged images live under
// staging/ keyed by staging token; on confirmation they move to wardrobe/
// keyed by the final item identifier.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	stagingDir  = "staging"
	wardrobeDir = "wardrobe"
)

// Store is a disk-backed image store rooted at a single directory.
type Store struct {
	root string
}

// NewStore creates the staging and wardrobe directories under root.
func NewStore(root string) (*Store, error) {
	for _, dir := range []string{stagingDir, wardrobeDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("creating image directory %s: %w", dir, err)
		}
	}
	return &Store{root: root}, nil
}

// StagingPath returns the store-relative path for a staged image.
func StagingPath(token string) string {
	return filepath.Join(stagingDir, token+".png")
}

// WardrobePath returns the store-relative path for a confirmed item image.
func WardrobePath(id string) string {
	return filepath.Join(wardrobeDir, id+".png")
}

// PutStaging writes a staged image and returns its store-relative path.
func (s *Store) PutStaging(token string, data []byte) (string, error) {
	rel := StagingPath(token)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0644); err != nil {
		return "", fmt.Errorf("writing staged image: %w", err)
	}
	return rel, nil
}

// Read returns the image stored at a store-relative path, or nil if it
// doesn't exist.
func (s *Store) Read(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, rel))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// Promote moves a staged image to wardrobe storage and returns the new
// store-relative path.
func (s *Store) Promote(token, id string) (string, error) {
	rel := WardrobePath(id)
	from := filepath.Join(s.root, StagingPath(token))
	if err := os.Rename(from, filepath.Join(s.root, rel)); err != nil {
		return "", fmt.Errorf("promoting image: %w", err)
	}
	return rel, nil
}

// DeleteStaging removes a staged image. Missing files are not an error: the
// record is the source of truth and cleanup must be idempotent.
func (s *Store) DeleteStaging(token string) error {
	return s.remove(StagingPath(token))
}

// DeleteWardrobe removes a confirmed item's image.
func (s *Store) DeleteWardrobe(id string) error {
	return s.remove(WardrobePath(id))
}

func (s *Store) remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}
