package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"autoblog/internal/apperr"
	"autoblog/internal/core"
)

// DefaultDir is where posts are written relative to the working directory.
const DefaultDir = "blogs"

// FileStore keeps one indented JSON file per post. There is no index and no
// locking: a post whose title slugs to an existing name replaces it.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir
	}
	return &FileStore{Dir: dir}
}

// Path returns where post is stored.
func (s *FileStore) Path(post *core.GeneratedPost) string {
	return filepath.Join(s.Dir, core.Slug(post.Title)+".json")
}

// Save writes post and returns its path. The directory is created on demand.
func (s *FileStore) Save(post *core.GeneratedPost) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", apperr.NewDelivery("file", fmt.Errorf("failed to create directory %s: %w", s.Dir, err))
	}

	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode post: %w", err)
	}

	path := s.Path(post)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", apperr.NewDelivery("file", fmt.Errorf("failed to write %s: %w", path, err))
	}
	return path, nil
}

// Load reads a saved post from path.
func (s *FileStore) Load(path string) (*core.GeneratedPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var post core.GeneratedPost
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &post, nil
}

// List returns every saved post, newest first. Unreadable files are skipped.
func (s *FileStore) List() ([]*core.GeneratedPost, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Dir, err)
	}

	var posts []*core.GeneratedPost
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		post, err := s.Load(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Find returns the saved post whose ID or slug matches key.
func (s *FileStore) Find(key string) (*core.GeneratedPost, error) {
	path := filepath.Join(s.Dir, core.Slug(key)+".json")
	if post, err := s.Load(path); err == nil {
		return post, nil
	}

	posts, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == key {
			return p, nil
		}
	}
	return nil, fmt.Errorf("post %q not found in %s", key, s.Dir)
}
