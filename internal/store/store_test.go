package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"autoblog/internal/core"
)

func newPost(id, title string, at time.Time) *core.GeneratedPost {
	return &core.GeneratedPost{
		ID:        id,
		Title:     title,
		Content:   "<p>body</p>",
		Keywords:  []string{"ai"},
		WordCount: 1,
		Status:    core.StatusDraft,
		CreatedAt: at,
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "blogs")
	s := NewFileStore(dir)

	post := newPost("id-1", "HIPAA & AI: What's Next?", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	post.DOCX = []byte("binary")

	path, err := s.Save(post)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "hipaa_ai_what_s_next.json" {
		t.Errorf("Unexpected file name %s", filepath.Base(path))
	}

	data, _ := os.ReadFile(path)
	if string(data[:4]) != "{\n  " {
		t.Error("Expected indented JSON")
	}

	loaded, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != "id-1" || loaded.Title != post.Title || !loaded.CreatedAt.Equal(post.CreatedAt) {
		t.Errorf("Loaded post differs: %+v", loaded)
	}
	if loaded.DOCX != nil {
		t.Error("Artifacts should not be persisted")
	}
}

func TestSaveLastWriterWins(t *testing.T) {
	s := NewFileStore(t.TempDir())
	now := time.Now().UTC()

	first, _ := s.Save(newPost("a", "Same Title", now))
	second, _ := s.Save(newPost("b", "same title!", now))
	if first != second {
		t.Fatalf("Expected same path, got %s and %s", first, second)
	}

	loaded, err := s.Load(second)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != "b" {
		t.Errorf("Expected last write to win, got %s", loaded.ID)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewFileStore(t.TempDir())
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	s.Save(newPost("old", "Old", base))
	s.Save(newPost("new", "New", base.Add(48*time.Hour)))
	s.Save(newPost("mid", "Mid", base.Add(24*time.Hour)))
	os.WriteFile(filepath.Join(s.Dir, "broken.json"), []byte("{"), 0644)
	os.WriteFile(filepath.Join(s.Dir, "notes.txt"), []byte("x"), 0644)

	posts, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(posts))
	}
	if posts[0].ID != "new" || posts[2].ID != "old" {
		t.Errorf("Unexpected order %s, %s, %s", posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestListMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent"))
	posts, err := s.List()
	if err != nil || posts != nil {
		t.Errorf("Expected empty list without error, got %v, %v", posts, err)
	}
}

func TestFind(t *testing.T) {
	s := NewFileStore(t.TempDir())
	s.Save(newPost("uuid-42", "Edge AI for Clinics", time.Now()))

	if p, err := s.Find("Edge AI for Clinics"); err != nil || p.ID != "uuid-42" {
		t.Errorf("Find by title failed: %v", err)
	}
	if p, err := s.Find("uuid-42"); err != nil || p.Title != "Edge AI for Clinics" {
		t.Errorf("Find by ID failed: %v", err)
	}
	if _, err := s.Find("missing"); err == nil {
		t.Error("Expected error for missing post")
	}
}

func TestNewFileStoreDefaultDir(t *testing.T) {
	if NewFileStore("").Dir != DefaultDir {
		t.Error("Expected default directory")
	}
}
