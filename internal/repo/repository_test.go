package repo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/repo"
	"github.com/stashd/stash/internal/storage"
)

func newTestRepo(t *testing.T) *repo.Repository {
	t.Helper()
	r, err := repo.NewRepository(storage.NewFileStore(t.TempDir()))
	if err != nil {
		t.Fatalf("failed to load repository: %v", err)
	}
	return r
}

func TestNewRepository_HasDefaultFolder(t *testing.T) {
	r := newTestRepo(t)

	folders := r.Folders()
	if len(folders) != 1 {
		t.Fatalf("expected exactly the default folder, got %d", len(folders))
	}
	if folders[0].Name != "General" {
		t.Errorf("expected default folder 'General', got %q", folders[0].Name)
	}
	if folders[0].Icon == "" {
		t.Error("expected a default icon")
	}
}

func TestCreateBookmark_RequiresTitleAndURL(t *testing.T) {
	r := newTestRepo(t)

	tests := []struct {
		name   string
		params model.NewBookmarkParams
	}{
		{"missing title", model.NewBookmarkParams{URL: "https://example.com"}},
		{"missing url", model.NewBookmarkParams{Title: "Example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.CreateBookmark(tt.params)

			var validation *repo.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(r.Bookmarks()) != 0 {
				t.Error("rejected create must not change state")
			}
		})
	}
}

func TestCreateBookmark_IDsAreUnique(t *testing.T) {
	r := newTestRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		b, err := r.CreateBookmark(model.NewBookmarkParams{
			Title: "Example",
			URL:   "https://example.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestCreateBookmark_RegistersTagsInFirstSeenOrder(t *testing.T) {
	r := newTestRepo(t)

	mustCreate(t, r, model.NewBookmarkParams{
		Title: "One", URL: "https://one.com", Tags: []string{"go", "web"},
	})
	mustCreate(t, r, model.NewBookmarkParams{
		Title: "Two", URL: "https://two.com", Tags: []string{"web", "rust"},
	})

	tags := r.Tags()
	want := []string{"go", "web", "rust"}
	if len(tags) != len(want) {
		t.Fatalf("got tags %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("got tags %v, want %v", tags, want)
			break
		}
	}
}

func TestUpdateBookmark_PatchesOnlySuppliedFields(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Old Title",
		URL:   "https://example.com",
		Tags:  []string{"go"},
		Notes: "keep me",
	})

	newTitle := "New Title"
	updated, err := r.UpdateBookmark(created.ID, repo.BookmarkPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != "New Title" {
		t.Errorf("title not updated: %q", updated.Title)
	}
	if updated.URL != created.URL {
		t.Errorf("url must be untouched, got %q", updated.URL)
	}
	if updated.Notes != "keep me" {
		t.Errorf("notes must be untouched, got %q", updated.Notes)
	}
	if updated.ID != created.ID {
		t.Error("id must never change")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must never change")
	}
}

func TestUpdateBookmark_ClearRemind(t *testing.T) {
	r := newTestRepo(t)
	remind := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title:    "Title",
		URL:      "https://example.com",
		RemindAt: &remind,
	})

	// A patch without ClearRemind leaves the reminder alone.
	newTitle := "Renamed"
	updated, err := r.UpdateBookmark(created.ID, repo.BookmarkPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.RemindAt == nil || !updated.RemindAt.Equal(remind) {
		t.Fatalf("reminder changed without ClearRemind: %v", updated.RemindAt)
	}

	updated, err = r.UpdateBookmark(created.ID, repo.BookmarkPatch{ClearRemind: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.RemindAt != nil {
		t.Errorf("expected reminder cleared, got %v", updated.RemindAt)
	}
}

func TestUpdateBookmark_UnknownID(t *testing.T) {
	r := newTestRepo(t)

	title := "Title"
	_, err := r.UpdateBookmark("nonexistent", repo.BookmarkPatch{Title: &title})

	var notFound *repo.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestUpdateBookmark_RejectsBlankTitle(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Title", URL: "https://example.com",
	})

	blank := ""
	_, err := r.UpdateBookmark(created.ID, repo.BookmarkPatch{Title: &blank})

	var validation *repo.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	got, _ := r.BookmarkByID(created.ID)
	if got.Title != "Title" {
		t.Error("rejected update must not change state")
	}
}

func TestUpdateBookmark_NewTagsGrowRegistry(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Title", URL: "https://example.com", Tags: []string{"go"},
	})

	// Retagging never prunes the registry
	_, err := r.UpdateBookmark(created.ID, repo.BookmarkPatch{Tags: []string{"rust"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := r.Tags()
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "rust" {
		t.Errorf("expected registry [go rust], got %v", tags)
	}
}

func TestDeleteBookmark_Idempotent(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Title", URL: "https://example.com",
	})
	mustCreate(t, r, model.NewBookmarkParams{
		Title: "Other", URL: "https://other.com",
	})

	removed, ok, err := r.DeleteBookmark(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report removal")
	}
	if removed.ID != created.ID {
		t.Errorf("expected removed record %q, got %q", created.ID, removed.ID)
	}

	// Second delete is a no-op, not an error
	_, ok, err = r.DeleteBookmark(created.ID)
	if err != nil {
		t.Fatalf("unexpected error on second delete: %v", err)
	}
	if ok {
		t.Error("second delete must report nothing removed")
	}
	if len(r.Bookmarks()) != 1 {
		t.Errorf("expected 1 bookmark, got %d", len(r.Bookmarks()))
	}
}

func TestRestoreBookmark_SkipsExistingID(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Title", URL: "https://example.com",
	})

	if err := r.RestoreBookmark(created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Bookmarks()) != 1 {
		t.Errorf("restore with existing id must not duplicate, got %d bookmarks", len(r.Bookmarks()))
	}
}

func TestRestoreBookmark_ReinsertsAtHead(t *testing.T) {
	r := newTestRepo(t)
	first := mustCreate(t, r, model.NewBookmarkParams{
		Title: "First", URL: "https://one.com",
	})
	mustCreate(t, r, model.NewBookmarkParams{
		Title: "Second", URL: "https://two.com",
	})

	removed, _, _ := r.DeleteBookmark(first.ID)
	if err := r.RestoreBookmark(removed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookmarks := r.Bookmarks()
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}
	if bookmarks[0].ID != first.ID {
		t.Error("restored bookmark must be reinserted at head")
	}
}

func TestSetArchived(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Title", URL: "https://example.com",
	})

	if err := r.SetArchived(created.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := r.BookmarkByID(created.ID)
	if !got.IsArchived {
		t.Error("expected bookmark to be archived")
	}

	err := r.SetArchived("nonexistent", true)
	var notFound *repo.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestCreateFolder_DuplicateName(t *testing.T) {
	r := newTestRepo(t)

	if _, err := r.CreateFolder("Work", "briefcase"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := r.CreateFolder("Work", "star")
	var duplicate *repo.DuplicateError
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected *DuplicateError, got %v", err)
	}

	// The collection still contains exactly one "Work" with the first icon
	count := 0
	for _, f := range r.Folders() {
		if f.Name == "Work" {
			count++
			if f.Icon != "briefcase" {
				t.Errorf("expected icon 'briefcase', got %q", f.Icon)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one 'Work' folder, got %d", count)
	}
}

func TestCreateFolder_CaseSensitiveNames(t *testing.T) {
	r := newTestRepo(t)

	if _, err := r.CreateFolder("work", "folder"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.CreateFolder("Work", "folder"); err != nil {
		t.Errorf("folder names are case-sensitive, got %v", err)
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(dir)

	r, err := repo.NewRepository(store)
	if err != nil {
		t.Fatalf("failed to load repository: %v", err)
	}
	r.CreateFolder("Work", "briefcase")
	first := mustCreate(t, r, model.NewBookmarkParams{
		Title: "First", URL: "https://one.com", Folder: "Work", Tags: []string{"go"},
	})
	second := mustCreate(t, r, model.NewBookmarkParams{
		Title: "Second", URL: "https://two.com", Notes: "some notes",
	})

	// A fresh repository over the same store sees an equivalent collection
	reloaded, err := repo.NewRepository(storage.NewFileStore(dir))
	if err != nil {
		t.Fatalf("failed to reload repository: %v", err)
	}

	bookmarks := reloaded.Bookmarks()
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks after reload, got %d", len(bookmarks))
	}
	if bookmarks[0].ID != second.ID || bookmarks[1].ID != first.ID {
		t.Error("relative order must survive the round-trip")
	}
	if bookmarks[1].Folder != "Work" {
		t.Errorf("folder lost in round-trip: %q", bookmarks[1].Folder)
	}
	if !bookmarks[1].CreatedAt.Equal(first.CreatedAt) {
		t.Error("createdAt lost precision in round-trip")
	}

	tags := reloaded.Tags()
	if len(tags) != 1 || tags[0] != "go" {
		t.Errorf("tag registry lost in round-trip: %v", tags)
	}

	folders := reloaded.Folders()
	if len(folders) != 2 || folders[0].Name != "General" || folders[1].Name != "Work" {
		t.Errorf("folders lost in round-trip: %v", folders)
	}
}

// brokenReadStore fails every read and records writes, standing in for a
// store whose slots exist but cannot be opened.
type brokenReadStore struct {
	writes int
}

func (s *brokenReadStore) Read(key string) ([]byte, bool, error) {
	return nil, false, &storage.Error{Op: "read", Key: key, Err: errors.New("permission denied")}
}

func (s *brokenReadStore) Write(key string, data []byte) error {
	s.writes++
	return nil
}

func TestNewRepository_ReadFailureStartsDegraded(t *testing.T) {
	store := &brokenReadStore{}

	r, err := repo.NewRepository(store)

	var storageErr *storage.Error
	if !errors.As(err, &storageErr) {
		t.Fatalf("a slot read failure must be surfaced, got %v", err)
	}

	// The session stays usable in memory
	b, createErr := r.CreateBookmark(model.NewBookmarkParams{
		Title: "Title", URL: "https://example.com",
	})
	if !errors.As(createErr, &storageErr) {
		t.Fatalf("degraded create must report a storage error, got %v", createErr)
	}
	if _, ok := r.BookmarkByID(b.ID); !ok {
		t.Error("degraded create must still land in memory")
	}

	// The unread slots must never be overwritten from defaults
	if store.writes != 0 {
		t.Errorf("degraded session must not rewrite unread slots, got %d writes", store.writes)
	}
}

func mustCreate(t *testing.T, r *repo.Repository, params model.NewBookmarkParams) model.Bookmark {
	t.Helper()
	b, err := r.CreateBookmark(params)
	if err != nil {
		t.Fatalf("failed to create bookmark: %v", err)
	}
	return b
}
