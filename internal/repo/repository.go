package repo

import (
	"time"

	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/storage"
)

// Repository is the single source of truth for bookmarks, folders and the
// tag registry. All three collections live in durable slots and every
// mutation writes through before returning.
//
// The model is single-writer: mutations happen synchronously in response
// to discrete events, so no locking is needed. On storage failure the
// in-memory collections stay authoritative and the error is surfaced as a
// *storage.Error; the session continues in a degraded, non-persistent mode.
type Repository struct {
	bookmarks *storage.State[[]model.Bookmark]
	folders   *storage.State[[]model.Folder]
	tags      *storage.State[[]string]
}

// NewRepository loads the three slots from the given store.
// The default "General" folder exists before any other folder.
// A non-nil error reports a slot read failure: the repository is still
// usable on its defaults, but nothing persists until storage recovers,
// so slots holding unseen data are never overwritten.
func NewRepository(store storage.Store) (*Repository, error) {
	bookmarks, bookmarksErr := storage.Load(store, storage.SlotBookmarks, []model.Bookmark{})
	folders, foldersErr := storage.Load(store, storage.SlotFolders, []model.Folder{model.DefaultFolder()})
	tags, tagsErr := storage.Load(store, storage.SlotTags, []string{})

	r := &Repository{bookmarks: bookmarks, folders: folders, tags: tags}

	// Guarantee the default folder even for data written before it existed
	current := r.folders.Get()
	hasDefault := false
	for _, f := range current {
		if f.Name == model.DefaultFolderName {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		_ = r.folders.Set(append([]model.Folder{model.DefaultFolder()}, current...))
	}

	err := bookmarksErr
	if err == nil {
		err = foldersErr
	}
	if err == nil {
		err = tagsErr
	}
	return r, err
}

// Bookmarks returns the bookmark collection in insertion order.
func (r *Repository) Bookmarks() []model.Bookmark {
	return r.bookmarks.Get()
}

// Folders returns the folder collection in creation order.
func (r *Repository) Folders() []model.Folder {
	return r.folders.Get()
}

// Tags returns the tag registry in first-seen order.
func (r *Repository) Tags() []string {
	return r.tags.Get()
}

// BookmarkByID finds a bookmark by id. Returns a copy and whether it exists.
func (r *Repository) BookmarkByID(id string) (model.Bookmark, bool) {
	for _, b := range r.bookmarks.Get() {
		if b.ID == id {
			return b, true
		}
	}
	return model.Bookmark{}, false
}

// FolderByName finds a folder by name (case-sensitive exact match).
func (r *Repository) FolderByName(name string) (model.Folder, bool) {
	for _, f := range r.folders.Get() {
		if f.Name == name {
			return f, true
		}
	}
	return model.Folder{}, false
}

// CreateBookmark validates and appends a new bookmark at the head of the
// collection. New tags are appended to the registry in first-seen order.
// Returns *ValidationError when title or url is empty. A *storage.Error
// means the bookmark was created in memory but not persisted.
func (r *Repository) CreateBookmark(params model.NewBookmarkParams) (model.Bookmark, error) {
	if params.Title == "" {
		return model.Bookmark{}, &ValidationError{Field: "title"}
	}
	if params.URL == "" {
		return model.Bookmark{}, &ValidationError{Field: "url"}
	}

	bookmark := model.NewBookmark(params)

	err := r.bookmarks.Set(append([]model.Bookmark{bookmark}, r.bookmarks.Get()...))
	if tagErr := r.registerTags(bookmark.Tags); err == nil {
		err = tagErr
	}
	return bookmark, err
}

// BookmarkPatch holds the fields an update may replace. Nil fields are
// left untouched; id and createdAt are never modified. ClearRemind
// removes the reminder, since a nil RemindAt means "unchanged".
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Folder      *string
	RemindAt    *time.Time
	ClearRemind bool
	Tags        []string // nil = unchanged
	Notes       *string
}

// UpdateBookmark replaces only the supplied fields of the bookmark.
// Returns *NotFoundError for an unknown id and *ValidationError when the
// patch would blank a required field.
func (r *Repository) UpdateBookmark(id string, patch BookmarkPatch) (model.Bookmark, error) {
	if patch.Title != nil && *patch.Title == "" {
		return model.Bookmark{}, &ValidationError{Field: "title"}
	}
	if patch.URL != nil && *patch.URL == "" {
		return model.Bookmark{}, &ValidationError{Field: "url"}
	}

	bookmarks := r.bookmarks.Get()
	for i := range bookmarks {
		if bookmarks[i].ID != id {
			continue
		}

		b := &bookmarks[i]
		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.URL != nil {
			b.URL = *patch.URL
		}
		if patch.Folder != nil {
			b.Folder = *patch.Folder
		}
		if patch.ClearRemind {
			b.RemindAt = nil
		} else if patch.RemindAt != nil {
			b.RemindAt = patch.RemindAt
		}
		if patch.Tags != nil {
			b.Tags = model.DedupeTags(patch.Tags)
		}
		if patch.Notes != nil {
			b.Notes = *patch.Notes
		}

		err := r.bookmarks.Set(bookmarks)
		if tagErr := r.registerTags(b.Tags); err == nil {
			err = tagErr
		}
		return *b, err
	}

	return model.Bookmark{}, &NotFoundError{ID: id}
}

// DeleteBookmark removes the bookmark if present. Deleting an absent id
// is a no-op, not an error. The removed record is returned so the caller
// can arm an undo action.
func (r *Repository) DeleteBookmark(id string) (removed model.Bookmark, ok bool, err error) {
	bookmarks := r.bookmarks.Get()
	for i := range bookmarks {
		if bookmarks[i].ID != id {
			continue
		}
		removed = bookmarks[i]
		bookmarks = append(bookmarks[:i], bookmarks[i+1:]...)
		return removed, true, r.bookmarks.Set(bookmarks)
	}
	return model.Bookmark{}, false, nil
}

// RestoreBookmark reinserts a previously deleted bookmark at the head of
// the collection. Reinsertion is skipped when a bookmark with the same id
// already exists, so consuming an undo twice cannot resurrect duplicates.
func (r *Repository) RestoreBookmark(b model.Bookmark) error {
	if _, exists := r.BookmarkByID(b.ID); exists {
		return nil
	}
	err := r.bookmarks.Set(append([]model.Bookmark{b}, r.bookmarks.Get()...))
	if tagErr := r.registerTags(b.Tags); err == nil {
		err = tagErr
	}
	return err
}

// SetArchived sets the archive flag of the bookmark.
// Returns *NotFoundError for an unknown id.
func (r *Repository) SetArchived(id string, archived bool) error {
	bookmarks := r.bookmarks.Get()
	for i := range bookmarks {
		if bookmarks[i].ID != id {
			continue
		}
		bookmarks[i].IsArchived = archived
		return r.bookmarks.Set(bookmarks)
	}
	return &NotFoundError{ID: id}
}

// CreateFolder appends a new folder. Returns *DuplicateError when a folder
// with that name already exists (case-sensitive exact match). Folders are
// never auto-deleted, even when empty.
func (r *Repository) CreateFolder(name, icon string) (model.Folder, error) {
	if name == "" {
		return model.Folder{}, &ValidationError{Field: "name"}
	}
	if _, exists := r.FolderByName(name); exists {
		return model.Folder{}, &DuplicateError{Name: name}
	}

	if icon == "" {
		icon = model.DefaultFolderIcon
	}
	folder := model.Folder{Name: name, Icon: icon}
	return folder, r.folders.Set(append(r.folders.Get(), folder))
}

// registerTags appends unseen tags to the registry. The registry grows
// monotonically; tags are never pruned.
func (r *Repository) registerTags(tags []string) error {
	merged, changed := model.MergeTags(r.tags.Get(), tags)
	if !changed {
		return nil
	}
	return r.tags.Set(merged)
}
