package repo

import (
	"errors"

	"github.com/stashd/stash/internal/model"
)

// ImportMerge merges parsed folders and bookmarks into the repository.
// Folders are reused by name; bookmarks whose URL already exists are
// skipped. Returns the number of bookmarks added and skipped.
func (r *Repository) ImportMerge(folders []model.Folder, bookmarks []model.Bookmark) (added, skipped int, err error) {
	for _, f := range folders {
		_, createErr := r.CreateFolder(f.Name, f.Icon)
		var dup *DuplicateError
		if createErr != nil && !errors.As(createErr, &dup) {
			if err == nil {
				err = createErr
			}
		}
	}

	known := make(map[string]bool, len(r.bookmarks.Get()))
	for _, b := range r.bookmarks.Get() {
		known[b.URL] = true
	}

	merged := r.bookmarks.Get()
	var newTags []string
	for _, b := range bookmarks {
		if known[b.URL] {
			skipped++
			continue
		}
		known[b.URL] = true
		merged = append(merged, b)
		newTags = append(newTags, b.Tags...)
		added++
	}

	if added > 0 {
		if setErr := r.bookmarks.Set(merged); err == nil {
			err = setErr
		}
		if tagErr := r.registerTags(newTags); err == nil {
			err = tagErr
		}
	}
	return added, skipped, err
}

// HasBookmarkURL reports whether any bookmark already has the given URL.
func (r *Repository) HasBookmarkURL(url string) bool {
	for _, b := range r.bookmarks.Get() {
		if b.URL == url {
			return true
		}
	}
	return false
}
