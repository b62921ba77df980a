// Package query derives the visible bookmark list from repository state
// plus transient view state. It never mutates its inputs, so it is safe
// to call on every render.
package query

import (
	"sort"
	"strings"

	"github.com/stashd/stash/internal/model"
)

// Order selects the sort direction for the visible list.
type Order string

const (
	Newest Order = "newest"
	Oldest Order = "oldest"
)

// View is the transient, unpersisted view state. Search text and the
// tag/folder selection are stored independently: entering search text
// takes priority while active but does not erase the prior selection.
type View struct {
	Search       string
	Tag          string // selected tag, "" = none
	Folder       string // selected folder name, "" = all folders
	ShowArchived bool
	Sort         Order
}

// Visible applies the fixed pipeline: scope selection (search > tag >
// folder), archive filter, stable sort by creation time. An unknown tag
// or folder yields an empty sequence, never an error.
func Visible(bookmarks []model.Bookmark, view View) []model.Bookmark {
	var scoped []model.Bookmark

	switch {
	case view.Search != "":
		// Full-text search spans all bookmarks regardless of folder/tag
		for _, b := range bookmarks {
			if matchesSearch(b, view.Search) {
				scoped = append(scoped, b)
			}
		}
	case view.Tag != "":
		for _, b := range bookmarks {
			if b.HasTag(view.Tag) {
				scoped = append(scoped, b)
			}
		}
	case view.Folder != "":
		for _, b := range bookmarks {
			if b.Folder == view.Folder {
				scoped = append(scoped, b)
			}
		}
	default:
		scoped = append(scoped, bookmarks...)
	}

	result := make([]model.Bookmark, 0, len(scoped))
	for _, b := range scoped {
		if b.IsArchived == view.ShowArchived {
			result = append(result, b)
		}
	}

	// Stable: equal timestamps keep their relative input order
	sort.SliceStable(result, func(i, j int) bool {
		if view.Sort == Oldest {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

// matchesSearch reports whether any of title, url, tags or folder
// contains the query as a case-insensitive substring.
func matchesSearch(b model.Bookmark, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.URL), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(b.Folder), q)
}
