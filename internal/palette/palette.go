// Package palette builds the bounded candidate lists consumed by the
// quick-open surface. It is a pure projection over repository state;
// selecting a candidate is delegated to caller-supplied handlers.
package palette

import (
	"strings"

	"github.com/stashd/stash/internal/model"
)

// CandidateLimit caps the bookmark and tag groups to keep the surface
// compact. Folders are not capped.
const CandidateLimit = 2

// QuickAction is a fixed entry shown when the query is empty.
type QuickAction struct {
	ID    string
	Label string
}

// Results holds the candidate groups for one query. Ordering within each
// group follows the underlying collection order; there is no relevance
// ranking.
type Results struct {
	Actions   []QuickAction
	Bookmarks []model.Bookmark
	Folders   []model.Folder
	Tags      []string
}

// Empty reports whether no group has any entries.
func (r Results) Empty() bool {
	return len(r.Actions) == 0 && len(r.Bookmarks) == 0 &&
		len(r.Folders) == 0 && len(r.Tags) == 0
}

// Build produces the candidate lists for the given query. An empty query
// yields the fixed quick-action list instead of the three match groups.
func Build(rawQuery string, bookmarks []model.Bookmark, folders []model.Folder, tags []string) Results {
	if rawQuery == "" {
		return Results{
			Actions: []QuickAction{
				{ID: "new-bookmark", Label: "Add new bookmark"},
			},
		}
	}

	query := strings.ToLower(rawQuery)
	var results Results

	for _, b := range bookmarks {
		if len(results.Bookmarks) >= CandidateLimit {
			break
		}
		if matchesBookmark(b, query) {
			results.Bookmarks = append(results.Bookmarks, b)
		}
	}

	for _, f := range folders {
		if strings.Contains(strings.ToLower(f.Name), query) {
			results.Folders = append(results.Folders, f)
		}
	}

	for _, t := range tags {
		if len(results.Tags) >= CandidateLimit {
			break
		}
		if strings.Contains(strings.ToLower(t), query) {
			results.Tags = append(results.Tags, t)
		}
	}

	return results
}

// matchesBookmark checks title, url and tags for a substring match.
func matchesBookmark(b model.Bookmark, query string) bool {
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(b.URL), query) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
