package model

import "time"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Folder     string     `json:"folder"` // folder name, "" = General
	RemindAt   *time.Time `json:"remindAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Tags       []string   `json:"tags"`
	Notes      string     `json:"notes,omitempty"`
	IsArchived bool       `json:"isArchived,omitempty"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title    string
	URL      string
	Folder   string
	RemindAt *time.Time
	Tags     []string
	Notes    string
}

// NewBookmark creates a Bookmark with generated UUID and timestamps.
func NewBookmark(params NewBookmarkParams) Bookmark {
	folder := params.Folder
	if folder == "" {
		folder = DefaultFolderName
	}

	return Bookmark{
		ID:         GenerateUUID(),
		Title:      params.Title,
		URL:        params.URL,
		Folder:     folder,
		RemindAt:   params.RemindAt,
		CreatedAt:  time.Now(),
		Tags:       DedupeTags(params.Tags),
		Notes:      params.Notes,
		IsArchived: false,
	}
}

// HasTag reports whether the bookmark carries the given tag.
// Tags are matched case-sensitively.
func (b Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
