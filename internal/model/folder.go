package model

// DefaultFolderName is the folder every store starts with.
const DefaultFolderName = "General"

// DefaultFolderIcon is the icon identifier used when none is given.
const DefaultFolderIcon = "folder"

// Folder represents a named container for bookmarks.
// The name acts as the primary key; folders are never renamed.
type Folder struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultFolder returns the built-in "General" folder.
func DefaultFolder() Folder {
	return Folder{
		Name: DefaultFolderName,
		Icon: DefaultFolderIcon,
	}
}
