package exporter

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stashd/stash/internal/model"
)

// ErrNothingToExport is returned when the folder has no non-archived
// bookmarks. Callers show a notice instead of writing an empty document.
var ErrNothingToExport = errors.New("nothing to export")

// DefaultExportPath returns the default export file path for a folder.
// Format: ~/Downloads/<folder>-bookmarks-YYYY-MM-DD.html
func DefaultExportPath(folder string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s-bookmarks-%s.html", sanitizeFilename(folder), time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportFolder renders the non-archived bookmarks of one folder as a
// Netscape bookmark HTML document listing title, url, tags and notes.
func ExportFolder(bookmarks []model.Bookmark, folder string) (string, error) {
	var items []model.Bookmark
	for _, bm := range bookmarks {
		if bm.Folder == folder && !bm.IsArchived {
			items = append(items, bm)
		}
	}
	if len(items) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(folder))
	b.WriteString("<DL><p>\n")

	for _, bm := range items {
		fmt.Fprintf(&b,
			"    <DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
			html.EscapeString(bm.URL),
			bm.CreatedAt.Unix(),
			tagsAttr(bm.Tags),
			html.EscapeString(bm.Title),
		)
		if bm.Notes != "" {
			fmt.Fprintf(&b, "    <DD>%s\n", html.EscapeString(bm.Notes))
		}
	}

	b.WriteString("</DL><p>\n")

	return b.String(), nil
}

// tagsAttr renders the TAGS attribute, or "" when the bookmark has none.
func tagsAttr(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return fmt.Sprintf(" TAGS=\"%s\"", html.EscapeString(strings.Join(tags, ",")))
}

// sanitizeFilename replaces path separators so folder names stay inside
// the export directory.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	if name == "" {
		return "bookmarks"
	}
	return name
}
