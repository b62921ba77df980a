package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stashd/stash/internal/importer"
	"github.com/stashd/stash/internal/model"
)

const sampleHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://top.example.com" ADD_DATE="1700000000">Top Level</A>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><A HREF="https://go.dev/blog" ADD_DATE="1700000100" TAGS="go, reading">Go Blog</A>
        <DD>Official blog
        <DT><H3>Projects</H3>
        <DL><p>
            <DT><A HREF="https://project.example.com">Project Site</A>
        </DL><p>
    </DL><p>
</DL><p>
`

func TestParseHTMLBookmarks(t *testing.T) {
	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d: %v", len(folders), folders)
	}
	if folders[0].Name != "Work" || folders[1].Name != "Projects" {
		t.Errorf("got folders %v", folders)
	}

	if len(bookmarks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(bookmarks))
	}

	byURL := make(map[string]model.Bookmark)
	for _, b := range bookmarks {
		if b.ID == "" {
			t.Error("every imported bookmark gets an id")
		}
		byURL[b.URL] = b
	}

	top := byURL["https://top.example.com"]
	if top.Folder != "General" {
		t.Errorf("bookmark outside any folder lands in General, got %q", top.Folder)
	}
	if !top.CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("ADD_DATE not parsed: %v", top.CreatedAt)
	}

	blog := byURL["https://go.dev/blog"]
	if blog.Folder != "Work" {
		t.Errorf("expected folder 'Work', got %q", blog.Folder)
	}
	if len(blog.Tags) != 2 || blog.Tags[0] != "go" || blog.Tags[1] != "reading" {
		t.Errorf("TAGS attribute not parsed: %v", blog.Tags)
	}
	if blog.Notes != "Official blog" {
		t.Errorf("DD description not attached: %q", blog.Notes)
	}

	// Nested folders are flattened to their own name
	project := byURL["https://project.example.com"]
	if project.Folder != "Projects" {
		t.Errorf("expected flattened folder 'Projects', got %q", project.Folder)
	}
}

func TestParseHTMLBookmarks_SkipsGeneralFolderEntry(t *testing.T) {
	input := `<DL><p>
    <DT><H3>General</H3>
    <DL><p>
        <DT><A HREF="https://example.com">Example</A>
    </DL><p>
</DL><p>`

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("the default folder must not be re-declared, got %v", folders)
	}
	if len(bookmarks) != 1 || bookmarks[0].Folder != "General" {
		t.Errorf("got %v", bookmarks)
	}
}

func TestParseHTMLBookmarks_FallbacksAndSkips(t *testing.T) {
	input := `<DL><p>
    <DT><A HREF="https://untitled.example.com"></A>
    <DT><A>No href</A>
</DL><p>`

	_, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("anchor without href is skipped, got %d bookmarks", len(bookmarks))
	}
	if bookmarks[0].Title != "https://untitled.example.com" {
		t.Errorf("missing title falls back to the URL, got %q", bookmarks[0].Title)
	}
}
