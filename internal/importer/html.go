package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stashd/stash/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns folders and
// bookmarks. Nested folders are flattened to their own name; bookmarks
// outside any folder land in the default folder.
func ParseHTMLBookmarks(r io.Reader) ([]model.Folder, []model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var folders []model.Folder
	var bookmarks []model.Bookmark
	seenFolder := make(map[string]bool)

	// Track the folder name stack for hierarchy
	var folderStack []string
	pendingFolder := "" // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - get name from text content
				name := getTextContent(n)
				if name != "" {
					if !seenFolder[name] && name != model.DefaultFolderName {
						seenFolder[name] = true
						folders = append(folders, model.Folder{
							Name: name,
							Icon: model.DefaultFolderIcon,
						})
					}
					// Mark as pending - pushed when we see the next DL
					pendingFolder = name
				}
				return // Don't recurse into H3

			case "a":
				// Bookmark definition
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				folder := model.DefaultFolderName
				if len(folderStack) > 0 {
					folder = folderStack[len(folderStack)-1]
				}

				// Parse ADD_DATE timestamp
				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				var tags []string
				if raw := getAttr(n, "tags"); raw != "" {
					for _, t := range strings.Split(raw, ",") {
						if t = strings.TrimSpace(t); t != "" {
							tags = append(tags, t)
						}
					}
				}

				bookmarks = append(bookmarks, model.Bookmark{
					ID:        model.GenerateUUID(),
					Title:     title,
					URL:       href,
					Folder:    folder,
					Tags:      model.DedupeTags(tags),
					CreatedAt: createdAt,
				})
				return // Don't recurse into A

			case "dd":
				// Description following a bookmark - attach as notes
				if len(bookmarks) > 0 {
					if notes := getTextContent(n); notes != "" {
						bookmarks[len(bookmarks)-1].Notes = notes
					}
				}
				return

			case "dl":
				// Definition list - marks folder contents
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // We handled the children
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return folders, bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
