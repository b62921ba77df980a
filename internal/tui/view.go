package tui

import (
	"fmt"
	"strings"

	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/query"
)

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Bookmarks"))
	b.WriteString("\n")
	b.WriteString(a.renderFilterLine())
	b.WriteString("\n\n")

	switch a.mode {
	case modeEdit:
		b.WriteString(a.renderEditDialog())
	case modeFolder:
		b.WriteString(a.renderFolderDialog())
	case modePalette:
		b.WriteString(a.renderPalette())
	default:
		b.WriteString(a.renderList())
	}

	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render(a.helpLine()))

	return a.styles.App.Render(b.String())
}

// renderFilterLine shows the active scope: search takes priority over the
// tag selection, which takes priority over the folder selection.
func (a App) renderFilterLine() string {
	var parts []string

	if a.mode == modeSearch {
		parts = append(parts, "Search: "+a.searchInput.View())
	} else if a.view.Search != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", a.view.Search))
	} else if a.view.Tag != "" {
		parts = append(parts, "#"+a.view.Tag)
	} else if a.view.Folder != "" {
		if folder, ok := a.repo.FolderByName(a.view.Folder); ok {
			parts = append(parts, a.icons.Resolve(folder.Icon)+" "+folder.Name)
		} else {
			parts = append(parts, a.view.Folder)
		}
	} else {
		parts = append(parts, "All bookmarks")
	}

	if a.view.Sort == query.Oldest {
		parts = append(parts, "oldest first")
	} else {
		parts = append(parts, "newest first")
	}

	if a.view.ShowArchived {
		parts = append(parts, "archived")
	}

	return a.styles.Filter.Render(strings.Join(parts, "  ·  "))
}

// renderList renders the visible bookmarks.
func (a App) renderList() string {
	if len(a.visible) == 0 {
		return a.styles.Empty.Render("No bookmarks here.")
	}

	var b strings.Builder
	for i, bm := range a.visible {
		style := a.styles.Item
		if i == a.cursor {
			style = a.styles.ItemSelected
		}

		title := bm.Title
		if bm.IsArchived {
			title = a.styles.Archived.Render(title)
		}
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		b.WriteString("   " + a.styles.URL.Render(bm.URL))
		b.WriteString("\n")
		b.WriteString("   " + a.styles.Date.Render(a.metaLine(bm)))
		b.WriteString("\n")
	}

	count := len(a.visible)
	plural := "s"
	if count == 1 {
		plural = ""
	}
	b.WriteString(a.styles.Date.Render(fmt.Sprintf("\nShowing %d bookmark%s", count, plural)))
	return b.String()
}

// metaLine renders folder, dates and tags for one list row.
func (a App) metaLine(bm model.Bookmark) string {
	parts := []string{
		"Folder: " + bm.Folder,
		"Added: " + bm.CreatedAt.Format("2006-01-02"),
	}
	if bm.RemindAt != nil {
		parts = append(parts, "Remind: "+bm.RemindAt.Format("2006-01-02"))
	}
	for _, tag := range bm.Tags {
		parts = append(parts, a.styles.Tag.Render("#"+tag))
	}
	return strings.Join(parts, " · ")
}

// renderEditDialog renders the add/edit bookmark dialog.
func (a App) renderEditDialog() string {
	title := "Save Bookmark"
	if a.edit.EditingID != "" {
		title = "Edit Bookmark"
	}

	labels := [fieldCount]string{
		fieldTitle:  "Title",
		fieldURL:    "URL",
		fieldFolder: "Folder",
		fieldTags:   "Tags",
		fieldNotes:  "Notes",
		fieldRemind: "Remind",
	}

	var b strings.Builder
	b.WriteString(a.styles.DialogTitle.Render(title))
	b.WriteString("\n\n")
	for i, input := range a.edit.Inputs {
		b.WriteString(a.styles.Label.Render(fmt.Sprintf("%-7s", labels[i])))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("tab: next field  enter: save  esc: cancel"))

	return a.styles.Dialog.Render(b.String())
}

// renderFolderDialog renders the new-folder dialog.
func (a App) renderFolderDialog() string {
	var b strings.Builder
	b.WriteString(a.styles.DialogTitle.Render("New Folder"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Label.Render("Name   "))
	b.WriteString(a.folderDialog.Name.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Label.Render("Icon   "))
	b.WriteString(a.folderDialog.Icon.View())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("enter: create  esc: cancel"))

	return a.styles.Dialog.Render(b.String())
}

// renderPalette renders the quick-open surface.
func (a App) renderPalette() string {
	var b strings.Builder
	b.WriteString(a.palette.Input.View())
	b.WriteString("\n\n")

	if a.palette.Results.Empty() {
		b.WriteString(a.styles.Empty.Render(
			fmt.Sprintf("No results found for %q", a.palette.Input.Value())))
		return a.styles.Dialog.Render(b.String())
	}

	idx := 0
	writeEntry := func(label string) {
		cursor := "  "
		style := a.styles.Item
		if idx == a.palette.Cursor {
			cursor = "> "
			style = a.styles.ItemSelected
		}
		b.WriteString(cursor + style.Render(label))
		b.WriteString("\n")
		idx++
	}

	if len(a.palette.Results.Actions) > 0 {
		b.WriteString(a.styles.Group.Render("QUICK ACTIONS"))
		b.WriteString("\n")
		for _, action := range a.palette.Results.Actions {
			writeEntry(action.Label)
		}
	}

	if len(a.palette.Results.Bookmarks) > 0 {
		b.WriteString(a.styles.Group.Render(
			fmt.Sprintf("BOOKMARKS (%d)", len(a.palette.Results.Bookmarks))))
		b.WriteString("\n")
		for _, bm := range a.palette.Results.Bookmarks {
			writeEntry(bm.Title)
		}
	}

	if len(a.palette.Results.Folders) > 0 {
		b.WriteString(a.styles.Group.Render(
			fmt.Sprintf("FOLDERS (%d)", len(a.palette.Results.Folders))))
		b.WriteString("\n")
		for _, f := range a.palette.Results.Folders {
			writeEntry(a.icons.Resolve(f.Icon) + " " + f.Name)
		}
	}

	if len(a.palette.Results.Tags) > 0 {
		b.WriteString(a.styles.Group.Render(
			fmt.Sprintf("TAGS (%d)", len(a.palette.Results.Tags))))
		b.WriteString("\n")
		for _, tag := range a.palette.Results.Tags {
			writeEntry("#" + tag)
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("up/down: navigate  enter: select  esc: close"))

	return a.styles.Dialog.Render(b.String())
}

// helpLine renders the key hints for the active surface.
func (a App) helpLine() string {
	switch a.mode {
	case modeSearch:
		return "enter: apply  esc: clear search"
	case modeEdit, modeFolder, modePalette:
		return ""
	default:
		return "j/k: move  a: add  e: edit  d: delete  x: archive  u: undo  /: search  ctrl+k: quick open  q: quit"
	}
}
