package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/query"
	"github.com/stashd/stash/internal/repo"
	"github.com/stashd/stash/internal/storage"
	"github.com/stashd/stash/internal/undo"
)

// mode identifies which surface currently receives key input.
type mode int

const (
	modeList mode = iota
	modeSearch
	modePalette
	modeEdit
	modeFolder
)

// App is the main bubbletea model for the bookmark manager. It owns the
// transient view state and translates key presses into repository calls;
// the repository stays the single source of truth for the collections.
type App struct {
	repo    *repo.Repository
	undo    *undo.Stack
	keys    KeyMap
	styles  Styles
	icons   IconResolver
	openURL func(string)

	mode    mode
	view    query.View
	visible []model.Bookmark
	cursor  int

	searchInput  textinput.Model
	edit         EditState
	folderDialog FolderState
	palette      PaletteState

	status   string
	degraded bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Repo    *repo.Repository
	Keys    *KeyMap     // optional, uses default if nil
	Styles  *Styles     // optional, uses default if nil
	Icons   IconResolver // optional, uses default if nil
	View    *query.View // optional initial view state
	OpenURL func(string) // optional browser opener
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	icons := params.Icons
	if icons == nil {
		icons = DefaultIconResolver()
	}

	view := query.View{Sort: query.Newest}
	if params.View != nil {
		view = *params.View
	}

	app := App{
		repo:         params.Repo,
		undo:         &undo.Stack{},
		keys:         keys,
		styles:       styles,
		icons:        icons,
		openURL:      params.OpenURL,
		view:         view,
		searchInput:  newSearchInput(),
		edit:         NewEditState(),
		folderDialog: NewFolderState(),
		palette:      NewPaletteState(),
		width:        80,
		height:       24,
	}
	app.searchInput.SetValue(view.Search)

	app.refreshVisible()
	return app
}

// refreshVisible recomputes the visible list and clamps the cursor.
func (a *App) refreshVisible() {
	a.visible = query.Visible(a.repo.Bookmarks(), a.view)
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Visible returns the currently visible bookmarks.
func (a App) Visible() []model.Bookmark {
	return a.visible
}

// CurrentView returns the transient view state.
func (a App) CurrentView() query.View {
	return a.view
}

// Status returns the transient status line, "" when idle.
func (a App) Status() string {
	return a.status
}

// Editing reports whether the add/edit dialog is open.
func (a App) Editing() bool {
	return a.mode == modeEdit
}

// PaletteOpen reports whether the quick-open surface is active.
func (a App) PaletteOpen() bool {
	return a.mode == modePalette
}

// WithDimensions returns the app with fixed dimensions, for tests.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.status = ""
		switch a.mode {
		case modeList:
			return a.updateList(msg)
		case modeSearch:
			return a.updateSearch(msg)
		case modePalette:
			return a.updatePalette(msg)
		case modeEdit:
			return a.updateEdit(msg)
		case modeFolder:
			return a.updateFolder(msg)
		}
	}

	return a, nil
}

// updateList handles key input in the list surface.
func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.visible) > 0 && a.cursor < len(a.visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Open):
		if b, ok := a.selected(); ok && a.openURL != nil {
			a.openURL(b.URL)
		}

	case key.Matches(msg, a.keys.Add):
		a.edit.StartCreate("", a.view.Folder)
		a.mode = modeEdit

	case key.Matches(msg, a.keys.AddFolder):
		a.folderDialog.Reset()
		a.folderDialog.Name.Focus()
		a.mode = modeFolder

	case key.Matches(msg, a.keys.Edit):
		if b, ok := a.selected(); ok {
			a.edit.StartEdit(b)
			a.mode = modeEdit
		}

	case key.Matches(msg, a.keys.Delete):
		if b, ok := a.selected(); ok {
			removed, existed, err := a.repo.DeleteBookmark(b.ID)
			if existed {
				a.undo.Arm(undo.Reinsert(removed))
				a.status = fmt.Sprintf("Deleted %q (u to undo)", removed.Title)
			}
			a.noteStorageError(err)
			a.refreshVisible()
		}

	case key.Matches(msg, a.keys.Archive):
		if b, ok := a.selected(); ok {
			a.toggleArchive(b)
		}

	case key.Matches(msg, a.keys.ArchiveFirst):
		if len(a.visible) > 0 {
			a.toggleArchive(a.visible[0])
		}

	case key.Matches(msg, a.keys.Undo):
		if !a.undo.Armed() {
			a.status = "Nothing to undo"
			break
		}
		a.noteStorageError(a.undo.Consume(a.repo))
		a.status = "Undone"
		a.refreshVisible()

	case key.Matches(msg, a.keys.Search):
		a.searchInput.Focus()
		a.mode = modeSearch

	case key.Matches(msg, a.keys.Palette):
		a.palette.Reset()
		a.palette.Input.Focus()
		a.palette.Refresh(a.repo.Bookmarks(), a.repo.Folders(), a.repo.Tags())
		a.mode = modePalette

	case key.Matches(msg, a.keys.CycleFolder):
		a.cycleFolder()

	case key.Matches(msg, a.keys.CycleTag):
		a.cycleTag()

	case key.Matches(msg, a.keys.ToggleArchive):
		a.view.ShowArchived = !a.view.ShowArchived
		a.cursor = 0
		a.refreshVisible()

	case key.Matches(msg, a.keys.Sort):
		if a.view.Sort == query.Oldest {
			a.view.Sort = query.Newest
		} else {
			a.view.Sort = query.Oldest
		}
		a.refreshVisible()

	case key.Matches(msg, a.keys.Paste):
		a.pasteIntake()
	}

	return a, nil
}

// toggleArchive flips the archive flag and arms undo with the prior value.
func (a *App) toggleArchive(b model.Bookmark) {
	prior := b.IsArchived
	err := a.repo.SetArchived(b.ID, !prior)
	if err == nil || isStorageError(err) {
		a.undo.Arm(undo.RestoreArchive(b.ID, prior))
		if prior {
			a.status = fmt.Sprintf("Unarchived %q (u to undo)", b.Title)
		} else {
			a.status = fmt.Sprintf("Archived %q (u to undo)", b.Title)
		}
	}
	a.noteStorageError(err)
	a.refreshVisible()
}

// pasteIntake pre-fills a new-bookmark draft from the clipboard when the
// text looks like a URL.
func (a *App) pasteIntake() {
	text, err := clipboard.ReadAll()
	if err != nil {
		a.status = "Clipboard unavailable"
		return
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "http") && !strings.HasPrefix(text, "www") {
		a.status = "Clipboard is not a URL"
		return
	}
	a.edit.StartCreate(text, a.view.Folder)
	a.mode = modeEdit
}

// cycleFolder steps the folder selection: all -> each folder -> all.
// Selecting a folder clears the tag selection; the two are mutually
// exclusive scopes.
func (a *App) cycleFolder() {
	folders := a.repo.Folders()
	next := ""
	if a.view.Folder == "" {
		if len(folders) > 0 {
			next = folders[0].Name
		}
	} else {
		for i, f := range folders {
			if f.Name == a.view.Folder && i+1 < len(folders) {
				next = folders[i+1].Name
				break
			}
		}
	}
	a.view.Folder = next
	a.view.Tag = ""
	a.cursor = 0
	a.refreshVisible()
}

// cycleTag steps the tag selection: none -> each registry tag -> none.
func (a *App) cycleTag() {
	tags := a.repo.Tags()
	next := ""
	if a.view.Tag == "" {
		if len(tags) > 0 {
			next = tags[0]
		}
	} else {
		for i, t := range tags {
			if t == a.view.Tag && i+1 < len(tags) {
				next = tags[i+1]
				break
			}
		}
	}
	a.view.Tag = next
	a.cursor = 0
	a.refreshVisible()
}

// updateSearch handles key input while the search field is focused.
// Search text and the tag/folder selection are stored independently;
// search only takes priority while non-empty.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.searchInput.Reset()
		a.view.Search = ""
		a.searchInput.Blur()
		a.mode = modeList
		a.cursor = 0
		a.refreshVisible()
		return a, nil

	case msg.Type == tea.KeyEnter:
		a.searchInput.Blur()
		a.mode = modeList
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.view.Search = a.searchInput.Value()
	a.cursor = 0
	a.refreshVisible()
	return a, cmd
}

// updatePalette handles key input in the quick-open surface.
func (a App) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close), key.Matches(msg, a.keys.Palette):
		a.palette.Reset()
		a.mode = modeList
		return a, nil

	case msg.Type == tea.KeyDown, msg.Type == tea.KeyCtrlN:
		if a.palette.Cursor < len(a.palette.entries)-1 {
			a.palette.Cursor++
		}
		return a, nil

	case msg.Type == tea.KeyUp, msg.Type == tea.KeyCtrlP:
		if a.palette.Cursor > 0 {
			a.palette.Cursor--
		}
		return a, nil

	case msg.Type == tea.KeyEnter:
		entry, ok := a.palette.Selected()
		a.palette.Reset()
		a.mode = modeList
		if !ok {
			return a, nil
		}
		return a.applyPaletteEntry(entry), nil
	}

	var cmd tea.Cmd
	a.palette.Input, cmd = a.palette.Input.Update(msg)
	a.palette.Refresh(a.repo.Bookmarks(), a.repo.Folders(), a.repo.Tags())
	return a, cmd
}

// applyPaletteEntry runs the handler for a chosen candidate.
func (a App) applyPaletteEntry(entry paletteEntry) App {
	switch entry.kind {
	case entryAction:
		if entry.action.ID == "new-bookmark" {
			a.edit.StartCreate("", a.view.Folder)
			a.mode = modeEdit
		}
	case entryBookmark:
		a.edit.StartEdit(entry.bookmark)
		a.mode = modeEdit
	case entryFolder:
		a.view.Folder = entry.folder.Name
		a.view.Tag = ""
		a.view.Search = ""
		a.searchInput.Reset()
		a.cursor = 0
		a.refreshVisible()
	case entryTag:
		a.view.Tag = entry.tag
		a.view.Search = ""
		a.searchInput.Reset()
		a.cursor = 0
		a.refreshVisible()
	}
	return a
}

// updateEdit handles key input in the add/edit dialog.
func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		// Dismissal discards the draft without persisting
		a.edit.Reset()
		a.mode = modeList
		return a, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		a.edit.FocusNext()
		return a, nil

	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		a.edit.FocusPrev()
		return a, nil

	case msg.Type == tea.KeyEnter:
		return a.saveDraft(), nil
	}

	var cmd tea.Cmd
	a.edit.Inputs[a.edit.Focus], cmd = a.edit.Inputs[a.edit.Focus].Update(msg)
	return a, cmd
}

// saveDraft persists the dialog draft as a create or update.
func (a App) saveDraft() App {
	var err error
	if a.edit.EditingID == "" {
		_, err = a.repo.CreateBookmark(a.edit.Params())
	} else {
		_, err = a.repo.UpdateBookmark(a.edit.EditingID, a.edit.Patch())
	}

	var validation *repo.ValidationError
	if errors.As(err, &validation) {
		// Reject without state change; the dialog stays open
		a.status = validation.Error()
		return a
	}
	a.noteStorageError(err)

	a.edit.Reset()
	a.mode = modeList
	a.refreshVisible()
	if a.status == "" {
		a.status = "Saved"
	}
	return a
}

// updateFolder handles key input in the new-folder dialog.
func (a App) updateFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.folderDialog.Reset()
		a.mode = modeList
		return a, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		if a.folderDialog.Name.Focused() {
			a.folderDialog.Name.Blur()
			a.folderDialog.Icon.Focus()
		} else {
			a.folderDialog.Icon.Blur()
			a.folderDialog.Name.Focus()
		}
		return a, nil

	case msg.Type == tea.KeyEnter:
		name := strings.TrimSpace(a.folderDialog.Name.Value())
		icon := strings.TrimSpace(a.folderDialog.Icon.Value())
		folder, err := a.repo.CreateFolder(name, icon)

		var duplicate *repo.DuplicateError
		var validation *repo.ValidationError
		switch {
		case errors.As(err, &duplicate):
			a.status = duplicate.Error()
			return a, nil
		case errors.As(err, &validation):
			a.status = validation.Error()
			return a, nil
		}
		a.noteStorageError(err)

		a.folderDialog.Reset()
		a.mode = modeList
		if a.status == "" {
			a.status = fmt.Sprintf("Created folder %q", folder.Name)
		}
		return a, nil
	}

	var cmd tea.Cmd
	if a.folderDialog.Name.Focused() {
		a.folderDialog.Name, cmd = a.folderDialog.Name.Update(msg)
	} else {
		a.folderDialog.Icon, cmd = a.folderDialog.Icon.Update(msg)
	}
	return a, cmd
}

// selected returns the bookmark under the cursor.
func (a App) selected() (model.Bookmark, bool) {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return model.Bookmark{}, false
	}
	return a.visible[a.cursor], true
}

// noteStorageError records a durable-write failure. The in-memory state
// stays authoritative; the session continues without persistence until
// storage recovers.
func (a *App) noteStorageError(err error) {
	if isStorageError(err) {
		a.degraded = true
		a.status = "Storage unavailable - changes kept in memory only"
	}
}

func isStorageError(err error) bool {
	var storageErr *storage.Error
	return errors.As(err, &storageErr)
}
