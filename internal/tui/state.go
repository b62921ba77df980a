package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/palette"
	"github.com/stashd/stash/internal/repo"
)

// Edit dialog field indexes.
const (
	fieldTitle = iota
	fieldURL
	fieldFolder
	fieldTags
	fieldNotes
	fieldRemind
	fieldCount
)

// remindLayout is the date format accepted by the remind field.
const remindLayout = "2006-01-02"

// newSearchInput creates the list search field.
func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "Search bookmarks..."
	input.CharLimit = 128
	input.Width = 40
	return input
}

// EditState holds the draft for the add/edit bookmark dialog. Dismissing
// the dialog discards the draft without persisting anything.
type EditState struct {
	Inputs    [fieldCount]textinput.Model
	Focus     int
	EditingID string // "" = creating a new bookmark
}

// NewEditState creates an EditState with initialized inputs.
func NewEditState() EditState {
	var e EditState

	placeholders := [fieldCount]string{
		fieldTitle:  "Title",
		fieldURL:    "https://...",
		fieldFolder: model.DefaultFolderName,
		fieldTags:   "tag1, tag2",
		fieldNotes:  "Notes",
		fieldRemind: "YYYY-MM-DD",
	}

	for i := range e.Inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 256
		input.Width = 48
		e.Inputs[i] = input
	}

	return e
}

// StartCreate prepares the dialog for a new bookmark draft.
func (e *EditState) StartCreate(url, folder string) {
	e.Reset()
	e.Inputs[fieldURL].SetValue(url)
	if folder != "" {
		e.Inputs[fieldFolder].SetValue(folder)
	}
	e.Inputs[fieldTitle].Focus()
}

// StartEdit prepares the dialog with the bookmark's current fields.
func (e *EditState) StartEdit(b model.Bookmark) {
	e.Reset()
	e.EditingID = b.ID
	e.Inputs[fieldTitle].SetValue(b.Title)
	e.Inputs[fieldURL].SetValue(b.URL)
	e.Inputs[fieldFolder].SetValue(b.Folder)
	e.Inputs[fieldTags].SetValue(strings.Join(b.Tags, ", "))
	e.Inputs[fieldNotes].SetValue(b.Notes)
	if b.RemindAt != nil {
		e.Inputs[fieldRemind].SetValue(b.RemindAt.Format(remindLayout))
	}
	e.Inputs[fieldTitle].Focus()
}

// Reset clears the draft.
func (e *EditState) Reset() {
	for i := range e.Inputs {
		e.Inputs[i].Reset()
		e.Inputs[i].Blur()
	}
	e.Focus = 0
	e.EditingID = ""
}

// FocusNext moves focus to the next field, wrapping around.
func (e *EditState) FocusNext() {
	e.Inputs[e.Focus].Blur()
	e.Focus = (e.Focus + 1) % fieldCount
	e.Inputs[e.Focus].Focus()
}

// FocusPrev moves focus to the previous field, wrapping around.
func (e *EditState) FocusPrev() {
	e.Inputs[e.Focus].Blur()
	e.Focus = (e.Focus - 1 + fieldCount) % fieldCount
	e.Inputs[e.Focus].Focus()
}

// Params builds creation parameters from the draft.
func (e *EditState) Params() model.NewBookmarkParams {
	return model.NewBookmarkParams{
		Title:    strings.TrimSpace(e.Inputs[fieldTitle].Value()),
		URL:      strings.TrimSpace(e.Inputs[fieldURL].Value()),
		Folder:   strings.TrimSpace(e.Inputs[fieldFolder].Value()),
		RemindAt: e.remindAt(),
		Tags:     e.tags(),
		Notes:    strings.TrimSpace(e.Inputs[fieldNotes].Value()),
	}
}

// Patch builds update parameters from the draft. A blanked remind field
// clears the reminder rather than keeping the old value.
func (e *EditState) Patch() repo.BookmarkPatch {
	title := strings.TrimSpace(e.Inputs[fieldTitle].Value())
	url := strings.TrimSpace(e.Inputs[fieldURL].Value())
	folder := strings.TrimSpace(e.Inputs[fieldFolder].Value())
	notes := strings.TrimSpace(e.Inputs[fieldNotes].Value())
	tags := e.tags()
	if tags == nil {
		tags = []string{}
	}

	return repo.BookmarkPatch{
		Title:       &title,
		URL:         &url,
		Folder:      &folder,
		RemindAt:    e.remindAt(),
		ClearRemind: strings.TrimSpace(e.Inputs[fieldRemind].Value()) == "",
		Tags:        tags,
		Notes:       &notes,
	}
}

func (e *EditState) tags() []string {
	raw := e.Inputs[fieldTags].Value()
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (e *EditState) remindAt() *time.Time {
	raw := strings.TrimSpace(e.Inputs[fieldRemind].Value())
	if raw == "" {
		return nil
	}
	t, err := time.Parse(remindLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// FolderState holds the draft for the new-folder dialog.
type FolderState struct {
	Name textinput.Model
	Icon textinput.Model
}

// NewFolderState creates a FolderState with initialized inputs.
func NewFolderState() FolderState {
	name := textinput.New()
	name.Placeholder = "Folder name"
	name.CharLimit = 64
	name.Width = 32

	icon := textinput.New()
	icon.Placeholder = model.DefaultFolderIcon
	icon.CharLimit = 32
	icon.Width = 32

	return FolderState{Name: name, Icon: icon}
}

// Reset clears the folder draft.
func (f *FolderState) Reset() {
	f.Name.Reset()
	f.Name.Blur()
	f.Icon.Reset()
	f.Icon.Blur()
}

// Palette entry kinds, in display order.
type entryKind int

const (
	entryAction entryKind = iota
	entryBookmark
	entryFolder
	entryTag
)

// paletteEntry is one selectable row in the quick-open surface.
type paletteEntry struct {
	kind     entryKind
	action   palette.QuickAction
	bookmark model.Bookmark
	folder   model.Folder
	tag      string
}

// PaletteState holds the quick-open input, results and selection.
type PaletteState struct {
	Input   textinput.Model
	Results palette.Results
	Cursor  int

	entries []paletteEntry
}

// NewPaletteState creates a PaletteState with initialized input.
func NewPaletteState() PaletteState {
	input := textinput.New()
	input.Placeholder = "Search bookmarks, folders, and tags"
	input.CharLimit = 128
	input.Width = 48

	return PaletteState{Input: input}
}

// Refresh rebuilds the candidate lists for the current query.
func (p *PaletteState) Refresh(bookmarks []model.Bookmark, folders []model.Folder, tags []string) {
	p.Results = palette.Build(p.Input.Value(), bookmarks, folders, tags)

	p.entries = p.entries[:0]
	for _, a := range p.Results.Actions {
		p.entries = append(p.entries, paletteEntry{kind: entryAction, action: a})
	}
	for _, b := range p.Results.Bookmarks {
		p.entries = append(p.entries, paletteEntry{kind: entryBookmark, bookmark: b})
	}
	for _, f := range p.Results.Folders {
		p.entries = append(p.entries, paletteEntry{kind: entryFolder, folder: f})
	}
	for _, t := range p.Results.Tags {
		p.entries = append(p.entries, paletteEntry{kind: entryTag, tag: t})
	}

	if p.Cursor >= len(p.entries) {
		p.Cursor = 0
	}
}

// Selected returns the entry under the cursor.
func (p *PaletteState) Selected() (paletteEntry, bool) {
	if len(p.entries) == 0 || p.Cursor >= len(p.entries) {
		return paletteEntry{}, false
	}
	return p.entries[p.Cursor], true
}

// Reset clears the palette for the next open.
func (p *PaletteState) Reset() {
	p.Input.Reset()
	p.Input.Blur()
	p.Cursor = 0
	p.Results = palette.Results{}
	p.entries = nil
}
