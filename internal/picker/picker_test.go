package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/search"
)

func sampleResults() []search.Result {
	return []search.Result{
		{Bookmark: model.Bookmark{ID: "b1", Title: "GitHub", URL: "https://github.com"}},
		{Bookmark: model.Bookmark{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"}},
	}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(sampleResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_Navigation(t *testing.T) {
	p := New(sampleResults(), "git")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after j, got %d", p.cursor)
	}

	// No wrap at the bottom
	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after k, got %d", p.cursor)
	}

	// No wrap at the top
	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", p.cursor)
	}
}

func TestPicker_ArrowKeys(t *testing.T) {
	p := New(sampleResults(), "git")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after down arrow, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after up arrow, got %d", p.cursor)
	}
}

func TestPicker_WindowFollowsCursor(t *testing.T) {
	results := make([]search.Result, 10)
	for i := range results {
		results[i] = search.Result{Bookmark: model.Bookmark{ID: string(rune('a' + i)), Title: "Result"}}
	}
	p := New(results, "res")

	// 10 lines of screen leaves room for 3 two-line entries
	newModel, _ := p.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	p = newModel.(Picker)
	if got := p.visibleRows(); got != 3 {
		t.Fatalf("expected 3 visible rows, got %d", got)
	}

	for i := 0; i < 5; i++ {
		newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
		p = newModel.(Picker)
	}
	if p.cursor != 5 {
		t.Fatalf("expected cursor at 5, got %d", p.cursor)
	}
	if p.offset != 3 {
		t.Errorf("window must follow the cursor down, offset %d", p.offset)
	}

	for i := 0; i < 5; i++ {
		newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
		p = newModel.(Picker)
	}
	if p.offset != 0 {
		t.Errorf("window must follow the cursor back up, offset %d", p.offset)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(sampleResults(), "git")
	p.cursor = 1

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if !p.selected {
		t.Error("expected selected to be true after Enter")
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}

	got := p.SelectedBookmark()
	if got == nil || got.ID != "b2" {
		t.Errorf("expected the bookmark under the cursor, got %+v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(sampleResults(), "git")

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = newModel.(Picker)

	if !p.cancelled {
		t.Error("expected cancelled to be true after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if p.SelectedBookmark() != nil {
		t.Error("expected nil bookmark when cancelled")
	}
}
