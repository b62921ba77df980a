// Package picker is the standalone result picker for CLI search. It
// renders fuzzy matches with the matched runes highlighted and windows
// the list to the terminal height.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Underline(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// rows reserved for header and footer around the list window
const chromeRows = 4

// Picker is a TUI for selecting one bookmark from search results.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	offset    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the given search results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.scrollToCursor()
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.cancelled = true
			return p, tea.Quit
		case "enter":
			p.selected = true
			return p, tea.Quit
		case "down", "j":
			if p.cursor < len(p.results)-1 {
				p.cursor++
				p.scrollToCursor()
			}
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
				p.scrollToCursor()
			}
		}
	}

	return p, nil
}

// visibleRows returns how many result entries fit on screen. Each entry
// takes two lines.
func (p Picker) visibleRows() int {
	rows := (p.height - chromeRows) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (p *Picker) scrollToCursor() {
	rows := p.visibleRows()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	end := p.offset + p.visibleRows()
	if end > len(p.results) {
		end = len(p.results)
	}

	for i := p.offset; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(highlightTitle(result, style))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(result.Bookmark.URL)))
	}

	if end < len(p.results) {
		b.WriteString(footerStyle.Render(fmt.Sprintf("   ... %d more", len(p.results)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlightTitle renders the title with the fuzzy-matched characters
// underlined. MatchedIndexes are byte offsets into the title.
func highlightTitle(result search.Result, base lipgloss.Style) string {
	matched := make(map[int]bool, len(result.MatchedIndexes))
	for _, idx := range result.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range result.Bookmark.Title {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return &p.results[p.cursor].Bookmark
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
