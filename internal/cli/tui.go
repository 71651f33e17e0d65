package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ReleaseListModel - Interactive release selection
// =============================================================================

// ReleaseListModel is the bubbletea model for interactive release selection.
// Releases are listed newest first.
type ReleaseListModel struct {
	Name     string
	Releases []registry.Release
	Tags     map[string][]string
	Cursor   int
	Selected *registry.Release
	Height   int
	Offset   int

	now func() time.Time
}

// NewReleaseListModel creates a new release list model.
func NewReleaseListModel(rels *registry.Releases) ReleaseListModel {
	sorted := rels.Sorted()
	slices.Reverse(sorted)
	return ReleaseListModel{
		Name:     rels.Name,
		Releases: sorted,
		Tags:     tagsByVersion(rels.Tags),
		Height:   15,
		now:      time.Now,
	}
}

func (m ReleaseListModel) Init() tea.Cmd {
	return nil
}

func (m ReleaseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Releases)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Releases) - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		case "enter":
			if len(m.Releases) == 0 {
				return m, nil
			}
			rel := m.Releases[m.Cursor]
			m.Selected = &rel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m ReleaseListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Release of " + m.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Releases))
	now := time.Now
	if m.now != nil {
		now = m.now
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Releases[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		published := "—"
		if !r.Date.IsZero() {
			published = formatRelativeTime(r.Date, now())
		}
		rows = append(rows, []string{cursor, r.Version, published, strings.Join(m.Tags[r.Version], ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Version", "Published", "Tags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Releases) {
				return lipgloss.NewStyle()
			}
			deprecated := m.Releases[idx].Deprecated != ""
			switch {
			case idx == m.Cursor && deprecated:
				return lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case deprecated:
				return lipgloss.NewStyle().Foreground(colorDim)
			case col == 3:
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Releases))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
