package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/workspace"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DocListModel - Interactive document selection
// =============================================================================

// DocListModel is the bubbletea model for interactive document selection.
type DocListModel struct {
	Docs     []*workspace.Document
	Cursor   int
	Selected *workspace.Document
	Height   int
	Offset   int
}

// NewDocListModel creates a new document list model.
func NewDocListModel(docs []*workspace.Document) DocListModel {
	return DocListModel{
		Docs:   docs,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m DocListModel) Init() tea.Cmd {
	return nil
}

func (m DocListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Docs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Docs[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DocListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Document"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Docs) {
		end = len(m.Docs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		doc := m.Docs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		lines := strings.Count(doc.Source, "\n") + 1
		rows = append(rows, []string{
			cursor,
			doc.Name,
			fmt.Sprintf("%d lines", lines),
			formatRelativeTime(doc.UpdatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Size", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Docs))))

	return b.String()
}

// pickDocument runs the interactive picker and returns the chosen document.
// Quitting without a selection is reported as an error so callers don't
// operate on an arbitrary document.
func pickDocument(docs []*workspace.Document) (*workspace.Document, error) {
	model, err := tea.NewProgram(NewDocListModel(docs)).Run()
	if err != nil {
		return nil, err
	}
	final := model.(DocListModel)
	if final.Selected == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no document selected")
	}
	return final.Selected, nil
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

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
