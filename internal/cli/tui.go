package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wordcloud/internal/editor"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// defaultWeight is used when a word is added without a weight.
const defaultWeight = 10

// =============================================================================
// Messages
// =============================================================================

type sceneMsg struct{ gen uint64 }

type editorClosedMsg struct{}

// waitForUpdate blocks on the editor's subscription and turns the next
// update into a message.
func waitForUpdate(ch <-chan editor.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return editorClosedMsg{}
		}
		return sceneMsg{gen: u.Generation}
	}
}

// =============================================================================
// EditModel - Terminal word-list editor
// =============================================================================

// EditModel is the bubbletea model of the terminal editor. It mirrors the
// editor's word list and scene and forwards key presses as editor actions.
type EditModel struct {
	ed      *editor.Editor
	updates <-chan editor.Update
	path    string

	Words  []words.Entry
	Glyphs map[string]render.Glyph
	Config cloud.Config
	Gen    uint64

	Cursor int
	Height int
	Offset int

	adding bool
	input  textinput.Model

	Status      string
	Err         string
	Dirty       bool
	Saved       bool
	confirmQuit bool
}

// NewEditModel creates a model over ed, saving to path. updates should be a
// subscription on ed.
func NewEditModel(ed *editor.Editor, updates <-chan editor.Update, path string) EditModel {
	m := EditModel{
		ed:      ed,
		updates: updates,
		path:    path,
		Height:  15,
	}
	m.input = textinput.New()
	m.input.Placeholder = "word weight"
	m.input.CharLimit = 64
	m.input.Width = 40
	m.sync()
	return m
}

// sync copies the editor's current state into the model.
func (m *EditModel) sync() {
	m.Words = m.ed.Words()
	m.Config = m.ed.Config()
	scene := m.ed.Scene()
	m.Glyphs = make(map[string]render.Glyph, len(scene.Glyphs))
	for _, g := range scene.Glyphs {
		m.Glyphs[g.Key] = g
	}
	if m.Cursor >= len(m.Words) {
		m.Cursor = max(len(m.Words)-1, 0)
	}
	m.clampOffset()
}

func (m *EditModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m EditModel) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sceneMsg:
		m.Gen = msg.gen
		m.sync()
		return m, waitForUpdate(m.updates)
	case editorClosedMsg:
		if m.ed.Closed() {
			return m, tea.Quit
		}
		// The editor drops subscribers that fall behind; catch up and
		// listen again.
		m.updates = m.ed.Subscribe()
		m.Gen = m.ed.Generation()
		m.sync()
		return m, waitForUpdate(m.updates)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m EditModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.confirmQuit = false
	}
	m.Err = ""

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.Dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.Status = "Unsaved changes. Press q again to quit or s to save."
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Words)-1 {
			m.Cursor++
		}
	case "K", "shift+up":
		if m.Cursor > 0 {
			m.apply(m.ed.ReorderWord(m.Cursor, m.Cursor-1))
			if m.Err == "" {
				m.Cursor--
			}
		}
	case "J", "shift+down":
		if m.Cursor < len(m.Words)-1 {
			m.apply(m.ed.ReorderWord(m.Cursor, m.Cursor+1))
			if m.Err == "" {
				m.Cursor++
			}
		}
	case "d", "x", "delete":
		if len(m.Words) > 0 {
			entry, err := m.ed.DeleteWord(m.Cursor)
			m.apply(err)
			if err == nil {
				m.Status = fmt.Sprintf("Deleted %q", entry.Text)
			}
		}
	case "a":
		m.adding = true
		m.input.SetValue("")
		m.Status = ""
		cmd := m.input.Focus()
		return m, cmd
	case "r":
		m.ed.Refresh()
		m.Status = "Re-laying out"
	case "s":
		m.save()
	}
	m.sync()
	return m, nil
}

func (m EditModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		text, weight, err := parseWordInput(m.input.Value())
		if err == nil {
			var entry words.Entry
			entry, err = m.ed.AddWord(text, weight)
			if err == nil {
				m.Status = fmt.Sprintf("Added %q", entry.Text)
			}
		}
		m.apply(err)
		if err == nil {
			m.closeInput()
			m.sync()
			m.Cursor = len(m.Words) - 1
			m.clampOffset()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditModel) closeInput() {
	m.adding = false
	m.input.SetValue("")
	m.input.Blur()
}

// apply records the outcome of an editor action.
func (m *EditModel) apply(err error) {
	if err != nil {
		m.Err = errors.UserMessage(err)
		return
	}
	m.Dirty = true
	m.Saved = false
}

func (m *EditModel) save() {
	doc := wcio.Document{Settings: m.ed.Config(), Words: m.ed.Words()}
	if err := wcio.ExportFile(doc, m.path); err != nil {
		m.Err = err.Error()
		return
	}
	m.Dirty = false
	m.Saved = true
	m.Status = fmt.Sprintf("Saved %d words to %s", len(doc.Words), m.path)
}

// parseWordInput splits "text [weight]". The last field is the weight when
// it parses as a number; otherwise the whole input is the text.
func parseWordInput(s string) (string, float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", 0, errors.New(errors.ErrCodeValidation, "word text must not be empty")
	}
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if w, err := strconv.ParseFloat(last, 64); err == nil {
			return strings.Join(fields[:len(fields)-1], " "), w, nil
		}
	}
	return strings.Join(fields, " "), defaultWeight, nil
}

func (m EditModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Word Cloud"))
	b.WriteString(" " + listDimStyle.Render(m.path))
	if m.Dirty {
		b.WriteString(StyleWarning.Render(" *"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  J/K move  a add  d delete  r re-layout  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")

	placed := 0
	for _, e := range m.Words {
		if _, ok := m.Glyphs[e.ID]; ok {
			placed++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d words · %s placed · pass %d · %s",
		len(m.Words), StyleNumber.Render(strconv.Itoa(placed)), m.Gen, m.Config)))
	b.WriteString("\n")

	if m.adding {
		b.WriteString("\n" + StyleHighlight.Render("Add word") + listDimStyle.Render(" (esc cancels)") + "\n" + m.input.View() + "\n")
	}
	if m.Err != "" {
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.Err + "\n")
	} else if m.Status != "" {
		b.WriteString("\n" + styleIconInfo.Render(iconInfo) + " " + m.Status + "\n")
	}
	return b.String()
}

func (m EditModel) renderTable() string {
	if len(m.Words) == 0 {
		return listDimStyle.Render("  No words. Press a to add one.") + "\n"
	}

	end := min(m.Offset+m.Height, len(m.Words))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Words[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		size, pos := "—", "—"
		if g, ok := m.Glyphs[e.ID]; ok {
			size = fmt.Sprintf("%.0f", g.FontSize)
			pos = fmt.Sprintf("%.0f, %.0f", g.X, g.Y)
			if g.Rotate != 0 {
				pos += fmt.Sprintf(" ↻%.0f°", g.Rotate)
			}
		} else if i >= m.Config.WordLimit {
			pos = "over limit"
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i + 1), e.Text, strconv.FormatFloat(e.Weight, 'g', -1, 64), size, pos})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Word", "Weight", "Size", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Words) {
				return lipgloss.NewStyle()
			}
			_, placed := m.Glyphs[m.Words[idx].ID]
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !placed:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})

	return t.Render() + "\n" + listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Words))) + "\n"
}
