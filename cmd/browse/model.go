package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matst80/skill-finder/pkg/controller"
	"github.com/matst80/skill-finder/pkg/skills"
	"github.com/matst80/skill-finder/pkg/types"
	"github.com/matst80/skill-finder/pkg/urlstate"
)

// refreshMsg is sent when the controller recomputed outside of Update,
// after the text debounce fired.
type refreshMsg struct{}

type focusArea int

const (
	focusInput focusArea = iota
	focusBoxes
	focusList
)

type checkbox struct {
	category string
	value    string
}

type model struct {
	ctrl   *controller.Controller[skills.Skill]
	schema *types.FilterSchema
	codec  urlstate.Codec
	base   *url.URL

	input  textinput.Model
	boxes  []checkbox
	cursor int
	focus  focusArea
	offset int

	width    int
	height   int
	quitting bool
}

func newModel(c *skills.Catalogue, rawQuery string, base *url.URL, opts ...controller.Option[skills.Skill]) model {
	ctrl := controller.New(c, rawQuery, opts...)

	ti := textinput.New()
	ti.Placeholder = "Search skills"
	ti.CharLimit = 100
	ti.Width = 40
	ti.SetValue(ctrl.Text())
	ti.Focus()

	schema := c.Schema()
	boxes := []checkbox{}
	for _, category := range schema.Categories() {
		for _, value := range category.Values {
			boxes = append(boxes, checkbox{category: category.Name, value: value})
		}
	}

	return model{
		ctrl:   ctrl,
		schema: schema,
		codec:  urlstate.Default,
		base:   base,
		input:  ti,
		boxes:  boxes,
		height: 24,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.ctrl.Close()
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % 3)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + 2) % 3)
			return m, nil
		}

		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusBoxes:
			return m.updateBoxes(msg), nil
		case focusList:
			return m.updateList(msg), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.ctrl.Flush()
		m.offset = 0
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.ctrl.TextChanged(value)
	}
	return m, cmd
}

func (m model) updateBoxes(msg tea.KeyMsg) model {
	switch msg.String() {
	case "left", "up", "h", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "down", "l", "j":
		if m.cursor < len(m.boxes)-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		if len(m.boxes) == 0 {
			return m
		}
		box := m.boxes[m.cursor]
		checked := m.ctrl.State().Checkboxes.IsChecked(box.category, box.value)
		m.ctrl.Toggle(box.category, box.value, !checked)
		m.offset = 0
	}
	return m
}

func (m model) updateList(msg tea.KeyMsg) model {
	switch msg.String() {
	case "up", "k":
		m.offset--
	case "down", "j":
		m.offset++
	case "pgup":
		m.offset -= m.pageSize()
	case "pgdown":
		m.offset += m.pageSize()
	case "home", "g":
		m.offset = 0
	}
	m.clampOffset()
	return m
}

// pageSize is the number of skills that fit below the filters, each skill
// takes two lines.
func (m model) pageSize() int {
	rows := (m.height - 8 - len(m.schema.Names())) / 2
	return max(rows, 1)
}

func (m *model) clampOffset() {
	last := len(m.ctrl.Items()) - m.pageSize()
	m.offset = max(min(m.offset, last), 0)
}

// ShareLink is the page URL that restores the applied filters.
func (m model) ShareLink() string {
	return m.codec.Merge(m.base, m.ctrl.State()).String()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	b := strings.Builder{}
	b.WriteString(titleStyle.Render("Skill finder"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.ctrl.Pending() {
		b.WriteString(mutedStyle.Render(" ..."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderBoxes())
	b.WriteString("\n")

	items := m.ctrl.Items()
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d skills", len(items))))
	b.WriteString("\n")
	end := min(m.offset+m.pageSize(), len(items))
	for _, s := range items[min(m.offset, end):end] {
		b.WriteString(headingStyle.Render(s.Heading()))
		b.WriteString("\n  ")
		b.WriteString(mutedStyle.Render(s.Summary()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(linkStyle.Render(m.ShareLink()))
	return b.String()
}

func (m model) renderBoxes() string {
	state := m.ctrl.State()
	rows := []string{}
	i := 0
	for _, category := range m.schema.Categories() {
		cells := []string{categoryStyle.Render(category.Name + ":")}
		for _, value := range category.Values {
			label := value
			if label == "" {
				label = "(none)"
			}
			mark := "[ ]"
			if state.Checkboxes.IsChecked(category.Name, value) {
				mark = checkedStyle.Render("[x]")
			}
			cell := mark + " " + label
			if m.focus == focusBoxes && i == m.cursor {
				cell = cursorStyle.Render(">") + cell
			} else {
				cell = " " + cell
			}
			cells = append(cells, cell)
			i++
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n") + "\n"
}
