package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tango/internal/vocab"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// placeModal centers a bordered dialog on the screen.
func placeModal(theme Theme, width, height int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(56, maxInt(24, width-4))).
		Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmModal asks a yes/no question and emits onYes when accepted.
type confirmModal struct {
	title string
	body  string
	onYes tea.Msg
}

func newConfirmModal(title, body string, onYes tea.Msg) *confirmModal {
	return &confirmModal{title: title, body: body, onYes: onYes}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(k, keys.Yes):
		return c, emit(c.onYes), true
	case key.Matches(k, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("y/enter: yes   n/esc: no"))
	return placeModal(theme, width, height, b.String())
}

// promptModal reads one line. submit validates the value and returns the
// request to emit; a validation error keeps the dialog open.
type promptModal struct {
	title  string
	input  textinput.Model
	err    string
	submit func(string) (tea.Msg, error)
}

func newPromptModal(title, placeholder string, submit func(string) (tea.Msg, error)) *promptModal {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 80
	in.Focus()
	return &promptModal{title: title, input: in, submit: submit}
}

func (p *promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "esc":
			return p, nil, true
		case key.Matches(k, keys.Confirm):
			req, err := p.submit(p.input.Value())
			if err != nil {
				p.err = describeError(err)
				return p, nil, false
			}
			return p, emit(req), true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return p, cmd, false
}

func (p *promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if p.err != "" {
		b.WriteString(styles.DangerText.Render(p.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("enter: create   esc: cancel"))
	return placeModal(theme, width, height, b.String())
}

const (
	fieldKorean = iota
	fieldJapanese
)

// addWordModal collects a Korean/Japanese pair. ctrl+t fills the empty
// field by translating the other one.
type addWordModal struct {
	folder      string
	inputs      [2]textinput.Model
	focus       int
	err         string
	translating bool
}

func newAddWordModal(folder string) *addWordModal {
	m := &addWordModal{folder: folder}
	labels := [2]string{"한국어", "日本語"}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = labels[i] + "  "
		in.CharLimit = 120
		m.inputs[i] = in
	}
	m.inputs[fieldKorean].Focus()
	return m
}

func (a *addWordModal) values() (string, string) {
	return strings.TrimSpace(a.inputs[fieldKorean].Value()), strings.TrimSpace(a.inputs[fieldJapanese].Value())
}

func (a *addWordModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case translatedMsg:
		a.translating = false
		if msg.err != nil {
			a.err = "Translation failed: " + describeError(msg.err)
			return a, nil, false
		}
		a.err = ""
		a.inputs[msg.field].SetValue(msg.text)
		return a, nil, false

	case tea.KeyMsg:
		switch {
		case msg.String() == "esc":
			return a, nil, true
		case key.Matches(msg, keys.NextField):
			a.inputs[a.focus].Blur()
			a.focus = (a.focus + 1) % len(a.inputs)
			return a, a.inputs[a.focus].Focus(), false
		case key.Matches(msg, keys.Translate):
			return a, a.translate(), false
		case key.Matches(msg, keys.Confirm):
			return a.confirm()
		}
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd, false
}

func (a *addWordModal) translate() tea.Cmd {
	if a.translating {
		return nil
	}
	ko, ja := a.values()
	var req translateRequestMsg
	switch {
	case ko != "" && ja == "":
		req = translateRequestMsg{field: fieldJapanese, text: ko, from: "ko", to: "ja"}
	case ja != "" && ko == "":
		req = translateRequestMsg{field: fieldKorean, text: ja, from: "ja", to: "ko"}
	default:
		a.err = "Fill exactly one field to translate"
		return nil
	}
	a.err = ""
	a.translating = true
	return emit(req)
}

// confirm validates locally so an incomplete pair never reaches the server.
func (a *addWordModal) confirm() (Modal, tea.Cmd, bool) {
	ko, ja := a.values()
	if ko == "" && ja == "" {
		a.err = "Enter a Korean and a Japanese word"
		return a, nil, false
	}
	if ko == "" || ja == "" {
		a.err = "Both fields are required (ctrl+t translates)"
		return a, nil, false
	}
	return a, emit(addWordRequestMsg{folder: a.folder, word: vocab.NewWord{Korean: ko, Japanese: ja}}), true
}

func (a *addWordModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Add word to " + a.folder))
	b.WriteString("\n\n")
	for _, in := range a.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case a.translating:
		b.WriteString(styles.AccentText.Render("Translating..."))
		b.WriteString("\n")
	case a.err != "":
		b.WriteString(styles.DangerText.Render(a.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("enter: add   tab: next field   ctrl+t: translate   esc: cancel"))
	return placeModal(theme, width, height, b.String())
}
