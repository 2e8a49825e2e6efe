package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tango/internal/cache"
	"github.com/five82/tango/internal/deck"
	"github.com/five82/tango/internal/presets"
)

const logo = "単語 tango"

func (m Model) compact() bool {
	return m.width < LayoutCompactWidth
}

func (m Model) bodyHeight() int {
	// header, notice, footer
	return maxInt(CardHeight+6, m.height-3)
}

func (m Model) cardPaneWidth() int {
	if m.compact() {
		return m.width
	}
	return maxInt(20, m.width-SidebarWidth)
}

// renderMain renders the full screen: header, panes, notice and footer.
func (m Model) renderMain() string {
	var body string
	switch {
	case m.compact() && m.focus == paneSidebar:
		body = m.renderSidebar(m.width)
	case m.compact():
		body = m.renderCardPane(m.width)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderSidebar(SidebarWidth),
			m.renderCardPane(m.cardPaneWidth()),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderNotice(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.Logo.Render(logo)}
	if label := m.sourceLabel(); label != "" {
		parts = append(parts, styles.Text.Bold(true).Render(label))
	}
	if m.busy() {
		parts = append(parts, styles.AccentText.Render(m.spinner.View()+" updating"))
	}
	if m.offline() {
		parts = append(parts, styles.WarningText.Render("offline"))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) sourceLabel() string {
	src := m.deck.Source
	switch src.Kind {
	case deck.SourceLevel:
		if lv, ok := presets.Find(m.levels, src.Name); ok {
			return "TOPIK (" + lv.Label + ")"
		}
	case deck.SourceFolder:
		return src.Name
	}
	return ""
}

// offline reports that the folder list failed to refresh repeatedly.
func (m Model) offline() bool {
	return m.lib != nil && m.lib.Folders.Get(cache.FoldersKey).IsOffline()
}

func (m Model) paneStyle(p pane) lipgloss.Style {
	styles := m.theme.Styles()
	if m.focus == p {
		return styles.FocusedPane
	}
	return styles.Pane
}

func (m Model) renderSidebar(width int) string {
	styles := m.theme.Styles()
	inner := maxInt(4, width-2)
	entries := m.entries()

	lines := []string{styles.MutedText.Render("Levels")}
	for i, e := range entries {
		if i == len(m.levels) {
			lines = append(lines, "", styles.MutedText.Render("Folders"))
		}
		marker := ternary(e.source == m.deck.Source, "● ", "  ")
		row := padRight(truncate(marker+e.label, inner), inner)
		switch {
		case i == m.sidebarIndex && m.focus == paneSidebar:
			row = styles.Selected.Render(row)
		case e.source == m.deck.Source:
			row = styles.AccentText.Render(row)
		default:
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)
	}
	if len(m.folders) == 0 {
		lines = append(lines, "", styles.MutedText.Render("Folders"), styles.FaintText.Render("  n: new folder"))
	}

	return m.paneStyle(paneSidebar).
		Width(inner).
		Height(m.bodyHeight() - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderCardPane(width int) string {
	styles := m.theme.Styles()
	inner := maxInt(10, width-2)

	var b strings.Builder
	b.WriteString(m.renderSearchLine())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, m.renderCard(inner)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.MutedText.Render(m.renderPosition())))

	return m.paneStyle(paneCards).
		Width(inner).
		Height(m.bodyHeight() - 2).
		Render(b.String())
}

func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	if m.searching {
		return m.search.View()
	}
	var parts []string
	if kw := strings.TrimSpace(m.deck.Keyword); kw != "" {
		parts = append(parts, styles.AccentText.Render("/ "+kw))
	} else {
		parts = append(parts, styles.FaintText.Render("/ search"))
	}
	if m.deck.FavoritesOnly {
		parts = append(parts, styles.FavoriteText.Render("★ only"))
	}
	if m.deck.IsShuffled {
		parts = append(parts, styles.WarningText.Render("shuffled"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderCard(width int) string {
	styles := m.theme.Styles()
	cardWidth := min(CardMaxWidth, maxInt(10, width-4))
	face := styles.Card.Width(cardWidth).Height(CardHeight)

	if m.deck.Phase() == deck.PhaseIdle {
		return face.Render(styles.MutedText.Render("Select a level or folder"))
	}
	card, ok := m.deck.Current()
	if !ok {
		var text string
		switch {
		case m.loading:
			text = m.spinner.View() + " Loading words..."
		case len(m.deck.Cards) == 0 && m.deck.Source.Remote():
			text = "No words yet. Press a to add one."
		case len(m.deck.Cards) == 0:
			text = "This level is empty."
		default:
			text = "No cards match the search."
		}
		return face.Render(styles.MutedText.Render(text))
	}

	star := ternary(card.IsFavorite, styles.FavoriteText.Render("★"), styles.FaintText.Render("☆"))
	side, text := "한국어", card.Korean
	if m.flipped {
		side, text = "日本語", card.Japanese
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.FaintText.Render(side)+"  "+star,
		"",
		styles.Text.Bold(true).Render(truncate(text, cardWidth-4)),
	)
	if strings.HasPrefix(card.ID, tempIDPrefix) {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", styles.FaintText.Render("saving..."))
	}
	return face.Render(content)
}

func (m Model) renderPosition() string {
	visible := len(m.deck.Visible())
	if visible == 0 {
		return ""
	}
	pos := fmt.Sprintf("%d / %d", m.deck.CurrentIndex+1, visible)
	if total := len(m.deck.Cards); total != visible {
		pos += fmt.Sprintf("  (of %d)", total)
	}
	return pos
}

func (m Model) renderNotice() string {
	styles := m.theme.Styles()
	if m.notice.empty() {
		return ""
	}
	style := ternary(m.notice.isError, styles.DangerText, styles.SuccessText)
	return style.Width(m.width).Render(truncate(m.notice.text, m.width-8) + "  " + styles.FaintText.Render("esc"))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+strings.ToLower(h.Desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, " · "))
}
