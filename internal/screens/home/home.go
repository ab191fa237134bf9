// Package home is the launch screen: pickers for subject, deck kind,
// difficulty and deck size, plus entry points into the quiz.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/deck"
	"github.com/asheem/quizdeck/internal/router"
	"github.com/asheem/quizdeck/internal/screen"
	"github.com/asheem/quizdeck/internal/screens/overview"
	"github.com/asheem/quizdeck/internal/screens/quiz"
	"github.com/asheem/quizdeck/internal/session"
	"github.com/asheem/quizdeck/internal/ui/layout"
	"github.com/asheem/quizdeck/internal/ui/theme"
)

// picker rows, top to bottom.
const (
	rowSubject = iota
	rowMode
	rowLevel
	rowSize
	rowStart
	rowCount
)

var (
	modeLabels  = []string{"Quiz", "Recall cards", "Fill in the blanks", "Overview"}
	modeKinds   = []content.Kind{content.KindChoice, content.KindRecall, content.KindCloze}
	levelLabels = []string{content.LevelMix, "Beginner", "Intermediate", "Advanced"}
	sizeLabels  = []string{"5", "10", "20", "All"}
	sizeValues  = []int{5, 10, 20, deck.SizeAll}
)

// HomeScreen is the launch screen of the application.
type HomeScreen struct {
	lib     *content.Library
	entries []content.ManifestEntry

	row        int
	subjectIdx int
	modeIdx    int
	levelIdx   int
	sizeIdx    int

	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen over an opened content library.
func New(lib *content.Library) *HomeScreen {
	return &HomeScreen{
		lib:     lib,
		entries: lib.Subjects(),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Row"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if h.row > 0 {
			h.row--
		}
	case "down", "j":
		if h.row < rowCount-1 {
			h.row++
		}
	case "left", "h":
		h.cycle(-1)
	case "right", "l", "tab":
		h.cycle(1)
	case "enter":
		return h, h.start()
	}
	return h, nil
}

// cycle moves the active row's value by delta, wrapping.
func (h *HomeScreen) cycle(delta int) {
	wrap := func(idx, n int) int {
		return (idx + delta + n) % n
	}
	switch h.row {
	case rowSubject:
		if len(h.entries) > 0 {
			h.subjectIdx = wrap(h.subjectIdx, len(h.entries))
		}
	case rowMode:
		h.modeIdx = wrap(h.modeIdx, len(modeLabels))
	case rowLevel:
		h.levelIdx = wrap(h.levelIdx, len(levelLabels))
	case rowSize:
		h.sizeIdx = wrap(h.sizeIdx, len(sizeLabels))
	}
}

// start loads the picked subject and launches the picked mode. All
// failures surface as an inline notice, never a dead end.
func (h *HomeScreen) start() tea.Cmd {
	if len(h.entries) == 0 {
		h.notice = "No subjects available in this content library."
		return nil
	}
	entry := h.entries[h.subjectIdx]

	subject, err := h.lib.LoadSubject(entry.Slug)
	if err != nil {
		h.notice = fmt.Sprintf("Could not load %s: %v", entry.Name, err)
		return nil
	}

	h.notice = ""
	if subject.Skipped > 0 {
		h.notice = fmt.Sprintf("Skipped %d malformed item(s) in %s.", subject.Skipped, entry.Name)
	}

	// Overview is a read-only page, not a session.
	if h.modeIdx == len(modeLabels)-1 {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: overview.New(subject.Name, subject.Overview)}
		}
	}

	pool := subject.PoolFor(modeKinds[h.modeIdx])
	sess, err := session.New(pool, levelLabels[h.levelIdx], sizeValues[h.sizeIdx])
	if err != nil {
		// Empty deck: a displayable state, stay on the menu.
		h.notice = fmt.Sprintf("No %s items for that difficulty in %s. Try another level.",
			strings.ToLower(modeLabels[h.modeIdx]), entry.Name)
		return nil
	}

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(sess, subject.Name)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Quizdeck") + "\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Pick a subject and start a run") + "\n\n")

	subjectLabel := "(none)"
	if len(h.entries) > 0 {
		subjectLabel = h.entries[h.subjectIdx].Name
	}
	levelLabel := h.levelLabel()

	rows := []struct {
		name  string
		value string
	}{
		{"Subject", subjectLabel},
		{"Mode", modeLabels[h.modeIdx]},
		{"Difficulty", levelLabel},
		{"Deck size", sizeLabels[h.sizeIdx]},
		{"", "Start"},
	}

	var form strings.Builder
	for i, row := range rows {
		line := fmt.Sprintf("%-12s ◂ %s ▸", row.name, row.value)
		if row.name == "" {
			line = fmt.Sprintf("%-12s [ %s ]", "", row.value)
		}
		if i == h.row {
			form.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ "+line) + "\n\n")
		} else {
			form.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    "+line) + "\n\n")
		}
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(form.String())))

	if h.notice != "" {
		b.WriteString("\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render(h.notice))
	}

	return b.String()
}

func (h *HomeScreen) levelLabel() string {
	if levelLabels[h.levelIdx] == content.LevelMix {
		return "Mixed"
	}
	return levelLabels[h.levelIdx]
}
