package components

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/asheem/quizdeck/internal/ui/theme"
)

// ChoiceList presents the options of a multiple-choice item. In single
// mode the cursor position is the pick; in multi mode space toggles
// picks and the exact set is submitted. After Reveal it recolors every
// option against the answer key.
type ChoiceList struct {
	Options  []string
	Answers  []int // correct indices, consulted only after Reveal
	Multi    bool
	Cursor   int
	Picked   map[int]bool
	Revealed bool
}

// NewChoiceList creates a choice list for the given prepared options.
func NewChoiceList(options []string, answers []int, multi bool) ChoiceList {
	return ChoiceList{
		Options: options,
		Answers: answers,
		Multi:   multi,
		Picked:  make(map[int]bool),
	}
}

// Update handles cursor movement and pick toggling. Submission is the
// parent screen's concern.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Revealed {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.Picked[c.Cursor] = !c.Picked[c.Cursor]
		}
	}

	return c, nil
}

// Selection returns the picked indices: the cursor position in single
// mode, the toggled set (sorted) in multi mode.
func (c ChoiceList) Selection() []int {
	if !c.Multi {
		return []int{c.Cursor}
	}
	var picks []int
	for idx, on := range c.Picked {
		if on {
			picks = append(picks, idx)
		}
	}
	sort.Ints(picks)
	return picks
}

// Reveal locks the list and records what was picked so View can show
// the answer key.
func (c *ChoiceList) Reveal() {
	if !c.Multi {
		c.Picked = map[int]bool{c.Cursor: true}
	}
	c.Revealed = true
}

// View renders the option list.
func (c ChoiceList) View() string {
	correct := make(map[int]bool, len(c.Answers))
	for _, idx := range c.Answers {
		correct[idx] = true
	}

	var s string
	for i, opt := range c.Options {
		label := fmt.Sprintf("%c", 'A'+i)

		marker := " "
		if c.Multi {
			marker = "○"
			if c.Picked[i] {
				marker = "●"
			}
		}

		prefix := "  "
		if i == c.Cursor && !c.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case c.Revealed && correct[i]:
			s += theme.Correct.Render(line) + "\n"
		case c.Revealed && c.Picked[i]:
			s += theme.Incorrect.Render(line) + "\n"
		case c.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Cursor || c.Picked[i]:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
