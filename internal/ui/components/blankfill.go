package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/ui/theme"
)

// BlankFill renders a cloze template with one text input per blank.
// Tab and shift+tab cycle focus between blanks; the filled template is
// previewed above the inputs.
type BlankFill struct {
	Template content.ClozeTemplate
	Inputs   []textinput.Model
	Focused  int
	revealed bool
	perBlank []bool
}

// NewBlankFill creates inputs for every blank in the parsed template.
func NewBlankFill(template content.ClozeTemplate) BlankFill {
	inputs := make([]textinput.Model, template.Blanks())
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fmt.Sprintf("blank %d", i+1)
		ti.CharLimit = 64
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return BlankFill{Template: template, Inputs: inputs}
}

// Init focuses the first blank.
func (b BlankFill) Init() tea.Cmd {
	if len(b.Inputs) == 0 {
		return nil
	}
	return b.Inputs[0].Focus()
}

// Update handles focus cycling and forwards everything else to the
// focused input.
func (b BlankFill) Update(msg tea.Msg) (BlankFill, tea.Cmd) {
	if b.revealed || len(b.Inputs) == 0 {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return b.focus((b.Focused + 1) % len(b.Inputs))
		case "shift+tab", "up":
			return b.focus((b.Focused + len(b.Inputs) - 1) % len(b.Inputs))
		}
	}

	var cmd tea.Cmd
	b.Inputs[b.Focused], cmd = b.Inputs[b.Focused].Update(msg)
	return b, cmd
}

func (b BlankFill) focus(i int) (BlankFill, tea.Cmd) {
	b.Inputs[b.Focused].Blur()
	b.Focused = i
	return b, b.Inputs[i].Focus()
}

// Values returns the current answer per blank, in template order.
func (b BlankFill) Values() []string {
	vals := make([]string, len(b.Inputs))
	for i := range b.Inputs {
		vals[i] = b.Inputs[i].Value()
	}
	return vals
}

// Reveal locks the inputs and records the per-blank outcome.
func (b *BlankFill) Reveal(perBlank []bool) {
	b.revealed = true
	b.perBlank = perBlank
	for i := range b.Inputs {
		b.Inputs[i].Blur()
	}
}

// View renders the template preview followed by the blank inputs.
func (b BlankFill) View() string {
	var s strings.Builder

	preview := b.Template.Render(b.Values(), "____")
	s.WriteString(theme.Body.Render(preview) + "\n\n")

	for i := range b.Inputs {
		line := b.Inputs[i].View()
		if b.revealed {
			if i < len(b.perBlank) && b.perBlank[i] {
				line += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
			} else {
				line += " " + lipgloss.NewStyle().Foreground(theme.Error).Render(
					fmt.Sprintf("✗ (%s)", b.Template.Answers[i]))
			}
		}
		s.WriteString(line + "\n")
	}

	return s.String()
}
