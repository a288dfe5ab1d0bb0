package views

import (
	"strings"

	"novella/internal/domain"
)

// ChoicesModel is a cursor over the visible options of a choice paragraph
type ChoicesModel struct {
	options []domain.ChoiceOption
	cursor  int
}

// SetOptions replaces the options, keeping the cursor when the question is unchanged
func (m *ChoicesModel) SetOptions(options []domain.ChoiceOption) {
	if !sameOptions(m.options, options) {
		m.cursor = 0
	}
	m.options = options
	if m.cursor >= len(options) {
		m.cursor = max(len(options)-1, 0)
	}
}

func sameOptions(a, b []domain.ChoiceOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// Up moves the cursor up
func (m *ChoicesModel) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the cursor down
func (m *ChoicesModel) Down() {
	if m.cursor < len(m.options)-1 {
		m.cursor++
	}
}

// Selected returns the option under the cursor
func (m *ChoicesModel) Selected() (domain.ChoiceOption, bool) {
	if len(m.options) == 0 {
		return domain.ChoiceOption{}, false
	}
	return m.options[m.cursor], true
}

// Len returns the number of options
func (m *ChoicesModel) Len() int {
	return len(m.options)
}

// View renders the options
func (m *ChoicesModel) View() string {
	var b strings.Builder
	for i, opt := range m.options {
		b.WriteString(RenderRow(opt.Text, i == m.cursor, false))
		b.WriteString("\n")
	}
	return b.String()
}
