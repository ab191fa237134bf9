package content

import (
	"fmt"
	"strings"
)

// ValidateItem checks the structural invariants every item must satisfy
// before it may enter a deck:
//
//   - ChoiceItem: at least two choices, a non-empty answer set, every
//     answer index in bounds, no duplicate indices.
//   - RecallCard: non-empty front and back text.
//   - ClozeItem: template parses and contains at least one blank.
//
// A nil error means the item is well formed. Callers drop failing items
// rather than aborting the whole pool.
func ValidateItem(it Item) error {
	switch v := it.(type) {
	case ChoiceItem:
		return validateChoice(v)
	case RecallCard:
		return validateRecall(v)
	case ClozeItem:
		return validateCloze(v)
	}
	return fmt.Errorf("unknown item type %T", it)
}

func validateChoice(it ChoiceItem) error {
	if strings.TrimSpace(it.Question) == "" {
		return fmt.Errorf("choice item: empty question")
	}
	if len(it.Choices) < 2 {
		return fmt.Errorf("choice item %q: need at least 2 choices, got %d", it.Question, len(it.Choices))
	}
	if len(it.Answers) == 0 {
		return fmt.Errorf("choice item %q: no correct answer", it.Question)
	}
	seen := make(map[int]bool, len(it.Answers))
	for _, idx := range it.Answers {
		if idx < 0 || idx >= len(it.Choices) {
			return fmt.Errorf("choice item %q: answer index %d out of range [0,%d)", it.Question, idx, len(it.Choices))
		}
		if seen[idx] {
			return fmt.Errorf("choice item %q: duplicate answer index %d", it.Question, idx)
		}
		seen[idx] = true
	}
	return nil
}

func validateRecall(it RecallCard) error {
	if strings.TrimSpace(it.Front) == "" {
		return fmt.Errorf("recall card: empty front")
	}
	if strings.TrimSpace(it.Back) == "" {
		return fmt.Errorf("recall card %q: empty back", it.Front)
	}
	return nil
}

func validateCloze(it ClozeItem) error {
	parsed, err := ParseCloze(it.Template)
	if err != nil {
		return fmt.Errorf("cloze item: %w", err)
	}
	if parsed.Blanks() == 0 {
		return fmt.Errorf("cloze item %q: template has no blanks", it.Template)
	}
	return nil
}

// FilterValid returns the well-formed items of pool plus the number
// dropped. Order is preserved.
func FilterValid(pool []Item) ([]Item, int) {
	valid := make([]Item, 0, len(pool))
	dropped := 0
	for _, it := range pool {
		if ValidateItem(it) != nil {
			dropped++
			continue
		}
		valid = append(valid, it)
	}
	return valid, dropped
}
