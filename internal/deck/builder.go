// Package deck turns a raw content pool into the randomized, prepared
// sequence of items served during one session.
package deck

import (
	"math/rand/v2"
	"sort"

	"github.com/asheem/quizdeck/internal/content"
)

// SizeAll requests every item the filter keeps.
const SizeAll = 0

// Deck is an immutable, ordered selection from a pool. Rebuilding for a
// retry produces a new Deck with fresh randomness; a Deck is never
// mutated after Build returns.
type Deck struct {
	items []content.Item

	// Level is the difficulty filter the deck was built with.
	Level string

	// Dropped counts malformed items excluded during the build.
	Dropped int
}

// Len returns the number of items in the deck.
func (d Deck) Len() int { return len(d.items) }

// Empty reports whether filtering produced no items. An empty deck is a
// displayable state, not an error.
func (d Deck) Empty() bool { return len(d.items) == 0 }

// Item returns the prepared item at position i.
func (d Deck) Item(i int) content.Item { return d.items[i] }

// Items returns a copy of the prepared item sequence.
func (d Deck) Items() []content.Item {
	out := make([]content.Item, len(d.items))
	copy(out, d.items)
	return out
}

// Truncate returns a deck holding only the first n items. Used when a
// session finishes early so the summary reflects what was answered.
func (d Deck) Truncate(n int) Deck {
	if n > len(d.items) {
		n = len(d.items)
	}
	return Deck{items: d.items[:n], Level: d.Level, Dropped: d.Dropped}
}

// Build filters pool by level, shuffles it, clamps to size and prepares
// each selected item. level may be content.LevelMix (or LevelNone for
// unclassified pools) to disable filtering. size is SizeAll or a
// positive count clamped to [1, len(filtered)].
//
// Malformed items are excluded from the filtered pool and counted in
// Deck.Dropped. An empty result is returned as an empty deck.
func Build(pool []content.Item, level string, size int) Deck {
	valid, dropped := content.FilterValid(pool)

	filtered := valid
	if level != content.LevelMix && level != content.LevelNone {
		filtered = make([]content.Item, 0, len(valid))
		for _, it := range valid {
			if it.Level() == level {
				filtered = append(filtered, it)
			}
		}
	}

	if len(filtered) == 0 {
		return Deck{Level: level, Dropped: dropped}
	}

	n := len(filtered)
	if size != SizeAll {
		n = size
		if n < 1 {
			n = 1
		}
		if n > len(filtered) {
			n = len(filtered)
		}
	}

	shuffled := make([]content.Item, len(filtered))
	copy(shuffled, filtered)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	items := make([]content.Item, 0, n)
	for _, it := range shuffled[:n] {
		items = append(items, prepare(it))
	}

	return Deck{items: items, Level: level, Dropped: dropped}
}

// prepare readies one item for display. Choice items get their options
// re-shuffled with the answer set remapped; other kinds pass through.
func prepare(it content.Item) content.Item {
	choice, ok := it.(content.ChoiceItem)
	if !ok {
		return it
	}
	return shuffleChoices(choice, rand.Perm(len(choice.Choices)))
}

// shuffleChoices permutes the options of a choice item and recomputes
// the answer set. Correctness is carried by original position through
// the permutation, not rediscovered by option text, so duplicate option
// strings cannot misattribute the right answer. perm maps display
// position to original index.
func shuffleChoices(it content.ChoiceItem, perm []int) content.ChoiceItem {
	wasCorrect := make(map[int]bool, len(it.Answers))
	for _, idx := range it.Answers {
		wasCorrect[idx] = true
	}

	choices := make([]string, len(it.Choices))
	var answers []int
	for display, original := range perm {
		choices[display] = it.Choices[original]
		if wasCorrect[original] {
			answers = append(answers, display)
		}
	}
	sort.Ints(answers)

	prepared := it
	prepared.Choices = choices
	prepared.Answers = answers
	return prepared
}
