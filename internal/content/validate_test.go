package content

import "testing"

func validChoice() ChoiceItem {
	return ChoiceItem{
		Difficulty: "Beginner",
		Question:   "Which protocol is connectionless?",
		Choices:    []string{"UDP", "TCP"},
		Answers:    []int{0},
	}
}

func TestValidateItem_Choice(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ChoiceItem)
		wantErr bool
	}{
		{"valid", func(it *ChoiceItem) {}, false},
		{"multi answer valid", func(it *ChoiceItem) { it.Answers = []int{0, 1} }, false},
		{"empty question", func(it *ChoiceItem) { it.Question = "  " }, true},
		{"one choice", func(it *ChoiceItem) { it.Choices = it.Choices[:1] }, true},
		{"no answers", func(it *ChoiceItem) { it.Answers = nil }, true},
		{"index out of range", func(it *ChoiceItem) { it.Answers = []int{2} }, true},
		{"negative index", func(it *ChoiceItem) { it.Answers = []int{-1} }, true},
		{"duplicate index", func(it *ChoiceItem) { it.Answers = []int{0, 0} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := validChoice()
			tt.mutate(&it)
			err := ValidateItem(it)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateItem_Recall(t *testing.T) {
	if err := ValidateItem(RecallCard{Front: "f", Back: "b"}); err != nil {
		t.Errorf("valid card rejected: %v", err)
	}
	if err := ValidateItem(RecallCard{Front: "", Back: "b"}); err == nil {
		t.Error("empty front accepted")
	}
	if err := ValidateItem(RecallCard{Front: "f", Back: " "}); err == nil {
		t.Error("empty back accepted")
	}
}

func TestValidateItem_Cloze(t *testing.T) {
	if err := ValidateItem(ClozeItem{Template: "answer is {{42}}"}); err != nil {
		t.Errorf("valid cloze rejected: %v", err)
	}
	if err := ValidateItem(ClozeItem{Template: "no blanks here"}); err == nil {
		t.Error("blankless template accepted")
	}
	if err := ValidateItem(ClozeItem{Template: "broken {{blank"}); err == nil {
		t.Error("unbalanced template accepted")
	}
}

func TestFilterValid(t *testing.T) {
	pool := []Item{
		validChoice(),
		ChoiceItem{Question: "bad", Choices: []string{"a", "b"}}, // no answers
		RecallCard{Front: "f", Back: "b"},
		ClozeItem{Template: "no blanks"},
	}

	valid, dropped := FilterValid(pool)
	if len(valid) != 2 {
		t.Errorf("len(valid) = %d, want 2", len(valid))
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}
