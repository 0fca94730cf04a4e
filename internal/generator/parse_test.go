package generator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"funfact_bot/internal/model"
)

func TestParseQuiz(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantQuestion string
		wantOptions  []model.Option
	}{
		{
			name:         "one marked option",
			raw:          "Q?\nA\n*B\nC\nD",
			wantQuestion: "Q?",
			wantOptions: []model.Option{
				{Text: "A"},
				{Text: "B", Correct: true},
				{Text: "C"},
				{Text: "D"},
			},
		},
		{
			name:         "sentinel at end and blank lines",
			raw:          "What is H2O?\n\nA) Salt\n  B) Water*  \n\nC) Sugar\r\nD) Air\n\n",
			wantQuestion: "What is H2O?",
			wantOptions: []model.Option{
				{Text: "A) Salt"},
				{Text: "B) Water", Correct: true},
				{Text: "C) Sugar"},
				{Text: "D) Air"},
			},
		},
		{
			name:         "markdown bold is stripped and counts as marked",
			raw:          "Largest ocean?\nA) Atlantic\n**B) Pacific**",
			wantQuestion: "Largest ocean?",
			wantOptions: []model.Option{
				{Text: "A) Atlantic"},
				{Text: "B) Pacific", Correct: true},
			},
		},
		{
			name:         "no option marked",
			raw:          "Q?\nA\nB",
			wantQuestion: "Q?",
			wantOptions:  []model.Option{{Text: "A"}, {Text: "B"}},
		},
		{
			name:         "several options marked",
			raw:          "Q?\n*A\n*B\nC",
			wantQuestion: "Q?",
			wantOptions: []model.Option{
				{Text: "A", Correct: true},
				{Text: "B", Correct: true},
				{Text: "C"},
			},
		},
		{
			name:         "question only",
			raw:          "Just a question?",
			wantQuestion: "Just a question?",
			wantOptions:  nil,
		},
		{
			name:         "question followed by blank lines",
			raw:          "Q?\n\n   \n",
			wantQuestion: "Q?",
			wantOptions:  nil,
		},
		{
			name:         "leading blank lines before question",
			raw:          "\n\nQ?\nA",
			wantQuestion: "Q?",
			wantOptions:  []model.Option{{Text: "A"}},
		},
		{
			name:         "empty text",
			raw:          "",
			wantQuestion: "",
			wantOptions:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, options := ParseQuiz(tt.raw)
			if diff := cmp.Diff(tt.wantQuestion, question); diff != "" {
				t.Errorf("question mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantOptions, options); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseQuizUnmarkedOptionUnchanged(t *testing.T) {
	lines := []string{"Paris", "  Paris  ", "B) The Nile river"}
	for _, line := range lines {
		_, options := ParseQuiz("Q?\n" + line)
		if len(options) != 1 {
			t.Fatalf("expected 1 option for %q, got %d", line, len(options))
		}
		want := model.Option{Text: strings.TrimSpace(line)}
		if diff := cmp.Diff(want, options[0]); diff != "" {
			t.Errorf("option for %q mismatch (-want +got):\n%s", line, diff)
		}
	}
}
