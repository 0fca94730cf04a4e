package generator

import (
	"strings"

	"funfact_bot/internal/model"
)

// Sentinel marks the correct option in the model's quiz output.
const Sentinel = "*"

// ParseQuiz splits raw quiz text into a question and its options.
// The first non-blank line is the question, every later non-blank line is an
// option. An option is correct when it contains the sentinel anywhere; the
// sentinel is removed from the displayed text.
func ParseQuiz(raw string) (string, []model.Option) {
	var question string
	var options []model.Option
	seenQuestion := false

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !seenQuestion {
			question = strings.TrimSpace(line)
			seenQuestion = true
			continue
		}
		options = append(options, model.Option{
			Text:    strings.TrimSpace(strings.ReplaceAll(line, Sentinel, "")),
			Correct: strings.Contains(line, Sentinel),
		})
	}
	return question, options
}
