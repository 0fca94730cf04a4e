// Package model defines the domain types used across the application.
package model

// ContentKind identifies what the generator was asked to produce.
type ContentKind string

// Supported content kinds.
const (
	KindFact ContentKind = "fact"
	KindQuiz ContentKind = "quiz"
)

// Fact is a single generated fun fact.
type Fact struct {
	Topic string
	Text  string
}

// Option is one answer of a quiz as shown to the user.
type Option struct {
	Text    string
	Correct bool
}

// Quiz is a generated multiple-choice question.
// The model is asked to mark exactly one option as correct, but zero or
// several correct options are passed through unchanged.
type Quiz struct {
	Topic    string
	Question string
	Options  []Option
}

// CallbackTag is the data carried by an inline button.
type CallbackTag string

// Supported callback tags.
const (
	TagNewFact CallbackTag = "new_fact"
	TagCorrect CallbackTag = "correct"
	TagWrong   CallbackTag = "wrong"
)

// AnswerTag returns the callback tag for a quiz option.
func AnswerTag(o Option) CallbackTag {
	if o.Correct {
		return TagCorrect
	}
	return TagWrong
}
