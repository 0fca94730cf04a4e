// Package generator builds fact and quiz prompts, calls the completion API
// and turns the reply into domain content.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"funfact_bot/internal/llm"
	"funfact_bot/internal/model"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const (
	factSystemPrompt = "You are a Fun AI Bot. " +
		"Give short, interesting, and surprising fun facts about science, nature, or the world. " +
		"Keep it under 6 sentences."
	factUserPrompt = "Give me one fun fact about %s."

	quizSystemPrompt = "You are a quiz generator bot. " +
		"Create a short multiple-choice question (quiz) with 4 options (A, B, C, D). " +
		"Put the question on the first line and each option on its own line. " +
		"Mark the correct one with a star (" + Sentinel + ") but don't say which one it is explicitly. " +
		"Make it educational and fun, 1–2 sentences max."
	quizUserPrompt = "Create a quiz about %s."
)

var (
	// ErrNoChoices is returned when the completion API answers without choices.
	ErrNoChoices = errors.New("no choices in completion response")
	// ErrNoTopics is returned when the topic pool is empty.
	ErrNoTopics = errors.New("empty topic pool")
)

// Error reports a failed generation. It wraps the underlying cause.
type Error struct {
	Kind  model.ContentKind
	Topic string
	Err   error
}

func (e *Error) Error() string {
	if e.Topic == "" {
		return fmt.Sprintf("generate %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("generate %s about %q: %v", e.Kind, e.Topic, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Completer is the completion API collaborator.
type Completer interface {
	Complete(ctx context.Context, model string, messages []llm.Message) ([]string, error)
}

// Generator produces facts and quizzes. It keeps no state between calls.
type Generator struct {
	completer Completer
	model     string
	pick      func(n int) int
}

// New creates a Generator for the given model. An empty model selects DefaultModel.
func New(c Completer, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		completer: c,
		model:     model,
		pick:      rand.Intn,
	}
}

// GenerateFact picks a topic from the pool and asks the model for one fact about it.
func (g *Generator) GenerateFact(ctx context.Context, topics []string) (model.Fact, error) {
	topic, text, err := g.generate(ctx, model.KindFact, topics, factSystemPrompt, factUserPrompt)
	if err != nil {
		return model.Fact{}, err
	}
	return model.Fact{Topic: topic, Text: text}, nil
}

// GenerateQuiz picks a topic from the pool and asks the model for a
// multiple-choice question about it.
func (g *Generator) GenerateQuiz(ctx context.Context, topics []string) (model.Quiz, error) {
	topic, text, err := g.generate(ctx, model.KindQuiz, topics, quizSystemPrompt, quizUserPrompt)
	if err != nil {
		return model.Quiz{}, err
	}
	question, options := ParseQuiz(text)
	return model.Quiz{Topic: topic, Question: question, Options: options}, nil
}

func (g *Generator) generate(ctx context.Context, kind model.ContentKind, topics []string, system, userFormat string) (string, string, error) {
	if len(topics) == 0 {
		return "", "", &Error{Kind: kind, Err: ErrNoTopics}
	}
	topic := topics[g.pick(len(topics))]

	choices, err := g.completer.Complete(ctx, g.model, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: fmt.Sprintf(userFormat, topic)},
	})
	if err != nil {
		return topic, "", &Error{Kind: kind, Topic: topic, Err: err}
	}
	if len(choices) == 0 {
		return topic, "", &Error{Kind: kind, Topic: topic, Err: ErrNoChoices}
	}
	return topic, choices[0], nil
}
