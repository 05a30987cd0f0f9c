package games

import (
	"fmt"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

const (
	// QuestionsPerGame is the number of questions in trivia and quiz battle
	QuestionsPerGame = 5
	// QuestionTime is how long a question stays open
	QuestionTime = 20 * time.Second
)

var choiceLetters = []string{"A", "B", "C", "D"}

func questionText(n int, q opponent.Question) string {
	text := fmt.Sprintf("**Question %d/%d:** %s", n, QuestionsPerGame, q.Prompt)
	for i, c := range q.Choices {
		text += fmt.Sprintf("\n%s) %s", choiceLetters[i%len(choiceLetters)], c)
	}
	return text
}

func choiceControls(q opponent.Question) [][]model.Control {
	return [][]model.Control{model.IndexControls(model.ActionChoice, choiceLetters[:len(q.Choices)], model.StylePrimary)}
}

type trivia struct {
	base
	questions []opponent.Question
	current   int
	correct   int
	tick      string
}

func newTrivia(setup Setup) Machine {
	m := &trivia{base: newBase(setup)}
	m.questions = m.engine.Questions(m.difficulty(), QuestionsPerGame)
	return m
}

func (m *trivia) Start() (Step, error) {
	return m.ask(""), nil
}

func (m *trivia) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.host()}
}

func (m *trivia) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionChoice {
		return Step{}, unexpected(a.Kind)
	}
	q := m.questions[m.current]
	choice, err := a.Int(0, len(q.Choices)-1)
	if err != nil {
		return Step{}, err
	}

	feedback := fmt.Sprintf("❌ Wrong! The answer was **%s**.", q.Correct())
	if choice == q.Answer {
		m.correct++
		feedback = "✅ Correct!"
	}
	return m.advance(feedback), nil
}

func (m *trivia) Tick(kind string) (Step, error) {
	if m.done || kind != m.tick {
		return Step{}, nil
	}
	q := m.questions[m.current]
	return m.advance(fmt.Sprintf("⏰ Time's up! The answer was **%s**.", q.Correct())), nil
}

func (m *trivia) advance(feedback string) Step {
	prev := m.tick
	m.current++
	if m.current < len(m.questions) {
		step := m.ask(feedback)
		step.Cancel = []string{prev}
		return step
	}

	summary := fmt.Sprintf("%s\nYou scored **%d/%d**.", feedback, m.correct, len(m.questions))
	result := m.newResult(summary).Set(m.host(), model.OutcomeComplete, model.Aux{Score: m.correct, Correct: m.correct})
	r := m.render(summary)
	r.Final = true
	return Step{Renders: []model.RenderInstruction{r}, Cancel: []string{prev}, Result: m.finish(result)}
}

func (m *trivia) ask(feedback string) Step {
	q := m.questions[m.current]
	text := questionText(m.current+1, q)
	if feedback != "" {
		text = feedback + "\n\n" + text
	}
	r := m.render(text)
	r.Controls = choiceControls(q)
	m.tick = m.nextTick("question")
	return Step{
		Renders:  []model.RenderInstruction{r},
		Schedule: []Tick{{Kind: m.tick, After: QuestionTime}},
	}
}
