package games

import (
	"fmt"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

type quizBattle struct {
	base
	questions []opponent.Question
	current   int
	answers   map[model.PlayerID]int
	correct   map[model.PlayerID]int
	tick      string
}

func newQuizBattle(setup Setup) Machine {
	m := &quizBattle{
		base:    newBase(setup),
		answers: make(map[model.PlayerID]int),
		correct: make(map[model.PlayerID]int),
	}
	m.questions = m.engine.Questions(m.difficulty(), QuestionsPerGame)
	return m
}

func (m *quizBattle) humans() []model.PlayerID {
	if m.vsComputer() {
		return []model.PlayerID{m.host()}
	}
	return []model.PlayerID{m.host(), m.rival()}
}

func (m *quizBattle) Start() (Step, error) {
	return m.ask("⚔️ Quiz battle! Each correct answer scores a point."), nil
}

func (m *quizBattle) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return m.humans()
}

func (m *quizBattle) Handle(a model.PlayerAction) (Step, error) {
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
	if _, ok := m.answers[a.ActorID]; ok {
		return Step{}, model.ErrAlreadyAnswered
	}

	m.answers[a.ActorID] = choice
	for _, p := range m.humans() {
		if _, ok := m.answers[p]; !ok {
			ack := m.whisper(a.ActorID, "Answer locked in. Waiting for your opponent...")
			return Step{Renders: []model.RenderInstruction{ack}}, nil
		}
	}
	return m.reveal(""), nil
}

func (m *quizBattle) Tick(kind string) (Step, error) {
	if m.done || kind != m.tick {
		return Step{}, nil
	}
	return m.reveal("⏰ Time's up!"), nil
}

// reveal scores the current question and moves on
func (m *quizBattle) reveal(prefix string) Step {
	q := m.questions[m.current]
	if m.vsComputer() {
		m.answers[model.ComputerID] = m.engine.QuizAnswer(m.difficulty(), q)
	}

	text := fmt.Sprintf("The answer was **%s**.", q.Correct())
	if prefix != "" {
		text = prefix + " " + text
	}
	for _, p := range []model.PlayerID{m.host(), m.rival()} {
		choice, answered := m.answers[p]
		switch {
		case !answered:
			text += fmt.Sprintf("\n%s did not answer.", p.Mention())
		case choice == q.Answer:
			m.correct[p]++
			text += fmt.Sprintf("\n%s ✅", p.Mention())
		default:
			text += fmt.Sprintf("\n%s ❌", p.Mention())
		}
	}

	prev := m.tick
	m.answers = make(map[model.PlayerID]int)
	m.current++
	if m.current < len(m.questions) {
		step := m.ask(text)
		step.Cancel = []string{prev}
		if m.vsComputer() {
			step.Renders[0].Delay = ComputerDelay
		}
		return step
	}
	step := m.end(text)
	step.Cancel = []string{prev}
	return step
}

func (m *quizBattle) end(text string) Step {
	host, rival := m.host(), m.rival()
	winner := model.PlayerID("")
	switch {
	case m.correct[host] > m.correct[rival]:
		winner = host
	case m.correct[rival] > m.correct[host]:
		winner = rival
	}
	score := fmt.Sprintf("Final score: %s %d, %s %d.", host.Mention(), m.correct[host], rival.Mention(), m.correct[rival])
	summary := score + " It's a draw!"
	if winner != "" {
		summary = fmt.Sprintf("%s %s wins!", score, winner.Mention())
	}
	aux := map[model.PlayerID]model.Aux{
		host:  {Score: m.correct[host], Correct: m.correct[host]},
		rival: {Score: m.correct[rival], Correct: m.correct[rival]},
	}
	result := m.finish(m.newResult(summary).Decide([]model.PlayerID{host, rival}, winner, aux))

	r := m.render(text + "\n\n" + summary)
	r.Final = true
	if m.vsComputer() {
		r.Delay = ComputerDelay
	}
	return Step{Renders: []model.RenderInstruction{r}, Result: result}
}

func (m *quizBattle) ask(prefix string) Step {
	q := m.questions[m.current]
	r := m.render(prefix + "\n\n" + questionText(m.current+1, q))
	r.Controls = choiceControls(q)
	m.tick = m.nextTick("question")
	return Step{
		Renders:  []model.RenderInstruction{r},
		Schedule: []Tick{{Kind: m.tick, After: QuestionTime}},
	}
}
