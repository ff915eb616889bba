/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package feud holds the rules of a presenter-driven "Family Feud" style
// quiz show: the question list, the active question, answer reveals,
// strikes and scores for the two teams.
//
// A Game is not safe for concurrent use. It is meant to be owned by a
// single event loop, with every other component issuing commands through
// that loop and reading copies returned by Snapshot.
package feud

import (
	"fmt"
	"strings"
)

// MaxMistakes is the number of strikes a team may collect per question.
const MaxMistakes = 3

// Side identifies one of the two teams.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// ParseSide accepts "left" or "right", in any case.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Left:
		return Left, true
	case Right:
		return Right, true
	default:
		return "", false
	}
}

// Team is the per-side scoreboard.
type Team struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Mistakes int    `json:"mistakes"`
}

// Phase is the coarse state of the game.
type Phase string

const (
	Idle           Phase = "idle"
	QuestionActive Phase = "question_active"
)

// State is a copy of the whole game at one point in time.
type State struct {
	Questions      []Question `json:"questions"`
	ActiveIndex    int        `json:"active_index"` // -1 when idle
	Left           Team       `json:"left"`
	Right          Team       `json:"right"`
	IntroImagePath string     `json:"intro_image_path,omitempty"`
}

// Phase reports whether a question is active in this snapshot.
func (s State) Phase() Phase {
	if s.ActiveIndex < 0 {
		return Idle
	}

	return QuestionActive
}

// Active returns the active question of this snapshot, if any.
func (s State) Active() (Question, bool) {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Questions) {
		return Question{}, false
	}

	return s.Questions[s.ActiveIndex], true
}

// Team returns the scoreboard for side.
func (s State) Team(side Side) Team {
	if side == Right {
		return s.Right
	}

	return s.Left
}

type Game struct {
	questions      []Question
	active         int
	left           Team
	right          Team
	introImagePath string
}

func New() *Game {
	return &Game{
		active: -1,
		left:   Team{Name: "Left Team"},
		right:  Team{Name: "Right Team"},
	}
}

func (g *Game) team(side Side) *Team {
	switch side {
	case Left:
		return &g.left
	case Right:
		return &g.right
	default:
		return nil
	}
}

func (g *Game) activeQuestion() *Question {
	if g.active < 0 {
		return nil
	}

	return &g.questions[g.active]
}

// AddQuestion appends a question with every answer hidden.
func (g *Game) AddQuestion(text string, answers []AnswerInput) error {
	q, err := newQuestion(text, answers)
	if err != nil {
		return err
	}

	g.questions = append(g.questions, q)

	return nil
}

// LoadQuestions replaces the question list with the contents of path and
// returns the game to Idle. On error the current list is kept.
func (g *Game) LoadQuestions(path string) error {
	questions, err := ReadQuestions(path)
	if err != nil {
		return err
	}

	g.ReplaceQuestions(questions)

	return nil
}

// ReplaceQuestions swaps in an already parsed question list and returns the
// game to Idle. Strikes belong to the old active question and are cleared;
// scores are kept.
func (g *Game) ReplaceQuestions(questions []Question) {
	g.questions = make([]Question, len(questions))
	for i, q := range questions {
		g.questions[i] = q.clone()
	}
	g.active = -1
	g.left.Mistakes = 0
	g.right.Mistakes = 0
}

// SaveQuestions writes the question list, revealed flags included.
func (g *Game) SaveQuestions(path string) error {
	return WriteQuestions(path, g.questions)
}

// Questions returns a copy of the question list.
func (g *Game) Questions() []Question {
	out := make([]Question, len(g.questions))
	for i, q := range g.questions {
		out[i] = q.clone()
	}

	return out
}

func (g *Game) Len() int {
	return len(g.questions)
}

// SetCurrentQuestion activates question index, clearing both teams' strikes
// and hiding all of its answers. Scores are left alone.
func (g *Game) SetCurrentQuestion(index int) error {
	if index < 0 || index >= len(g.questions) {
		return fmt.Errorf("%w: question %d of %d", ErrIndex, index, len(g.questions))
	}

	g.active = index
	g.left.Mistakes = 0
	g.right.Mistakes = 0

	answers := g.questions[index].Answers
	for i := range answers {
		answers[i].Revealed = false
	}

	return nil
}

// RevealAnswer uncovers an answer of the active question and credits its
// points to side. It reports whether anything changed; repeated reveals,
// bad indexes and an idle game are silently ignored.
func (g *Game) RevealAnswer(index int, side Side) bool {
	q := g.activeQuestion()
	if q == nil || index < 0 || index >= len(q.Answers) {
		return false
	}

	team := g.team(side)
	if team == nil {
		return false
	}

	answer := &q.Answers[index]
	if answer.Revealed {
		return false
	}

	answer.Revealed = true
	team.Score += answer.Points

	return true
}

// AddMistake records a strike against side. It returns false without
// changing anything when no question is active or the team already has
// MaxMistakes strikes.
func (g *Game) AddMistake(side Side) bool {
	if g.activeQuestion() == nil {
		return false
	}

	team := g.team(side)
	if team == nil || team.Mistakes >= MaxMistakes {
		return false
	}

	team.Mistakes++

	return true
}

// ResetGame zeroes scores and strikes and deactivates the current
// question. The question list is kept.
func (g *Game) ResetGame() {
	g.left.Score = 0
	g.right.Score = 0
	g.left.Mistakes = 0
	g.right.Mistakes = 0
	g.active = -1
}

// RenameTeam changes a team name. Blank names are ignored.
func (g *Game) RenameTeam(side Side, name string) bool {
	team := g.team(side)
	name = strings.TrimSpace(name)
	if team == nil || name == "" {
		return false
	}

	team.Name = name

	return true
}

// SetIntroImage sets the logo shown during the intro. An empty path clears it.
func (g *Game) SetIntroImage(path string) {
	g.introImagePath = strings.TrimSpace(path)
}

func (g *Game) IntroImagePath() string {
	return g.introImagePath
}

func (g *Game) Snapshot() State {
	return State{
		Questions:      g.Questions(),
		ActiveIndex:    g.active,
		Left:           g.left,
		Right:          g.right,
		IntroImagePath: g.introImagePath,
	}
}
