/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

import (
	"fmt"
	"strconv"
	"strings"
)

// Answer is a single board entry. Revealed is reset every time its
// question is selected.
type Answer struct {
	Text     string `json:"answer" yaml:"answer"`
	Points   int    `json:"points" yaml:"points"`
	Revealed bool   `json:"revealed" yaml:"revealed"`
}

// Question holds the prompt read by the host and its ordered answers.
type Question struct {
	Text    string   `json:"question" yaml:"question"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// AnswerInput is an answer as entered by the operator.
type AnswerInput struct {
	Text   string
	Points int
}

// ParsePoints converts operator input into a point value. Anything that
// isn't a non-negative integer counts as zero.
func ParsePoints(s string) int {
	points, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || points < 0 {
		return 0
	}

	return points
}

func (q Question) clone() Question {
	answers := make([]Answer, len(q.Answers))
	copy(answers, q.Answers)

	return Question{
		Text:    q.Text,
		Answers: answers,
	}
}

func newQuestion(text string, inputs []AnswerInput) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, fmt.Errorf("%w: question text is empty", ErrValidation)
	}

	answers := make([]Answer, 0, len(inputs))
	for _, in := range inputs {
		answerText := strings.TrimSpace(in.Text)
		if answerText == "" {
			continue
		}
		if in.Points < 0 {
			return Question{}, fmt.Errorf("%w: answer %q has negative points", ErrValidation, answerText)
		}

		answers = append(answers, Answer{
			Text:   answerText,
			Points: in.Points,
		})
	}

	if len(answers) == 0 {
		return Question{}, fmt.Errorf("%w: at least one answer is required", ErrValidation)
	}

	return Question{
		Text:    text,
		Answers: answers,
	}, nil
}

// validate checks data read from a question file.
func validate(questions []Question) error {
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrParse, i+1)
		}
		for j, a := range q.Answers {
			if a.Points < 0 {
				return fmt.Errorf("%w: question %d answer %d has negative points", ErrParse, i+1, j+1)
			}
		}
	}

	return nil
}
