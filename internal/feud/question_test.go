/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestAddQuestionValidation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		text    string
		answers []AnswerInput
	}{
		{"empty text", "  ", []AnswerInput{{Text: "A", Points: 1}}},
		{"no answers", "Q", nil},
		{"only blank answers", "Q", []AnswerInput{{Text: " ", Points: 3}}},
		{"negative points", "Q", []AnswerInput{{Text: "A", Points: -1}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			err := g.AddQuestion(tc.text, tc.answers)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if g.Len() != 0 {
				t.Fatal("expected nothing appended")
			}
		})
	}
}

func TestAddQuestionSkipsBlankAnswers(t *testing.T) {
	g := New()
	err := g.AddQuestion(" Q ", []AnswerInput{
		{Text: "A", Points: 10},
		{Text: "", Points: 4},
		{Text: "B", Points: ParsePoints("x")},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got := g.Questions()[0]
	want := Question{
		Text: "Q",
		Answers: []Answer{
			{Text: "A", Points: 10},
			{Text: "B", Points: 0},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParsePoints(t *testing.T) {
	for in, want := range map[string]int{
		"10":   10,
		" 7 ":  7,
		"":     0,
		"abc":  0,
		"-3":   0,
		"2.5":  0,
		"0042": 42,
	} {
		if got := ParsePoints(in); got != want {
			t.Fatalf("ParsePoints(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"questions.json", "questions.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			g := New()
			_ = g.AddQuestion("Name a fruit", []AnswerInput{{Text: "Apple", Points: 40}, {Text: "Żurawina", Points: 12}})
			_ = g.AddQuestion("Name a colour", []AnswerInput{{Text: "Red", Points: 3}})
			_ = g.SetCurrentQuestion(0)
			g.RevealAnswer(1, Right)

			if err := g.SaveQuestions(path); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded := New()
			if err := loaded.LoadQuestions(path); err != nil {
				t.Fatalf("load: %v", err)
			}

			if !reflect.DeepEqual(g.Questions(), loaded.Questions()) {
				t.Fatalf("round trip mismatch:\n%+v\n%+v", g.Questions(), loaded.Questions())
			}
			if !loaded.Questions()[0].Answers[1].Revealed {
				t.Fatal("expected revealed flag to survive the round trip")
			}
		})
	}
}

func TestSaveQuestionsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")

	g := New()
	_ = g.AddQuestion("Pâté?", []AnswerInput{{Text: "Tak & nie", Points: 5}})
	if err := g.SaveQuestions(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	text := string(data)
	for _, want := range []string{`"question": "Pâté?"`, `"answer": "Tak & nie"`, `"points": 5`, `"revealed": false`, "\n    {"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestLoadQuestionsFailuresKeepList(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(malformed, []byte(`[{"question": "Q", "answers": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	negative := filepath.Join(dir, "negative.json")
	if err := os.WriteFile(negative, []byte(`[{"question": "Q", "answers": [{"answer": "A", "points": -4, "revealed": false}]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	wrongType := filepath.Join(dir, "object.json")
	if err := os.WriteFile(wrongType, []byte(`{"question": "Q"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		path string
		want error
	}{
		{filepath.Join(dir, "missing.json"), ErrNotFound},
		{malformed, ErrParse},
		{negative, ErrParse},
		{wrongType, ErrParse},
	} {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			g := newTestGame(t)
			_ = g.SetCurrentQuestion(1)
			before := g.Questions()

			err := g.LoadQuestions(tc.path)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !reflect.DeepEqual(before, g.Questions()) {
				t.Fatal("expected question list unchanged")
			}
			if g.Snapshot().ActiveIndex != 1 {
				t.Fatal("expected active question unchanged")
			}
		})
	}
}

func TestLoadQuestionsReturnsToIdle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	if err := os.WriteFile(path, []byte(`[{"question": "Only", "answers": [{"answer": "A", "points": 1, "revealed": true}]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	g := newTestGame(t)
	_ = g.SetCurrentQuestion(1)
	g.RevealAnswer(0, Left)

	if err := g.LoadQuestions(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	state := g.Snapshot()
	if state.Phase() != Idle {
		t.Fatal("expected idle after load")
	}
	if len(state.Questions) != 1 || !state.Questions[0].Answers[0].Revealed {
		t.Fatalf("unexpected questions %+v", state.Questions)
	}
	if state.Left.Score != 7 {
		t.Fatalf("expected scores kept, got %d", state.Left.Score)
	}
}

func TestSaveQuestionsWriteFailure(t *testing.T) {
	g := newTestGame(t)

	err := g.SaveQuestions(filepath.Join(t.TempDir(), "missing-dir", "q.json"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}
