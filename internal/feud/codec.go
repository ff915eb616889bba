/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ReadQuestions parses a question file without touching any game.
func ReadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	return decodeQuestions(data, isYAML(path))
}

func decodeQuestions(data []byte, asYAML bool) ([]Question, error) {
	var questions []Question

	var err error
	if asYAML {
		err = yaml.Unmarshal(data, &questions)
	} else {
		err = json.Unmarshal(data, &questions)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := validate(questions); err != nil {
		return nil, err
	}

	for i := range questions {
		if questions[i].Answers == nil {
			questions[i].Answers = []Answer{}
		}
	}

	return questions, nil
}

func encodeQuestions(questions []Question, asYAML bool) ([]byte, error) {
	if questions == nil {
		questions = []Question{}
	}

	if asYAML {
		return yaml.Marshal(questions)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(questions); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteQuestions writes questions to path, replacing any existing file only
// once the new contents are fully on disk.
func WriteQuestions(path string, questions []Question) error {
	data, err := encodeQuestions(questions, isYAML(path))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".questions-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}
