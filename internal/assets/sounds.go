/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package assets

import "github.com/Seednode/feud/internal/sequencer"

var cueFiles = map[sequencer.Cue]string{
	sequencer.CueStart:         "intro1.mp3",
	sequencer.CueQuestionIntro: "intro.mp3",
	sequencer.CueReveal:        "ok.mp3",
	sequencer.CueError:         "error.mp3",
}

// CueFile returns the file name a cue is stored under.
func CueFile(cue sequencer.Cue) (string, bool) {
	name, ok := cueFiles[cue]

	return name, ok
}

// Sound resolves the file backing cue.
func (r *Resolver) Sound(cue sequencer.Cue) (string, bool) {
	name, ok := CueFile(cue)
	if !ok {
		return "", false
	}

	return r.Resolve(name)
}
