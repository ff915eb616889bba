/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package sequencer

// Cue is the name of a sound effect played by the display.
type Cue string

const (
	CueStart         Cue = "start"
	CueQuestionIntro Cue = "question_intro"
	CueReveal        Cue = "reveal"
	CueError         Cue = "error"
)

// Cues lists every cue the show uses.
var Cues = []Cue{CueStart, CueQuestionIntro, CueReveal, CueError}

// Audio plays cues without reporting back. Unavailable cues are skipped.
type Audio interface {
	Play(cue Cue)
}

type nopAudio struct{}

func (nopAudio) Play(Cue) {}
