/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package sequencer turns game events into timed display updates.
//
// Every animation is a chain of steps owned by a single element. A chain
// reschedules itself through a Scheduler and looks at its element before
// each step, so tearing an element down is all it takes to stop the chains
// attached to it.
//
// A Sequencer is not safe for concurrent use: all methods, and every
// callback handed to the Scheduler, must run on the same event loop.
package sequencer

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/Seednode/feud/internal/feud"
)

const (
	PlaceholderDelay = 20 * time.Millisecond
	RevealDelay      = 10 * time.Millisecond
	StripeDelay      = 30 * time.Millisecond
	BigXDuration     = 2 * time.Second

	PlaceholderWidth = 20
	StripeCount      = 20
	StripeStep       = 80
	BannerWidth      = 800

	DefaultBanner = "FAMILIADA"
)

type Options struct {
	// Banner is the intro text used when no logo is available.
	Banner string

	// LogoURL is where displays can fetch the intro image.
	LogoURL string

	Logf func(format string, args ...any)
}

type Sequencer struct {
	game  *feud.Game
	sched Scheduler
	audio Audio
	scene *scene
	opts  Options
}

// New returns a Sequencer reading from game. The mistake markers for both
// teams are created immediately, unlit.
func New(game *feud.Game, sched Scheduler, r Renderer, audio Audio, opts Options) *Sequencer {
	if audio == nil {
		audio = nopAudio{}
	}
	if opts.Banner == "" {
		opts.Banner = DefaultBanner
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}

	s := &Sequencer{
		game:  game,
		sched: sched,
		audio: audio,
		scene: newScene(r),
		opts:  opts,
	}

	for _, region := range []Region{RegionLeft, RegionRight} {
		for i := 0; i < feud.MaxMistakes; i++ {
			s.scene.create(Element{
				ID:     markerID(region, i),
				Kind:   KindMarker,
				Region: region,
				Index:  i,
				Text:   "X",
			})
		}
	}

	return s
}

// Scene returns every live element in creation order.
func (s *Sequencer) Scene() []Element {
	return s.scene.elements()
}

func regionFor(side feud.Side) (Region, bool) {
	switch side {
	case feud.Left:
		return RegionLeft, true
	case feud.Right:
		return RegionRight, true
	default:
		return "", false
	}
}

// Intro shows the logo, or the banner with its stripe wipe, followed by the
// team names.
func (s *Sequencer) Intro() {
	s.scene.clear(RegionCenter)

	if path := s.game.IntroImagePath(); path != "" && s.logoUsable(path) {
		s.scene.create(Element{
			ID:     "logo",
			Kind:   KindLogo,
			Region: RegionCenter,
			Source: s.opts.LogoURL,
		})
	} else {
		s.banner()
	}

	s.audio.Play(CueStart)
	s.showTeamNames()
}

func (s *Sequencer) logoUsable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		s.opts.Logf("DISPLAY: Intro image unavailable, using banner: %v", err)

		return false
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		s.opts.Logf("DISPLAY: Intro image %q could not be decoded, using banner: %v", path, err)

		return false
	}

	return true
}

func (s *Sequencer) banner() {
	s.scene.create(Element{
		ID:     "banner",
		Kind:   KindBanner,
		Region: RegionCenter,
		Text:   s.opts.Banner,
		Width:  BannerWidth,
	})

	stripes := make([]*node, StripeCount)
	for i := range stripes {
		stripes[i] = s.scene.create(Element{
			ID:     stripeID(i),
			Kind:   KindStripe,
			Region: RegionCenter,
			Index:  i,
			Width:  BannerWidth,
		})
	}

	s.wipe(stripes, 0)
}

// wipe slides stripes[i] off the banner, then moves on to the next one.
func (s *Sequencer) wipe(stripes []*node, i int) {
	if i >= len(stripes) {
		return
	}

	n := stripes[i]
	steps := (BannerWidth + StripeStep - 1) / StripeStep

	s.animate(n, StripeDelay, steps, func(step int) {
		s.scene.update(n, func(el *Element) {
			el.Offset = min((step+1)*StripeStep, BannerWidth)
		})
	}, func() {
		s.scene.destroy(n)
		s.wipe(stripes, i+1)
	})
}

// ShowQuestion lays out one row per answer of the active question and
// fills in their placeholders in order.
func (s *Sequencer) ShowQuestion() {
	q, ok := s.game.Snapshot().Active()
	if !ok {
		return
	}

	s.scene.clear(RegionCenter)

	rows := make([]*node, len(q.Answers))
	for i, a := range q.Answers {
		rows[i] = s.scene.create(Element{
			ID:     rowID(i),
			Kind:   KindRow,
			Region: RegionCenter,
			Index:  i,
		})

		if a.Revealed {
			rows[i].revealed = true
			s.scene.update(rows[i], func(el *Element) {
				el.Text = RowText(i, a.Text, a.Points)
			})
		}
	}

	s.fillPlaceholders(rows, 0)
	s.UpdateMarkers()
	s.audio.Play(CueQuestionIntro)
}

func (s *Sequencer) fillPlaceholders(rows []*node, i int) {
	for i < len(rows) && rows[i].revealed {
		i++
	}
	if i >= len(rows) {
		return
	}

	n := rows[i]
	text := chars(placeholderText(i))

	s.animate(n, PlaceholderDelay, len(text)+1, func(step int) {
		s.scene.update(n, func(el *Element) {
			el.Text = string(text[:step])
		})
	}, func() {
		s.fillPlaceholders(rows, i+1)
	})
}

// RevealAnswer types out the answer at index on its row, taking the row
// over from any placeholder animation still running on it.
func (s *Sequencer) RevealAnswer(index int) {
	defer s.UpdateMarkers()

	q, ok := s.game.Snapshot().Active()
	if !ok || index < 0 || index >= len(q.Answers) {
		return
	}

	s.audio.Play(CueReveal)

	n := s.scene.get(rowID(index))
	if n == nil {
		return
	}
	n.revealed = true

	answer := q.Answers[index]
	prefix := revealPrefix(index)
	text := chars(revealText(answer.Text, answer.Points))

	s.animate(n, RevealDelay, len(text)+1, func(step int) {
		s.scene.update(n, func(el *Element) {
			el.Text = prefix + string(text[:step])
		})
	}, nil)
}

// UpdateMarkers redraws both teams' strike markers and scores.
func (s *Sequencer) UpdateMarkers() {
	state := s.game.Snapshot()

	for _, side := range []feud.Side{feud.Left, feud.Right} {
		region, _ := regionFor(side)
		mistakes := state.Team(side).Mistakes

		for i := 0; i < feud.MaxMistakes; i++ {
			lit := i < mistakes
			s.scene.update(s.scene.get(markerID(region, i)), func(el *Element) {
				el.Lit = lit
			})
		}
	}

	s.UpdateScores()
}

// UpdateScores refreshes the team labels if they are on screen.
func (s *Sequencer) UpdateScores() {
	state := s.game.Snapshot()

	for _, side := range []feud.Side{feud.Left, feud.Right} {
		region, _ := regionFor(side)
		team := state.Team(side)

		s.scene.update(s.scene.get(scoreID(region)), func(el *Element) {
			el.Text = team.Name
			el.Score = team.Score
		})
	}
}

func (s *Sequencer) showTeamNames() {
	for _, region := range []Region{RegionLeft, RegionRight} {
		if s.scene.get(scoreID(region)) != nil {
			continue
		}

		s.scene.create(Element{
			ID:     scoreID(region),
			Kind:   KindScore,
			Region: region,
		})
	}

	s.UpdateScores()
}

// ShowBigX covers side with a large X for BigXDuration, then plays the
// error cue. Calling it again before then restarts the timer.
func (s *Sequencer) ShowBigX(side feud.Side) {
	region, ok := regionFor(side)
	if !ok {
		return
	}

	n := s.scene.create(Element{
		ID:     bigXID(region),
		Kind:   KindBigX,
		Region: region,
		Text:   "X",
	})

	s.animate(n, BigXDuration, 1, func(int) {}, func() {
		s.scene.destroy(n)
		s.audio.Play(CueError)
	})
}

// ResetScreen empties the center of the display and shows the teams.
func (s *Sequencer) ResetScreen() {
	s.scene.clear(RegionCenter)
	s.showTeamNames()
	s.UpdateMarkers()
}
