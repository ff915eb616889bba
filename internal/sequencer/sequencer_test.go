/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package sequencer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/feud/internal/feud"
)

type pendingCall struct {
	at  time.Duration
	seq int
	fn  func()
}

// manualScheduler runs callbacks only when the test advances its clock.
type manualScheduler struct {
	now     time.Duration
	seq     int
	pending []pendingCall
}

func (m *manualScheduler) After(d time.Duration, fn func()) {
	m.pending = append(m.pending, pendingCall{at: m.now + d, seq: m.seq, fn: fn})
	m.seq++
}

func (m *manualScheduler) Advance(d time.Duration) {
	target := m.now + d

	for {
		sort.Slice(m.pending, func(i, j int) bool {
			if m.pending[i].at == m.pending[j].at {
				return m.pending[i].seq < m.pending[j].seq
			}
			return m.pending[i].at < m.pending[j].at
		})

		if len(m.pending) == 0 || m.pending[0].at > target {
			break
		}

		next := m.pending[0]
		m.pending = m.pending[1:]
		m.now = next.at
		next.fn()
	}

	m.now = target
}

type recorder struct {
	updates []Update
}

func (r *recorder) Render(u Update) {
	r.updates = append(r.updates, u)
}

type cueRecorder struct {
	cues []Cue
}

func (c *cueRecorder) Play(cue Cue) {
	c.cues = append(c.cues, cue)
}

type fixture struct {
	game  *feud.Game
	sched *manualScheduler
	rec   *recorder
	audio *cueRecorder
	seq   *Sequencer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := feud.New()
	if err := g.AddQuestion("Q1", []feud.AnswerInput{{Text: "A", Points: 10}, {Text: "B", Points: 5}}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddQuestion("Q2", []feud.AnswerInput{{Text: "Żółw", Points: 3}}); err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		game:  g,
		sched: &manualScheduler{},
		rec:   &recorder{},
		audio: &cueRecorder{},
	}
	f.seq = New(g, f.sched, f.rec, f.audio, Options{LogoURL: "/logo"})

	return f
}

func (f *fixture) element(id string) (Element, bool) {
	for _, el := range f.seq.Scene() {
		if el.ID == id {
			return el, true
		}
	}

	return Element{}, false
}

func (f *fixture) text(t *testing.T, id string) string {
	t.Helper()

	el, ok := f.element(id)
	if !ok {
		t.Fatalf("element %s not on screen", id)
	}

	return el.Text
}

func (f *fixture) selectQuestion(t *testing.T, index int) {
	t.Helper()

	if err := f.game.SetCurrentQuestion(index); err != nil {
		t.Fatal(err)
	}
	f.seq.ShowQuestion()
}

func placeholderDuration(index int) time.Duration {
	return time.Duration(len(placeholderText(index))) * PlaceholderDelay
}

func TestNewCreatesMarkers(t *testing.T) {
	f := newFixture(t)

	scene := f.seq.Scene()
	if len(scene) != 2*feud.MaxMistakes {
		t.Fatalf("expected %d markers, got %d", 2*feud.MaxMistakes, len(scene))
	}
	for _, el := range scene {
		if el.Kind != KindMarker || el.Lit {
			t.Fatalf("unexpected element %+v", el)
		}
	}
}

func TestShowQuestionFillsPlaceholdersInOrder(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 0)

	if got := f.text(t, "row-0"); got != "" {
		t.Fatalf("expected empty row at start, got %q", got)
	}

	f.sched.Advance(PlaceholderDelay * 3)
	if got := f.text(t, "row-0"); got != "1. " {
		t.Fatalf("expected %q, got %q", "1. ", got)
	}

	f.sched.Advance(placeholderDuration(0) - PlaceholderDelay*3)
	if got := f.text(t, "row-0"); got != placeholderText(0) {
		t.Fatalf("expected full placeholder, got %q", got)
	}
	if got := f.text(t, "row-1"); got != "" {
		t.Fatalf("expected second row untouched while first finishes, got %q", got)
	}

	f.sched.Advance(PlaceholderDelay + placeholderDuration(1))
	if got := f.text(t, "row-1"); got != placeholderText(1) {
		t.Fatalf("expected second placeholder, got %q", got)
	}

	if len(f.audio.cues) != 1 || f.audio.cues[0] != CueQuestionIntro {
		t.Fatalf("expected question intro cue, got %v", f.audio.cues)
	}
}

func TestShowQuestionIdle(t *testing.T) {
	f := newFixture(t)
	before := len(f.rec.updates)

	f.seq.ShowQuestion()

	if len(f.rec.updates) != before || len(f.audio.cues) != 0 {
		t.Fatal("expected nothing to happen without an active question")
	}
}

func TestRevealSupersedesPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 0)

	f.sched.Advance(5 * PlaceholderDelay)

	if !f.game.RevealAnswer(0, feud.Left) {
		t.Fatal("expected reveal")
	}
	f.seq.RevealAnswer(0)

	if got := f.text(t, "row-0"); got != "1. " {
		t.Fatalf("expected reveal to start from the prefix, got %q", got)
	}

	f.sched.Advance(5 * time.Second)

	if got, want := f.text(t, "row-0"), "1. A - 10 pts"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := f.text(t, "row-1"); got != placeholderText(1) {
		t.Fatalf("expected later rows to keep filling, got %q", got)
	}

	if f.audio.cues[len(f.audio.cues)-1] != CueReveal {
		t.Fatalf("expected reveal cue, got %v", f.audio.cues)
	}
}

func TestRevealAheadOfPlaceholderIsKept(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 0)

	f.game.RevealAnswer(1, feud.Right)
	f.seq.RevealAnswer(1)

	f.sched.Advance(5 * time.Second)

	if got, want := f.text(t, "row-1"), "2. B - 5 pts"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := f.text(t, "row-0"); got != placeholderText(0) {
		t.Fatalf("expected first placeholder, got %q", got)
	}
}

func TestRevealTypesOneCharacterAtATime(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 1)
	f.sched.Advance(time.Second)

	f.game.RevealAnswer(0, feud.Left)
	f.seq.RevealAnswer(0)

	f.sched.Advance(4 * RevealDelay)
	if got, want := f.text(t, "row-0"), "1. Żółw"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	f.sched.Advance(time.Second)
	if got, want := f.text(t, "row-0"), RowText(0, "Żółw", 3); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSwitchingQuestionsAbandonsChains(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 0)
	f.sched.Advance(3 * PlaceholderDelay)

	f.game.RevealAnswer(1, feud.Left)
	f.seq.RevealAnswer(1)

	f.selectQuestion(t, 1)
	f.sched.Advance(5 * time.Second)

	if _, ok := f.element("row-1"); ok {
		t.Fatal("expected rows of the previous question to be gone")
	}
	if got := f.text(t, "row-0"); got != placeholderText(0) {
		t.Fatalf("expected clean placeholder on new board, got %q", got)
	}
}

func TestResetScreenStopsAnimations(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 0)
	f.sched.Advance(2 * PlaceholderDelay)

	f.seq.ResetScreen()
	mark := len(f.rec.updates)

	f.sched.Advance(10 * time.Second)

	for _, u := range f.rec.updates[mark:] {
		if strings.HasPrefix(u.Element.ID, "row-") {
			t.Fatalf("orphaned chain touched %s after reset", u.Element.ID)
		}
	}
	for _, el := range f.seq.Scene() {
		if el.Region == RegionCenter {
			t.Fatalf("expected empty center, found %+v", el)
		}
	}
	if _, ok := f.element("score-left"); !ok {
		t.Fatal("expected team names after reset")
	}
}

func TestIntroBannerWipe(t *testing.T) {
	f := newFixture(t)
	f.game.RenameTeam(feud.Left, "Owls")

	f.seq.Intro()

	if got := f.text(t, "banner"); got != DefaultBanner {
		t.Fatalf("expected banner %q, got %q", DefaultBanner, got)
	}
	if el, ok := f.element("score-left"); !ok || el.Text != "Owls" {
		t.Fatalf("expected left team label, got %+v", el)
	}
	if len(f.audio.cues) != 1 || f.audio.cues[0] != CueStart {
		t.Fatalf("expected start cue, got %v", f.audio.cues)
	}

	stripe, ok := f.element("stripe-0")
	if !ok || stripe.Offset != StripeStep {
		t.Fatalf("expected first stripe moving, got %+v", stripe)
	}
	if el, _ := f.element("stripe-1"); el.Offset != 0 {
		t.Fatalf("expected second stripe waiting, got %+v", el)
	}

	perStripe := time.Duration(BannerWidth/StripeStep) * StripeDelay

	f.sched.Advance(perStripe)
	if _, ok := f.element("stripe-0"); ok {
		t.Fatal("expected first stripe removed")
	}
	if el, ok := f.element("stripe-1"); !ok || el.Offset != StripeStep {
		t.Fatalf("expected second stripe started, got %+v", el)
	}

	f.sched.Advance(perStripe * StripeCount)
	for _, el := range f.seq.Scene() {
		if el.Kind == KindStripe {
			t.Fatalf("expected all stripes gone, found %s", el.ID)
		}
	}
	if _, ok := f.element("banner"); !ok {
		t.Fatal("expected banner to stay")
	}
}

func TestIntroInterruptedByQuestion(t *testing.T) {
	f := newFixture(t)
	f.seq.Intro()
	f.sched.Advance(100 * time.Millisecond)

	f.selectQuestion(t, 0)
	mark := len(f.rec.updates)
	f.sched.Advance(10 * time.Second)

	for _, u := range f.rec.updates[mark:] {
		if u.Element.Kind == KindStripe {
			t.Fatalf("stripe chain survived teardown: %+v", u)
		}
	}
}

func TestIntroLogo(t *testing.T) {
	dir := t.TempDir()

	logo := filepath.Join(dir, "logo.png")
	fh, err := os.Create(logo)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(fh, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	_ = fh.Close()

	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name string
		path string
		logo bool
	}{
		{"decodable", logo, true},
		{"broken", broken, false},
		{"missing", filepath.Join(dir, "missing.png"), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.game.SetIntroImage(tc.path)

			f.seq.Intro()

			el, hasLogo := f.element("logo")
			_, hasBanner := f.element("banner")
			if hasLogo != tc.logo || hasBanner == tc.logo {
				t.Fatalf("logo=%v banner=%v, want logo=%v", hasLogo, hasBanner, tc.logo)
			}
			if hasLogo && el.Source != "/logo" {
				t.Fatalf("expected logo source, got %q", el.Source)
			}
		})
	}
}

func TestUpdateMarkers(t *testing.T) {
	f := newFixture(t)
	f.selectQuestion(t, 0)

	f.game.AddMistake(feud.Left)
	f.game.AddMistake(feud.Left)
	f.game.AddMistake(feud.Right)
	f.seq.UpdateMarkers()

	want := map[string]bool{
		"marker-left-0":  true,
		"marker-left-1":  true,
		"marker-left-2":  false,
		"marker-right-0": true,
		"marker-right-1": false,
		"marker-right-2": false,
	}
	for id, lit := range want {
		el, ok := f.element(id)
		if !ok || el.Lit != lit {
			t.Fatalf("%s: expected lit=%v, got %+v", id, lit, el)
		}
	}

	f.selectQuestion(t, 1)
	for id := range want {
		if el, _ := f.element(id); el.Lit {
			t.Fatalf("%s: expected markers cleared on new question", id)
		}
	}
}

func TestShowBigX(t *testing.T) {
	f := newFixture(t)

	f.seq.ShowBigX(feud.Left)
	if _, ok := f.element("bigx-left"); !ok {
		t.Fatal("expected big X")
	}

	f.sched.Advance(BigXDuration - time.Millisecond)
	if _, ok := f.element("bigx-left"); !ok {
		t.Fatal("expected big X to still be visible")
	}
	if len(f.audio.cues) != 0 {
		t.Fatalf("expected no cue yet, got %v", f.audio.cues)
	}

	f.sched.Advance(time.Millisecond)
	if _, ok := f.element("bigx-left"); ok {
		t.Fatal("expected big X hidden")
	}
	if len(f.audio.cues) != 1 || f.audio.cues[0] != CueError {
		t.Fatalf("expected error cue, got %v", f.audio.cues)
	}
}

func TestShowBigXRetrigger(t *testing.T) {
	f := newFixture(t)

	f.seq.ShowBigX(feud.Right)
	f.sched.Advance(BigXDuration / 2)
	f.seq.ShowBigX(feud.Right)
	f.sched.Advance(BigXDuration / 2)

	if _, ok := f.element("bigx-right"); !ok {
		t.Fatal("expected the second big X to still be visible")
	}
	if len(f.audio.cues) != 0 {
		t.Fatalf("expected the first timer to be abandoned, got %v", f.audio.cues)
	}

	f.sched.Advance(BigXDuration / 2)
	if _, ok := f.element("bigx-right"); ok {
		t.Fatal("expected big X hidden")
	}
	if len(f.audio.cues) != 1 {
		t.Fatalf("expected a single error cue, got %v", f.audio.cues)
	}

	f.seq.ShowBigX(feud.Side("nobody"))
	if len(f.seq.Scene()) != 2*feud.MaxMistakes {
		t.Fatal("expected unknown side to be ignored")
	}
}
