// Feud
//
// A presenter-driven "Family Feud" style quiz show with two screens: a host
// control panel and a public display, both served as web pages.
//
// Features:
// - WebSockets per game ID: /feud/:gameid/ws?role=admin|display
// - First admin connection to a game becomes the host; later admins only watch
// - Host picks questions, reveals answers for either team, records strikes
// - Display animates the board: intro wipe, placeholders, typed reveals, big X
// - All game state and animation steps run on one goroutine per game
// - Questions loaded from / saved to JSON or YAML files on the server
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - QR code of the display URL, backed by go-qrcode

package main

import (
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/feud/internal/assets"
	"github.com/Seednode/feud/internal/feud"
	"github.com/Seednode/feud/internal/history"
	"github.com/Seednode/feud/internal/sequencer"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

type role string

const (
	roleAdmin   role = "admin"
	roleDisplay role = "display"
)

// points accepts either a JSON number or the raw text of a form field.
type points string

func (p *points) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = points(s)
		return nil
	}

	*p = points(strings.TrimSpace(string(b)))

	return nil
}

type AnswerEntry struct {
	Answer string `json:"answer"`
	Points points `json:"points"`
}

// Messages coming from the control panel
type ClientMessage struct {
	Type     string        `json:"type"`               // see handleCommand
	Index    *int          `json:"index,omitempty"`    // select_question / reveal
	Team     string        `json:"team,omitempty"`     // reveal / mistake / big_x
	Left     string        `json:"left,omitempty"`     // rename_teams
	Right    string        `json:"right,omitempty"`    // rename_teams
	Question string        `json:"question,omitempty"` // add_question
	Answers  []AnswerEntry `json:"answers,omitempty"`  // add_question
	Path     string        `json:"path,omitempty"`     // load_questions / save_questions / set_intro_image
}

// SessionInfoMessage is sent immediately on connect so the client knows
// what role this cookie has.
type SessionInfoMessage struct {
	Type        string `json:"type"` // "session_info"
	Role        role   `json:"role"`
	IsModerator bool   `json:"is_moderator"`
	GameID      string `json:"game_id"`
}

// NoticeMessage reports the outcome of a command to the host.
type NoticeMessage struct {
	Type    string `json:"type"`  // "notice"
	Level   string `json:"level"` // "info" or "error"
	Message string `json:"message"`
}

type ActiveQuestion struct {
	Question string        `json:"question"`
	Answers  []feud.Answer `json:"answers"`
}

// AdminStateMessage is the full control panel view.
type AdminStateMessage struct {
	Type        string          `json:"type"` // "admin_state"
	Questions   []string        `json:"questions"`
	ActiveIndex int             `json:"active_index"`
	Active      *ActiveQuestion `json:"active,omitempty"`
	Left        feud.Team       `json:"left"`
	Right       feud.Team       `json:"right"`
	IntroImage  string          `json:"intro_image,omitempty"`
	MaxMistakes int             `json:"max_mistakes"`
	CreatedAt   time.Time       `json:"created_at"`
	LastActive  time.Time       `json:"last_active"`
}

// SceneMessage carries every element currently on the display.
type SceneMessage struct {
	Type     string              `json:"type"` // "scene"
	Elements []sequencer.Element `json:"elements"`
}

// ElementMessage carries a single display change.
type ElementMessage struct {
	Type string `json:"type"` // "element"
	sequencer.Update
}

// CueMessage asks displays to play a sound.
type CueMessage struct {
	Type string `json:"type"` // "cue"
	Name string `json:"name"`
	Src  string `json:"src"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	role     role
}

type command struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	cfg     *Config
	clients map[*Client]bool

	game     *feud.Game
	seq      *sequencer.Sequencer
	resolver *assets.Resolver
	history  *history.Store

	register chan *Client
	unreg    chan *Client
	commands chan command
	tasks    chan func()
	reload   chan []feud.Question
	done     chan struct{}
	stop     sync.Once

	mu sync.RWMutex

	createdAt         time.Time
	lastActive        time.Time
	moderatorPlayerID string // cookie/playerID of the host
}

func newHub(cfg *Config, gameID string, questions []feud.Question, resolver *assets.Resolver, store *history.Store) *Hub {
	now := time.Now()

	h := &Hub{
		id:         gameID,
		cfg:        cfg,
		clients:    make(map[*Client]bool),
		game:       feud.New(),
		resolver:   resolver,
		history:    store,
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command),
		tasks:      make(chan func()),
		reload:     make(chan []feud.Question),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}

	if questions != nil {
		h.game.ReplaceQuestions(questions)
	} else {
		feud.Seed(h.game)
	}
	h.game.SetIntroImage(cfg.introImage)

	h.seq = sequencer.New(
		h.game,
		sequencer.NewTimerScheduler(h.post),
		displayRenderer{h},
		displayAudio{h},
		sequencer.Options{
			Banner:  cfg.banner,
			LogoURL: cfg.prefix + "/feud/" + gameID + "/intro",
			Logf: func(format string, args ...any) {
				logf(cfg, format, args...)
			},
		},
	)

	return h
}

// post hands fn to the event loop. It is called from timer goroutines.
func (h *Hub) post(fn func()) {
	select {
	case h.tasks <- fn:
	case <-h.done:
	}
}

// do runs fn on the event loop and waits for it to finish. It reports
// false if the hub has already shut down.
func (h *Hub) do(fn func()) bool {
	finished := make(chan struct{})

	select {
	case h.tasks <- func() {
		fn()
		close(finished)
	}:
	case <-h.done:
		return false
	}

	select {
	case <-finished:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) run() {
	for {
		// A closed hub must not pick up late registrations
		if h.closed() {
			return
		}

		select {
		case c := <-h.register:
			h.mu.Lock()

			// closeAll may have emptied clients while this case was chosen
			if h.closed() {
				close(c.send)
				_ = c.conn.Close()
				h.mu.Unlock()

				return
			}

			h.lastActive = time.Now()

			// First admin connection becomes the host
			if c.role == roleAdmin && h.moderatorPlayerID == "" {
				h.moderatorPlayerID = c.playerID
			}

			h.clients[c] = true

			c.send <- SessionInfoMessage{
				Type:        "session_info",
				Role:        c.role,
				IsModerator: c.role == roleAdmin && c.playerID == h.moderatorPlayerID,
				GameID:      h.id,
			}

			if c.role == roleDisplay {
				c.send <- SceneMessage{
					Type:     "scene",
					Elements: h.seq.Scene(),
				}
			} else {
				h.sendToLocked(c, h.adminStateLocked())
			}

			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cmd)

		case fn := <-h.tasks:
			h.mu.Lock()
			fn()
			h.mu.Unlock()

		case questions := <-h.reload:
			h.handleReload(questions)

		case <-h.done:
			return
		}
	}
}

func (h *Hub) sendToLocked(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(to role, msg any) {
	for client := range h.clients {
		if client.role != to {
			continue
		}

		h.sendToLocked(client, msg)
	}
}

func (h *Hub) noticeLocked(c *Client, level, text string) {
	if c == nil {
		h.broadcastLocked(roleAdmin, NoticeMessage{Type: "notice", Level: level, Message: text})

		return
	}

	if _, ok := h.clients[c]; !ok {
		return
	}

	h.sendToLocked(c, NoticeMessage{
		Type:    "notice",
		Level:   level,
		Message: text,
	})
}

func (h *Hub) adminStateLocked() AdminStateMessage {
	state := h.game.Snapshot()

	titles := make([]string, len(state.Questions))
	for i, q := range state.Questions {
		titles[i] = q.Text
	}

	msg := AdminStateMessage{
		Type:        "admin_state",
		Questions:   titles,
		ActiveIndex: state.ActiveIndex,
		Left:        state.Left,
		Right:       state.Right,
		IntroImage:  introName(state.IntroImagePath),
		MaxMistakes: feud.MaxMistakes,
		CreatedAt:   h.createdAt,
		LastActive:  h.lastActive,
	}

	if q, ok := state.Active(); ok {
		msg.Active = &ActiveQuestion{
			Question: q.Text,
			Answers:  q.Answers,
		}
	}

	return msg
}

// introName hides where the intro image lives on the server.
func introName(path string) string {
	if path == "" {
		return ""
	}

	return filepath.Base(path)
}

func (h *Hub) broadcastAdminStateLocked() {
	h.broadcastLocked(roleAdmin, h.adminStateLocked())
}

// noticeFor turns a question store error into text for the host.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, assets.ErrBadName):
		return "Use a plain file name inside the data directory: " + err.Error()
	case errors.Is(err, feud.ErrValidation):
		return "A question needs text and at least one answer: " + err.Error()
	case errors.Is(err, feud.ErrNotFound):
		return "The question file does not exist: " + err.Error()
	case errors.Is(err, feud.ErrParse):
		return "The question file could not be read: " + err.Error()
	case errors.Is(err, feud.ErrIO):
		return "The questions could not be saved: " + err.Error()
	case errors.Is(err, feud.ErrIndex):
		return "No such question: " + err.Error()
	default:
		return err.Error()
	}
}

func sideFrom(c *Client, h *Hub, team string) (feud.Side, bool) {
	side, ok := feud.ParseSide(team)
	if !ok {
		h.noticeLocked(c, "error", "Unknown team "+`"`+team+`"`+".")
	}

	return side, ok
}

// handleCommand applies a host command to the game and the display.
func (h *Hub) handleCommand(cmd command) {
	c := cmd.client
	msg := cmd.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	// Only the host may issue commands
	if h.moderatorPlayerID == "" || c.playerID != h.moderatorPlayerID {
		h.noticeLocked(c, "error", "not_moderator: another control panel is running this game.")
		return
	}

	switch msg.Type {
	case "start":
		h.seq.Intro()
		logf(h.cfg, "GAMES: Intro started in %s", h.id)

	case "stop":
		h.recordResultLocked()
		h.game.ResetGame()
		h.seq.ResetScreen()
		logf(h.cfg, "GAMES: Game %s reset", h.id)

	case "rename_teams":
		h.game.RenameTeam(feud.Left, msg.Left)
		h.game.RenameTeam(feud.Right, msg.Right)
		h.seq.UpdateScores()

	case "select_question":
		if msg.Index == nil {
			return
		}
		if err := h.game.SetCurrentQuestion(*msg.Index); err != nil {
			h.noticeLocked(c, "error", noticeFor(err))
			return
		}
		h.seq.ShowQuestion()
		logf(h.cfg, "GAMES: Question %d selected in %s", *msg.Index+1, h.id)

	case "reveal":
		side, ok := sideFrom(c, h, msg.Team)
		if !ok || msg.Index == nil {
			return
		}
		if h.game.RevealAnswer(*msg.Index, side) {
			h.seq.RevealAnswer(*msg.Index)
			logf(h.cfg, "GAMES: Answer %d revealed for %s team in %s", *msg.Index+1, side, h.id)
		}

	case "mistake":
		side, ok := sideFrom(c, h, msg.Team)
		if !ok {
			return
		}
		if _, active := h.game.Snapshot().Active(); !active {
			h.noticeLocked(c, "error", "Select a question from the list first.")
			return
		}
		if h.game.AddMistake(side) {
			displayAudio{h}.Play(sequencer.CueError)
		} else {
			h.noticeLocked(c, "error", feud.ErrAdmissionDenied.Error()+": the "+string(side)+" team already has the maximum number of mistakes.")
		}
		h.seq.UpdateMarkers()

	case "big_x":
		side, ok := sideFrom(c, h, msg.Team)
		if !ok {
			return
		}
		h.seq.ShowBigX(side)

	case "add_question":
		inputs := make([]feud.AnswerInput, 0, len(msg.Answers))
		for _, a := range msg.Answers {
			inputs = append(inputs, feud.AnswerInput{
				Text:   a.Answer,
				Points: feud.ParsePoints(string(a.Points)),
			})
		}
		if err := h.game.AddQuestion(msg.Question, inputs); err != nil {
			h.noticeLocked(c, "error", noticeFor(err))
			return
		}
		logf(h.cfg, "GAMES: Question %q added to %s", strings.TrimSpace(msg.Question), h.id)

	case "load_questions":
		path, err := assets.Within(h.cfg.dataDir, msg.Path)
		if err == nil {
			err = h.game.LoadQuestions(path)
		}
		if err != nil {
			logf(h.cfg, "GAMES: Loading questions from %q failed in %s: %v", msg.Path, h.id, err)
			h.noticeLocked(c, "error", noticeFor(err))
			return
		}
		h.seq.ResetScreen()
		h.noticeLocked(c, "info", "Questions loaded.")
		logf(h.cfg, "GAMES: Loaded %d questions from %q into %s", h.game.Len(), path, h.id)

	case "save_questions":
		path, err := assets.Within(h.cfg.dataDir, msg.Path)
		if err == nil {
			err = h.game.SaveQuestions(path)
		}
		if err != nil {
			logf(h.cfg, "GAMES: Saving questions to %q failed in %s: %v", msg.Path, h.id, err)
			h.noticeLocked(c, "error", noticeFor(err))
			return
		}
		h.noticeLocked(c, "info", "Questions saved.")
		logf(h.cfg, "GAMES: Saved %d questions from %s to %q", h.game.Len(), h.id, path)

	case "set_intro_image":
		if strings.TrimSpace(msg.Path) == "" {
			h.game.SetIntroImage("")
			break
		}
		path, err := assets.Within(h.cfg.dataDir, msg.Path)
		if err != nil {
			logf(h.cfg, "GAMES: Refused intro image %q in %s: %v", msg.Path, h.id, err)
			h.noticeLocked(c, "error", noticeFor(err))
			return
		}
		h.game.SetIntroImage(path)

	default:
		return
	}

	h.broadcastAdminStateLocked()
}

// handleReload applies a changed question file. Games in the middle of a
// question keep their list; the host is told instead.
func (h *Hub) handleReload(questions []feud.Question) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, active := h.game.Snapshot().Active(); active {
		h.noticeLocked(nil, "info", "The question file changed on disk. Load it again to apply the changes.")
		return
	}

	h.game.ReplaceQuestions(questions)
	h.noticeLocked(nil, "info", "Questions reloaded from disk.")
	h.broadcastAdminStateLocked()
}

func (h *Hub) recordResultLocked() {
	if h.history == nil {
		return
	}

	state := h.game.Snapshot()
	if state.Left.Score == 0 && state.Right.Score == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := h.history.Record(ctx, history.Result{
		GameID:     h.id,
		LeftName:   state.Left.Name,
		LeftScore:  state.Left.Score,
		RightName:  state.Right.Name,
		RightScore: state.Right.Score,
	})
	if err != nil {
		logf(h.cfg, "GAMES: Recording result of %s failed: %v", h.id, err)
	}
}

func (h *Hub) closed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// closeAll disconnects all clients of this hub and stops its loop (used by reaper).
func (h *Hub) closeAll() {
	h.stop.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "feud_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each /feud/$gameid
// is its own isolated show.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration

	questions []feud.Question // nil means sample questions
	resolver  *assets.Resolver
	history   *history.Store
}

func newGameManager(idleTimeout time.Duration, questions []feud.Question, resolver *assets.Resolver, store *history.Store) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
		questions:   questions,
		resolver:    resolver,
		history:     store,
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(cfg, gameID, gm.questions, gm.resolver, gm.history)
	gm.hubs[gameID] = hub
	go hub.run()
	return hub
}

func (gm *GameManager) lookupHub(gameID string) (*Hub, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	hub, ok := gm.hubs[gameID]
	return hub, ok
}

// reloadQuestions replaces the questions used for new games and offers
// them to every running game.
func (gm *GameManager) reloadQuestions(questions []feud.Question) {
	gm.mu.Lock()
	gm.questions = questions
	hubs := make([]*Hub, 0, len(gm.hubs))
	for _, hub := range gm.hubs {
		hubs = append(hubs, hub)
	}
	gm.mu.Unlock()

	for _, hub := range hubs {
		select {
		case hub.reload <- questions:
		case <-hub.done:
		}
	}
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		clientRole := roleAdmin
		if r.URL.Query().Get("role") == string(roleDisplay) {
			clientRole = roleDisplay
		}

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 256),
			playerID: playerID,
			role:     clientRole,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		logf(cfg, "GAMES: %s connected to %s from %s", clientRole, gameID, realIP(r))

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if c.role != roleAdmin {
			continue
		}

		select {
		case h.commands <- command{client: c, msg: msg}:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// displayRenderer forwards sequencer output to every display. It is only
// called from the hub's loop, with h.mu held.
type displayRenderer struct {
	h *Hub
}

func (d displayRenderer) Render(u sequencer.Update) {
	d.h.broadcastLocked(roleDisplay, ElementMessage{
		Type:   "element",
		Update: u,
	})
}

// displayAudio tells displays to play a cue, if a sound file backs it.
type displayAudio struct {
	h *Hub
}

func (d displayAudio) Play(cue sequencer.Cue) {
	path, ok := d.h.resolver.Sound(cue)
	if !ok {
		logf(d.h.cfg, "AUDIO: No sound for cue %q, skipping", cue)
		return
	}

	d.h.broadcastLocked(roleDisplay, CueMessage{
		Type: "cue",
		Name: string(cue),
		Src:  d.h.cfg.prefix + "/sounds/" + filepath.Base(path),
	})
}

// QR handler: generates a PNG QR code for the game's display URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; swap the trailing "/qr" for the display page.
	path := strings.TrimSuffix(r.URL.Path, "/qr") + "/display"

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// serveIntroImage sends the logo configured for a game, if there is one.
func serveIntroImage(cfg *Config, gm *GameManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		hub, ok := gm.lookupHub(ps.ByName("gameid"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		var path string
		if !hub.do(func() { path = hub.game.IntroImagePath() }) || path == "" {
			http.NotFound(w, r)
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logf(cfg, "SERVE: Intro image %q unavailable: %v", path, err)
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", http.DetectContentType(data))
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err
			return
		}

		logf(cfg, "SERVE: Intro image (%s) to %s in %s",
			humanize.Bytes(uint64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// ---- Static file paths ----

//go:embed feud/admin.html
var adminHTML []byte

//go:embed feud/display.html
var displayHTML []byte

//go:embed feud/app.css
var feudCSS []byte

//go:embed feud/admin.js
var adminJS []byte

//go:embed feud/display.js
var displayJS []byte

func getPageHandler(cfg *Config, page []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(page)
	}
}

func getStaticHandler(cfg *Config, contentType string, data []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(data)
	}
}

// redirectNewGame handles GET /feud by generating a new random game ID
// (with server-side collision detection) and redirecting to its control panel.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID+"/admin", http.StatusTemporaryRedirect)
	}
}

// registerFeudGame sets up routes so that:
//   - $path                    → redirects to a new game's control panel
//   - $path/:gameid/admin      → host control panel
//   - $path/:gameid/display    → public display
//   - $path/:gameid/ws         → WebSocket for that game (?role=display for screens)
//   - $path/:gameid/qr         → PNG QR code for the display URL
//   - $path/:gameid/intro      → intro logo, when configured
func registerFeudGame(cfg *Config, path string, mux *httprouter.Router, gm *GameManager, errs chan<- error) {
	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid/admin", getPageHandler(cfg, adminHTML))
	mux.GET(cfg.prefix+path+"/:gameid/display", getPageHandler(cfg, displayHTML))

	// Shared assets (no gameid in route)
	mux.GET(cfg.prefix+"/assets/feud/app.css", getStaticHandler(cfg, "text/css; charset=utf-8", feudCSS))
	mux.GET(cfg.prefix+"/assets/feud/admin.js", getStaticHandler(cfg, "application/javascript; charset=utf-8", adminJS))
	mux.GET(cfg.prefix+"/assets/feud/display.js", getStaticHandler(cfg, "application/javascript; charset=utf-8", displayJS))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)
	mux.GET(cfg.prefix+path+"/:gameid/intro", serveIntroImage(cfg, gm, errs))
}
