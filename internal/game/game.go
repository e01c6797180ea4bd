package game

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/metrics"
	"github.com/dshills/keyforge/internal/rgb"
	"github.com/dshills/keyforge/internal/timer"
)

// Retarget window in milliseconds. Deadlines fall in [MinRetarget, MaxRetarget).
const (
	MinRetarget uint32 = 1000
	MaxRetarget uint32 = 2000
)

// AllowList is the set of keys the game can target: the alphanumeric block,
// its symbols and the space bar. Escape, function and modifier keys are
// excluded.
var AllowList = []key.Code{
	key.KeyGrave, key.Key1, key.Key2, key.Key3, key.Key4, key.Key5, key.Key6,
	key.Key7, key.Key8, key.Key9, key.Key0, key.KeyMinus, key.KeyEqual, key.KeyBackspace,

	key.KeyTab, key.KeyQ, key.KeyW, key.KeyE, key.KeyR, key.KeyT, key.KeyY,
	key.KeyU, key.KeyI, key.KeyO, key.KeyP, key.KeyLeftBracket, key.KeyRightBracket, key.KeyBackslash,

	key.KeyA, key.KeyS, key.KeyD, key.KeyF, key.KeyG, key.KeyH, key.KeyJ,
	key.KeyK, key.KeyL, key.KeySemicolon, key.KeyQuote, key.KeyEnter,

	key.KeyZ, key.KeyX, key.KeyC, key.KeyV, key.KeyB, key.KeyN, key.KeyM,
	key.KeyComma, key.KeyDot, key.KeySlash,

	key.KeySpace,
}

// Colors is the target palette.
var Colors = []rgb.Color{
	rgb.RGB(255, 0, 0),
	rgb.RGB(255, 127, 0),
	rgb.RGB(255, 255, 0),
	rgb.RGB(0, 255, 0),
	rgb.RGB(0, 255, 255),
	rgb.RGB(0, 0, 255),
	rgb.RGB(255, 0, 255),
	rgb.RGB(255, 0, 127),
}

// Target is a key the game can light.
type Target struct {
	Code key.Code
	Pos  key.Position
}

// State is the observable game state.
type State struct {
	Active   bool
	Target   Target
	Color    rgb.Color
	Deadline timer.Millis

	// Celebrating is set from a hit until CelebrationEnd.
	Celebrating    bool
	HitPos         key.Position
	HitStart       timer.Millis
	CelebrationEnd timer.Millis

	Hits int
}

// Game is the whack-a-mole state machine.
type Game struct {
	random  Random
	allowed map[key.Code]bool
	targets []Target
	logger  zerolog.Logger

	state State
}

// Option configures a Game.
type Option func(*Game)

// WithRandom sets the randomness source.
func WithRandom(r Random) Option {
	return func(g *Game) {
		g.random = r
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates an inactive game.
func New(opts ...Option) *Game {
	g := &Game{
		allowed: make(map[key.Code]bool, len(AllowList)),
		logger:  zerolog.Nop(),
	}
	for _, c := range AllowList {
		g.allowed[c] = true
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allowed returns true if c is on the allow list.
func (g *Game) Allowed(c key.Code) bool {
	return g.allowed[c]
}

// SetTargets sets the keys the game may light. Keys not on the allow list
// are dropped.
func (g *Game) SetTargets(targets []Target) {
	g.targets = g.targets[:0]
	for _, t := range targets {
		if g.allowed[t.Code] {
			g.targets = append(g.targets, t)
		}
	}
}

// Targets returns the current target pool.
func (g *Game) Targets() []Target {
	return slices.Clone(g.targets)
}

// Active returns true while the game runs.
func (g *Game) Active() bool {
	return g.state.Active
}

// State returns the game state.
func (g *Game) State() State {
	return g.state
}

// Start activates the game. Residual state from a previous run is discarded.
func (g *Game) Start(now timer.Millis) {
	if g.random == nil {
		g.random = NewLCG(uint32(now)*13 + 7)
	}
	g.state = State{Active: true}
	g.retarget(now)
	g.logger.Debug().Int("targets", len(g.targets)).Msg("game start")
}

// Stop deactivates the game.
func (g *Game) Stop() {
	if !g.state.Active {
		return
	}
	g.logger.Debug().Int("hits", g.state.Hits).Msg("game stop")
	g.state.Active = false
}

// Tick retargets once the deadline passes and ends a finished celebration.
func (g *Game) Tick(now timer.Millis) {
	if !g.state.Active {
		return
	}
	if g.state.Celebrating && now.Reached(g.state.CelebrationEnd) {
		g.state.Celebrating = false
	}
	if now.Reached(g.state.Deadline) {
		g.retarget(now)
	}
}

// Press handles a key press whose base-layer code is c at pos. It returns
// true if the press is consumed by the game.
func (g *Game) Press(c key.Code, pos key.Position, now timer.Millis) bool {
	if !g.state.Active || !g.allowed[c] {
		return false
	}

	hit := len(g.targets) > 0 && c == g.state.Target.Code
	metrics.RecordGamePress(hit)
	if hit {
		g.state.Hits++
		g.state.Celebrating = true
		g.state.HitPos = pos
		g.state.HitStart = now
		g.state.CelebrationEnd = now.Add(CelebrationDuration)
		g.logger.Debug().Str("key", c.String()).Int("hits", g.state.Hits).Msg("hit")
		g.retarget(now)
	}
	return true
}

// Celebration returns the time since the hit while the ripple is showing.
func (g *Game) Celebration(now timer.Millis) (uint32, bool) {
	if !g.state.Active || !g.state.Celebrating {
		return 0, false
	}
	t := now.Since(g.state.HitStart)
	if t >= CelebrationDuration {
		return 0, false
	}
	return t, true
}

func (g *Game) retarget(now timer.Millis) {
	if len(g.targets) > 0 {
		g.state.Target = g.targets[g.random.Intn(len(g.targets))]
	}
	g.state.Color = Colors[g.random.Intn(len(Colors))]
	g.state.Deadline = now.Add(MinRetarget + uint32(g.random.Intn(int(MaxRetarget-MinRetarget))))
}
