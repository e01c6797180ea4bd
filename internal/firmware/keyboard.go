package firmware

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/keyforge/internal/game"
	"github.com/dshills/keyforge/internal/indicator"
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/input/leader"
	"github.com/dshills/keyforge/internal/input/tapdance"
	"github.com/dshills/keyforge/internal/layer"
	"github.com/dshills/keyforge/internal/metrics"
	"github.com/dshills/keyforge/internal/persist"
	"github.com/dshills/keyforge/internal/platform"
	"github.com/dshills/keyforge/internal/rgb"
	"github.com/dshills/keyforge/internal/timer"
)

// Config configures the keyboard's timing and host behavior.
type Config struct {
	// TappingTerm is the tap dance window in milliseconds (default: 200).
	TappingTerm uint32

	// LeaderTimeout is the per-key leader deadline in milliseconds
	// (default: 500).
	LeaderTimeout uint32

	// WaitForFirstKey delays the leader deadline until the first key.
	WaitForFirstKey bool

	// HostOS selects the base layer when none is stored.
	HostOS OS
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TappingTerm:     tapdance.DefaultTappingTerm,
		LeaderTimeout:   leader.DefaultTimeout,
		WaitForFirstKey: true,
		HostOS:          OSWindows,
	}
}

// Platform bundles the host services the keyboard drives. Nil fields are
// replaced with in-memory recorders.
type Platform struct {
	Host       platform.Host
	Storage    platform.Storage
	Lighting   platform.Lighting
	Indicators platform.Indicators
	HostState  platform.HostState
}

func (p Platform) withDefaults() Platform {
	if p.Host == nil {
		p.Host = platform.NewHostRecorder()
	}
	if p.Storage == nil {
		p.Storage = platform.NewMemoryStorage(persist.Size)
	}
	if p.Lighting == nil {
		p.Lighting = platform.NewLightingRecorder()
	}
	if p.Indicators == nil {
		p.Indicators = platform.NewIndicatorFrame()
	}
	if p.HostState == nil {
		p.HostState = &platform.StaticHostState{}
	}
	return p
}

// Option configures a Keyboard.
type Option func(*Keyboard)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(k *Keyboard) {
		k.logger = l
	}
}

// WithRandom sets the mini-game randomness source.
func WithRandom(r game.Random) Option {
	return func(k *Keyboard) {
		k.random = r
	}
}

// pressRecord is what a held key did when it went down.
type pressRecord struct {
	binding  keymap.Binding
	consumed bool
}

// oneShot tracks a one-shot layer waiting for its key.
type oneShot struct {
	active bool
	layer  layer.ID
	used   bool
}

// Keyboard is the complete keyboard state.
type Keyboard struct {
	def    Definition
	cfg    Config
	plat   Platform
	logger zerolog.Logger
	random game.Random

	km     *keymap.Keymap
	stack  *layer.Stack
	store  *persist.Store
	dances *tapdance.Recognizer
	leader *leader.Engine
	game   *game.Game

	now     timer.Millis
	pressed map[key.Position]pressRecord
	oneShot oneShot
	edit    rgbEdit
	sel     selection
	frame   indicator.Frame
}

// New creates a keyboard for def. It loads the persisted config, selects
// the default layer and applies the active lighting preset.
func New(def Definition, cfg Config, plat Platform, opts ...Option) (*Keyboard, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if cfg.TappingTerm == 0 {
		cfg.TappingTerm = tapdance.DefaultTappingTerm
	}
	if cfg.LeaderTimeout == 0 {
		cfg.LeaderTimeout = leader.DefaultTimeout
	}

	k := &Keyboard{
		def:     def,
		cfg:     cfg,
		plat:    plat.withDefaults(),
		logger:  zerolog.Nop(),
		km:      def.Keymap,
		pressed: make(map[key.Position]pressRecord),
	}
	for _, opt := range opts {
		opt(k)
	}

	k.store = persist.NewStore(k.plat.Storage, persist.WithLogger(k.component("persist")))
	conf := k.store.Load()

	base := def.Roles.Base(cfg.HostOS)
	if stored, ok := k.store.DefaultLayer(); ok && int(stored) < def.Keymap.Layers() {
		base = layer.ID(stored)
	}

	stack, err := layer.NewStack(def.Keymap.Symbols().Layers,
		layer.WithSaver(k.store),
		layer.WithDefault(base),
		layer.WithLogger(k.component("layer")),
	)
	if err != nil {
		return nil, fmt.Errorf("layer stack: %w", err)
	}
	k.stack = stack
	k.stack.OnChange(k.onLayerChange)

	if len(def.Dances) > 0 {
		k.dances, err = tapdance.New(def.Dances,
			tapdance.WithTappingTerm(cfg.TappingTerm),
			tapdance.WithLogger(k.component("tapdance")),
		)
		if err != nil {
			return nil, fmt.Errorf("tap dance: %w", err)
		}
	}

	k.leader, err = leader.New(def.Sequences,
		leader.WithTimeout(cfg.LeaderTimeout),
		leader.WithWaitForFirstKey(cfg.WaitForFirstKey),
		leader.WithLogger(k.component("leader")),
	)
	if err != nil {
		return nil, fmt.Errorf("leader: %w", err)
	}

	gameOpts := []game.Option{game.WithLogger(k.component("game"))}
	if k.random != nil {
		gameOpts = append(gameOpts, game.WithRandom(k.random))
	}
	k.game = game.New(gameOpts...)
	k.refreshTargets()

	k.plat.Lighting.SetEffect(conf.ActiveEffect(), true)
	metrics.HighestLayer.Set(float64(k.stack.HighestActive()))

	k.logger.Info().
		Str("board", def.Name).
		Str("default", k.stack.Name(base)).
		Str("os", cfg.HostOS.String()).
		Uint8("preset", conf.Preset).
		Msg("keyboard ready")
	return k, nil
}

func (k *Keyboard) component(name string) zerolog.Logger {
	return k.logger.With().Str("component", name).Logger()
}

// Tick processes the events of one scan tick and updates the indicators.
// Events must be in time order and not later than now.
func (k *Keyboard) Tick(now timer.Millis, events []key.Event) {
	metrics.TicksTotal.Inc()
	for _, ev := range events {
		k.runTimers(ev.Time)
		metrics.RecordKeyEvent(ev.Pressed)
		if ev.Pressed {
			k.press(ev.Pos, ev.Time)
		} else {
			k.release(ev.Pos)
		}
	}
	k.runTimers(now)
	k.project()
}

// Rotate applies one detent of encoder i at now and updates the indicators.
// Calls interleave with Tick in time order.
func (k *Keyboard) Rotate(i int, dir keymap.Direction, now timer.Millis) {
	metrics.RecordEncoderTurn(dir.String())
	k.runTimers(now)
	k.turn(i, dir, now)
	k.project()
}

// runTimers advances the clock to now before any timer fires, so layer
// changes made by resolutions see the current time.
func (k *Keyboard) runTimers(now timer.Millis) {
	k.now = now
	if k.dances != nil {
		k.applyDances(k.dances.Tick(now))
	}
	k.applyLeader(k.leader.Tick(now))
	k.game.Tick(now)
}

// SetKeymap swaps in a new keymap with the same layer names. Held keys
// keep the bindings they were pressed with.
func (k *Keyboard) SetKeymap(km *keymap.Keymap) error {
	def := k.def
	def.Keymap = km
	if err := def.Validate(); err != nil {
		return err
	}
	if !slices.Equal(km.Symbols().Layers, k.km.Symbols().Layers) {
		return fmt.Errorf("%w: layer names changed", ErrInvalidDefinition)
	}
	k.def = def
	k.km = km
	k.refreshTargets()
	k.logger.Info().Str("keymap", km.Name).Msg("keymap replaced")
	return nil
}

// refreshTargets rebuilds the mini-game pool from the base layer.
func (k *Keyboard) refreshTargets() {
	base := k.stack.Default()
	var targets []game.Target
	for _, pos := range k.km.Layout().Positions() {
		if c, ok := k.km.CodeAt(base, pos); ok && k.game.Allowed(c) {
			targets = append(targets, game.Target{Code: c, Pos: pos})
		}
	}
	k.game.SetTargets(targets)
}

func (k *Keyboard) onLayerChange(prev, next layer.Snapshot) {
	for id, n := 0, k.km.Layers(); id < n; id++ {
		l := layer.ID(id)
		was, is := prev.Has(l), next.Has(l)
		if was == is {
			continue
		}
		direction := "off"
		if is {
			direction = "on"
		}
		metrics.RecordLayer(k.stack.Name(l), direction)

		switch l {
		case k.def.Roles.Kiddo:
			if is {
				k.game.Start(k.now)
			} else {
				k.game.Stop()
			}
		case k.def.Roles.RGBConfig:
			if is {
				k.edit.begin(k.store.Config().CustomEffect())
			} else {
				k.edit.end()
			}
		}
	}
	if prev.Default != next.Default {
		k.refreshTargets()
	}
	metrics.HighestLayer.Set(float64(next.Highest()))
}

func (k *Keyboard) project() {
	frame := indicator.Project(k.def.Indicators, k.indicatorInput())
	if k.frame != nil && maps.Equal(frame, k.frame) {
		return
	}
	k.frame = frame
	frame.Apply(k.plat.Indicators)
}

func (k *Keyboard) indicatorInput() indicator.Input {
	cfg := k.store.Config()
	in := indicator.Input{
		Keymap:  k.km,
		Active:  k.stack.Active(),
		Default: k.stack.Default(),
		Flags: indicator.Flags{
			Autocorrect: cfg.Autocorrect,
			Jiggler:     cfg.Jiggler,
			NKRO:        k.plat.HostState.NKRO(),
			CapsLock:    k.plat.HostState.CapsLock(),
		},
	}

	if k.game.Active() {
		s := k.game.State()
		in.Game = indicator.GameView{
			Active:    true,
			HasTarget: len(k.game.Targets()) > 0,
			Target:    s.Target,
			Color:     s.Color,
			HitPos:    s.HitPos,
		}
		if elapsed, ok := k.game.Celebration(k.now); ok {
			in.Game.Celebrating = true
			in.Game.Elapsed = elapsed
		}
	}

	if outcome, ok := k.leader.Feedback(k.now); ok {
		in.Leader = indicator.LeaderView{Flash: true, Success: outcome.Succeeded()}
	}
	return in
}

// Now returns the time of the last tick.
func (k *Keyboard) Now() timer.Millis {
	return k.now
}

// Keymap returns the active keymap.
func (k *Keyboard) Keymap() *keymap.Keymap {
	return k.km
}

// Layers returns the layer stack.
func (k *Keyboard) Layers() *layer.Stack {
	return k.stack
}

// Config returns the persisted user configuration.
func (k *Keyboard) Config() persist.Config {
	return k.store.Config()
}

// Store returns the config store.
func (k *Keyboard) Store() *persist.Store {
	return k.store
}

// Leader returns the leader engine state.
func (k *Keyboard) Leader() leader.State {
	return k.leader.State()
}

// Game returns the mini-game state.
func (k *Keyboard) Game() game.State {
	return k.game.State()
}

// Frame returns the last projected indicator frame.
func (k *Keyboard) Frame() indicator.Frame {
	return maps.Clone(k.frame)
}

// Editing returns the custom effect being edited on the RGB config layer.
func (k *Keyboard) Editing() (rgb.Effect, bool) {
	return k.edit.effect, k.edit.active
}

// AutocorrectActive reports whether autocorrect should run: it is enabled
// and the gaming layer is off.
func (k *Keyboard) AutocorrectActive() bool {
	return k.store.Config().Autocorrect && !k.stack.IsActive(k.def.Roles.Gaming)
}

// ForceMouseReports reports whether the mouse jiggler needs every mouse
// report sent.
func (k *Keyboard) ForceMouseReports() bool {
	return k.store.Config().Jiggler
}
