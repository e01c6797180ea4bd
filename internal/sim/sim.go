package sim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keyforge/internal/firmware"
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/metrics"
	"github.com/dshills/keyforge/internal/platform"
	"github.com/dshills/keyforge/internal/timer"
)

// Default timing.
const (
	DefaultTick    = 10 * time.Millisecond
	DefaultRelease = 120
)

// shutdownTimeout bounds the metrics server shutdown.
const shutdownTimeout = 2 * time.Second

// release is a synthesized key release waiting for its time.
type release struct {
	pos key.Position
	due timer.Millis
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) {
		s.logger = l
	}
}

// WithClock sets the clock. Defaults to the system clock.
func WithClock(c timer.Clock) Option {
	return func(s *Simulator) {
		s.clock = c
	}
}

// WithScreen sets the terminal screen. Run takes ownership and finalizes it.
func WithScreen(screen tcell.Screen) Option {
	return func(s *Simulator) {
		s.screen = screen
	}
}

// WithKeymapFile watches path and swaps the keymap when it changes.
func WithKeymapFile(path string) Option {
	return func(s *Simulator) {
		s.keymapPath = path
	}
}

// WithMetricsAddr serves Prometheus metrics on addr while running.
func WithMetricsAddr(addr string) Option {
	return func(s *Simulator) {
		s.metricsAddr = addr
	}
}

// WithTiming sets the scan tick and how long a terminal press is held.
// Zero values keep the defaults.
func WithTiming(tick time.Duration, releaseMS uint32) Option {
	return func(s *Simulator) {
		if tick > 0 {
			s.tick = tick
		}
		if releaseMS > 0 {
			s.releaseMS = releaseMS
		}
	}
}

// Simulator drives a Keyboard from a terminal.
type Simulator struct {
	kb     *firmware.Keyboard
	host   *Host
	lights *platform.LightingRecorder
	leds   *platform.IndicatorFrame
	mapper *Mapper

	screen      tcell.Screen
	clock       timer.Clock
	logger      zerolog.Logger
	keymapPath  string
	metricsAddr string
	tick        time.Duration
	releaseMS   uint32

	queued   []key.Event
	turns    []keymap.Direction
	releases []release
	latched  map[key.Position]bool
	reload   *keymap.Keymap
	status   string
}

// New creates a simulator for def. Storage holds the persisted user
// configuration; a nil storage keeps it in memory.
func New(def firmware.Definition, cfg firmware.Config, storage platform.Storage, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		host:      NewHost(),
		lights:    platform.NewLightingRecorder(),
		leds:      platform.NewIndicatorFrame(),
		logger:    zerolog.Nop(),
		tick:      DefaultTick,
		releaseMS: DefaultRelease,
		latched:   make(map[key.Position]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = timer.NewSystem()
	}

	kb, err := firmware.New(def, cfg, firmware.Platform{
		Host:       s.host,
		Storage:    storage,
		Lighting:   s.lights,
		Indicators: s.leds,
		HostState:  s.host,
	}, firmware.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("create keyboard: %w", err)
	}
	s.kb = kb
	s.mapper = NewMapper(kb.Keymap())
	s.kb.Tick(s.clock.Now(), nil)
	return s, nil
}

// Keyboard returns the simulated keyboard.
func (s *Simulator) Keyboard() *firmware.Keyboard {
	return s.kb
}

// Host returns the simulated host.
func (s *Simulator) Host() *Host {
	return s.host
}

// Run draws the board and feeds terminal keys to the keyboard until ctx is
// done or the user quits.
func (s *Simulator) Run(ctx context.Context) error {
	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		s.screen = screen
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event, 16)
	reloads := make(chan *keymap.Keymap, 1)

	// PollEvent returns nil once the screen is finalized by the tick loop.
	g.Go(func() error {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	if s.keymapPath != "" {
		w, err := NewWatcher(s.keymapPath, DefaultDebounce, s.logger.With().Str("component", "watcher").Logger())
		if err != nil {
			s.logger.Warn().Err(err).Msg("keymap watching disabled")
		} else {
			g.Go(func() error {
				return w.Run(gctx, reloads)
			})
		}
	}

	if s.metricsAddr != "" {
		s.serveMetrics(gctx, g)
	}

	g.Go(func() error {
		defer cancel()
		defer s.screen.Fini()
		return s.loop(gctx, events, reloads)
	})

	return g.Wait()
}

func (s *Simulator) serveMetrics(ctx context.Context, g *errgroup.Group) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              s.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		s.logger.Info().Str("addr", s.metricsAddr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func (s *Simulator) loop(ctx context.Context, events <-chan tcell.Event, reloads <-chan *keymap.Keymap) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(ev, s.clock.Now()) {
					return nil
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}

		case km := <-reloads:
			s.reload = km

		case <-ticker.C:
			s.step(s.clock.Now())
			s.draw()
		}
	}
}

// handleKey queues the board events for a terminal key. It returns false
// when the user asked to quit.
func (s *Simulator) handleKey(ev *tcell.EventKey, now timer.Millis) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false
	}

	stroke, ok := s.mapper.Map(ev, s.kb.Layers().Default())
	if !ok {
		s.logger.Debug().Str("key", ev.Name()).Msg("no board key")
		return true
	}

	if stroke.Turn {
		s.turns = append(s.turns, stroke.Dir)
		return true
	}

	if stroke.Latch {
		if s.latched[stroke.Pos] {
			delete(s.latched, stroke.Pos)
			s.queued = append(s.queued, key.Release(stroke.Pos, now))
		} else {
			s.latched[stroke.Pos] = true
			s.queued = append(s.queued, key.Press(stroke.Pos, now))
		}
		return true
	}

	// A repeat while the key is still held becomes a fresh tap.
	if i := slices.IndexFunc(s.releases, func(r release) bool { return r.pos == stroke.Pos }); i >= 0 {
		s.releases = slices.Delete(s.releases, i, i+1)
		s.queued = append(s.queued, key.Release(stroke.Pos, now))
	}
	s.queued = append(s.queued, key.Press(stroke.Pos, now))
	s.releases = append(s.releases, release{pos: stroke.Pos, due: now.Add(s.releaseMS)})
	return true
}

// step runs one scan tick at now.
func (s *Simulator) step(now timer.Millis) {
	if s.reload != nil {
		s.applyKeymap(s.reload)
		s.reload = nil
	}

	events := s.queued
	s.queued = nil
	kept := s.releases[:0]
	for _, r := range s.releases {
		if now.Reached(r.due) {
			events = append(events, key.Release(r.pos, r.due))
		} else {
			kept = append(kept, r)
		}
	}
	s.releases = kept

	slices.SortStableFunc(events, func(a, b key.Event) int {
		return int(int32(uint32(a.Time) - uint32(b.Time)))
	})
	s.kb.Tick(now, events)

	// Detents are applied after the tick's key events.
	for _, dir := range s.turns {
		s.kb.Rotate(0, dir, now)
	}
	s.turns = nil
}

func (s *Simulator) applyKeymap(km *keymap.Keymap) {
	if err := s.kb.SetKeymap(km); err != nil {
		s.logger.Warn().Err(err).Msg("keymap rejected")
		s.status = "keymap rejected: " + err.Error()
		return
	}
	s.mapper.SetKeymap(km)
	s.status = "keymap reloaded"
}
