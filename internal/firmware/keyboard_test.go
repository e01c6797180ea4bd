package firmware_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keyforge/internal/board"
	"github.com/dshills/keyforge/internal/firmware"
	"github.com/dshills/keyforge/internal/game"
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/input/leader"
	"github.com/dshills/keyforge/internal/persist"
	"github.com/dshills/keyforge/internal/platform"
	"github.com/dshills/keyforge/internal/rgb"
	"github.com/dshills/keyforge/internal/timer"
)

// Q3 positions used below.
var (
	posEsc     = key.Pos(0, 0)
	posF4      = key.Pos(0, 4)
	posF7      = key.Pos(0, 7)
	posF8      = key.Pos(0, 8)
	posSolid   = key.Pos(0, 1)
	posShowDsk = key.Pos(0, 16)
	posGrave   = key.Pos(1, 0)
	posZero    = key.Pos(1, 10)
	posCaps    = key.Pos(3, 0)
	posA       = key.Pos(3, 1)
	posUp      = key.Pos(4, 12)
	posLShift  = key.Pos(4, 0)
	posFn      = key.Pos(5, 5)
	posSelWord = key.Pos(5, 6)
	posRCtrl   = key.Pos(5, 7)
	posBtn1    = key.Pos(2, 14)
)

// letters maps sequence letters to Q3 positions.
var letters = map[rune]key.Position{
	'a': key.Pos(3, 1), 'b': key.Pos(4, 5), 'd': key.Pos(3, 3), 'e': key.Pos(2, 3),
	'g': key.Pos(3, 5), 'i': key.Pos(2, 8), 'k': key.Pos(3, 8), 'm': key.Pos(4, 7),
	'o': key.Pos(2, 9), 'r': key.Pos(2, 4), 's': key.Pos(3, 2), 'u': key.Pos(2, 7),
	'x': key.Pos(4, 2),
}

type rig struct {
	t       *testing.T
	kb      *firmware.Keyboard
	host    *platform.HostRecorder
	storage *platform.MemoryStorage
	lights  *platform.LightingRecorder
	leds    *platform.IndicatorFrame
	state   *platform.StaticHostState
	now     timer.Millis
}

func newRig(t *testing.T, cfg firmware.Config, storage *platform.MemoryStorage) *rig {
	t.Helper()
	def, err := board.Q3()
	require.NoError(t, err)
	return newRigWith(t, def, cfg, storage)
}

func newRigWith(t *testing.T, def firmware.Definition, cfg firmware.Config, storage *platform.MemoryStorage) *rig {
	t.Helper()
	if storage == nil {
		storage = platform.NewMemoryStorage(persist.Size)
	}
	r := &rig{
		t:       t,
		host:    platform.NewHostRecorder(),
		storage: storage,
		lights:  platform.NewLightingRecorder(),
		leds:    platform.NewIndicatorFrame(),
		state:   &platform.StaticHostState{},
		now:     1000,
	}
	kb, err := firmware.New(def, cfg, firmware.Platform{
		Host:       r.host,
		Storage:    r.storage,
		Lighting:   r.lights,
		Indicators: r.leds,
		HostState:  r.state,
	}, firmware.WithRandom(&game.Sequence{Values: []int{0}}))
	require.NoError(t, err)
	r.kb = kb
	return r
}

func (r *rig) advance(ms uint32) {
	r.now = r.now.Add(ms)
	r.kb.Tick(r.now, nil)
}

func (r *rig) down(pos key.Position) {
	r.now = r.now.Add(10)
	r.kb.Tick(r.now, []key.Event{key.Press(pos, r.now)})
}

func (r *rig) up(pos key.Position) {
	r.now = r.now.Add(10)
	r.kb.Tick(r.now, []key.Event{key.Release(pos, r.now)})
}

func (r *rig) tap(pos key.Position) {
	r.down(pos)
	r.up(pos)
}

// withFn runs fn while FN_WIN is held.
func (r *rig) withFn(fn func()) {
	r.down(posFn)
	fn()
	r.up(posFn)
}

// lead starts the leader from the features layer and types word.
func (r *rig) lead(word string) {
	r.t.Helper()
	r.withFn(func() { r.tap(posSelWord) })
	for _, c := range word {
		pos, ok := letters[c]
		if !ok {
			r.t.Fatalf("no position for %q", c)
		}
		r.tap(pos)
	}
}

func (r *rig) doubleTap(pos key.Position) {
	r.tap(pos)
	r.tap(pos)
	r.advance(tapTerm)
}

const tapTerm = 250

func TestNewSelectsBaseLayer(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	if got := r.kb.Layers().Default(); got != board.WinBase {
		t.Errorf("Default() = %d, want %d", got, board.WinBase)
	}
	if got, want := r.lights.Persisted(), persist.Defaults().ActiveEffect(); got != want {
		t.Errorf("Persisted() = %v, want %v", got, want)
	}

	cfg := firmware.DefaultConfig()
	cfg.HostOS = firmware.OSMac
	mac := newRig(t, cfg, nil)
	if got := mac.kb.Layers().Default(); got != board.MacBase {
		t.Errorf("mac Default() = %d, want %d", got, board.MacBase)
	}
}

func TestStoredDefaultLayerWins(t *testing.T) {
	storage := platform.NewMemoryStorage(persist.Size)
	store := persist.NewStore(storage)
	store.Load()
	store.SaveDefaultLayer(uint8(board.MacBase))

	r := newRig(t, firmware.DefaultConfig(), storage)
	if got := r.kb.Layers().Default(); got != board.MacBase {
		t.Errorf("Default() = %d, want stored %d", got, board.MacBase)
	}
}

func TestTypingRegistersCodes(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)

	r.down(posA)
	if diff := cmp.Diff([]key.Code{key.KeyA}, r.host.Held()); diff != "" {
		t.Errorf("Held() mismatch (-want +got):\n%s", diff)
	}
	r.up(posA)
	if got := r.host.Held(); len(got) != 0 {
		t.Errorf("Held() after release = %v, want empty", got)
	}

	r.host.Reset()
	r.tap(posShowDsk)
	want := []string{"+KC_LGUI", "+KC_D", "-KC_D", "-KC_LGUI"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("G(KC_D) log mismatch (-want +got):\n%s", diff)
	}
}

func TestReleaseUsesPressTimeBinding(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)

	r.down(posFn)
	if !r.kb.Layers().IsActive(board.WinFn) || !r.kb.Layers().IsActive(board.Features) {
		t.Fatal("FN_WIN should activate WIN_FN and FEATURES")
	}
	r.down(posF4)
	r.up(posFn)
	if r.kb.Layers().IsActive(board.Features) {
		t.Fatal("FEATURES still active after FN_WIN release")
	}
	r.up(posF4)

	want := []string{"+KC_LCTL", "+KC_LSFT", "+KC_ESC", "-KC_ESC", "-KC_LSFT", "-KC_LCTL"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("TASK_MGR log mismatch (-want +got):\n%s", diff)
	}
}

func TestLeaderGameTogglesGaming(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	if !r.kb.AutocorrectActive() {
		t.Fatal("autocorrect should be active by default")
	}

	r.lead("game")
	if !r.kb.Layers().IsActive(board.Gaming) {
		t.Fatal("GAME should turn on the gaming layer")
	}
	if r.kb.Layers().IsActive(board.Leader) {
		t.Error("leader layer still active after the sequence")
	}
	if got := r.host.Log(); len(got) != 0 {
		t.Errorf("leader keys reached the host: %v", got)
	}
	if r.kb.AutocorrectActive() {
		t.Error("AutocorrectActive() = true while gaming")
	}

	// GUI is disabled on the gaming layer.
	r.tap(key.Pos(5, 1))
	if got := r.host.Log(); len(got) != 0 {
		t.Errorf("GUI reached the host while gaming: %v", got)
	}

	r.doubleTap(posEsc)
	if r.kb.Layers().IsActive(board.Gaming) {
		t.Error("double ESC should leave the gaming layer")
	}
}

func TestLeaderKiddoRunsGame(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	preset := r.lights.Persisted()

	r.lead("kiddo")
	if !r.kb.Layers().IsActive(board.Kiddo) {
		t.Fatal("KIDDO should turn on the kiddo layer")
	}
	if got := r.lights.Current(); got != rgb.SplashEffect {
		t.Errorf("Current() = %v, want splash", got)
	}
	if got := r.lights.Persisted(); got != preset {
		t.Errorf("splash was persisted: %v", got)
	}

	s := r.kb.Game()
	if !s.Active || s.Target.Pos != posGrave {
		t.Fatalf("Game() = %+v, want active targeting %v", s, posGrave)
	}
	if got := r.kb.Frame()[posGrave]; got != s.Color {
		t.Errorf("target color = %v, want %v", got, s.Color)
	}

	r.tap(posA)
	r.tap(posGrave)
	if got := r.kb.Game().Hits; got != 1 {
		t.Errorf("Hits = %d, want 1", got)
	}
	if got := r.host.Log(); len(got) != 0 {
		t.Errorf("kiddo keys reached the host: %v", got)
	}

	r.doubleTap(posEsc)
	if r.kb.Layers().IsActive(board.Kiddo) || r.kb.Game().Active {
		t.Error("double ESC should leave the kiddo layer and stop the game")
	}
	if got := r.lights.Current(); got != preset {
		t.Errorf("Current() after exit = %v, want preset %v", got, preset)
	}
}

func TestMouseDanceNeedsDoubleTap(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	r.lead("mouse")
	if !r.kb.Layers().IsActive(board.Mouse) {
		t.Fatal("MOUSE should turn on the mouse layer")
	}

	r.tap(posEsc)
	r.advance(tapTerm)
	if !r.kb.Layers().IsActive(board.Mouse) {
		t.Fatal("single ESC tap left the mouse layer")
	}

	// A tap interrupted by another key resolves as a single tap.
	r.tap(posEsc)
	r.tap(posBtn1)
	if !r.kb.Layers().IsActive(board.Mouse) {
		t.Fatal("interrupted tap left the mouse layer")
	}
	want := []string{"+MS_BTN1", "-MS_BTN1"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("interrupting key log mismatch (-want +got):\n%s", diff)
	}

	r.doubleTap(posEsc)
	if r.kb.Layers().IsActive(board.Mouse) {
		t.Error("double ESC should leave the mouse layer")
	}
}

func TestLeaderFailureFlash(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	r.lead("x")

	// The x press was 10ms ago; its deadline is inclusive.
	r.advance(firmware.DefaultConfig().LeaderTimeout - 10)
	if !r.kb.Leader().Active {
		t.Fatal("leader stopped collecting at exactly the timeout")
	}
	r.advance(1)

	if got := r.kb.Frame()[posSelWord]; got != rgb.Red {
		t.Errorf("leader key = %v, want failure red", got)
	}
	if r.kb.Leader().Active {
		t.Error("leader still collecting after timeout")
	}
	r.advance(300)
	if _, ok := r.kb.Frame()[posSelWord]; ok {
		t.Error("failure flash still showing")
	}
}

func TestLeaderMatchAtDeadlineStartsGameNow(t *testing.T) {
	def, err := board.Q3()
	require.NoError(t, err)
	def.Sequences = append(def.Sequences, leader.MustEntry("kiddos", "kiddos", leader.On(board.Kiddo)))
	r := newRigWith(t, def, firmware.DefaultConfig(), nil)

	r.lead("kiddo")
	if r.kb.Layers().IsActive(board.Kiddo) {
		t.Fatal("kiddo matched before the deadline")
	}
	r.advance(firmware.DefaultConfig().LeaderTimeout)
	if !r.kb.Layers().IsActive(board.Kiddo) {
		t.Fatal("kiddo should match at the deadline")
	}
	if got, want := r.kb.Game().Deadline, r.now.Add(game.MinRetarget); got != want {
		t.Errorf("Game().Deadline = %d, want %d", got, want)
	}
}

func TestLeaderKeysAtTimeoutGapMatch(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	r.withFn(func() { r.tap(posSelWord) })
	for _, c := range "game" {
		r.advance(firmware.DefaultConfig().LeaderTimeout - 20)
		r.down(letters[c])
		r.up(letters[c])
	}
	if !r.kb.Layers().IsActive(board.Gaming) {
		t.Error("GAME with full-timeout gaps should turn on the gaming layer")
	}
}

func TestEncoderFollowsLayers(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	turn := func(dir keymap.Direction) {
		r.now = r.now.Add(10)
		r.kb.Rotate(0, dir, r.now)
	}

	turn(keymap.Clockwise)
	turn(keymap.CounterClockwise)
	want := []string{"+KC_VOLU", "-KC_VOLU", "+KC_VOLD", "-KC_VOLD"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("base layer log mismatch (-want +got):\n%s", diff)
	}

	r.host.Reset()
	r.withFn(func() { turn(keymap.Clockwise) })
	want = []string{"+KC_LCTL", "+KC_PPLS", "-KC_PPLS", "-KC_LCTL"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("features layer log mismatch (-want +got):\n%s", diff)
	}

	r.host.Reset()
	r.lead("kiddo")
	turn(keymap.Clockwise)
	want = []string{"+RM_HUEU", "-RM_HUEU"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("kiddo layer log mismatch (-want +got):\n%s", diff)
	}
	if got := r.host.Held(); len(got) != 0 {
		t.Errorf("Held() = %v, want nothing held after a detent", got)
	}
}

func TestEncoderSwallowedByLeader(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	r.withFn(func() { r.tap(posSelWord) })
	require.True(t, r.kb.Leader().Active)

	r.now = r.now.Add(10)
	r.kb.Rotate(0, keymap.Clockwise, r.now)
	if got := r.host.Log(); len(got) != 0 {
		t.Errorf("encoder reached the host while leading: %v", got)
	}
	require.True(t, r.kb.Leader().Active)
}

func TestPresetPersists(t *testing.T) {
	storage := platform.NewMemoryStorage(persist.Size)
	r := newRig(t, firmware.DefaultConfig(), storage)

	r.withFn(func() { r.tap(posF8) })
	require.Equal(t, uint8(3), r.kb.Config().Preset)
	require.Equal(t, r.kb.Config().ActiveEffect(), r.lights.Persisted())

	again := newRig(t, firmware.DefaultConfig(), storage)
	require.Equal(t, uint8(3), again.kb.Config().Preset)
	require.Equal(t, r.lights.Persisted(), again.lights.Persisted())

	r.withFn(func() { r.tap(posF7) })
	require.Equal(t, uint8(2), r.kb.Config().Preset)
}

func TestRGBConfigEditAndCommit(t *testing.T) {
	storage := platform.NewMemoryStorage(persist.Size)
	r := newRig(t, firmware.DefaultConfig(), storage)

	r.lead("rgb")
	if !r.kb.Layers().IsActive(board.RGBConfig) {
		t.Fatal("RGB should turn on the RGB config layer")
	}
	start, editing := r.kb.Editing()
	if !editing {
		t.Fatal("Editing() = false on the RGB config layer")
	}
	require.Equal(t, r.kb.Config().CustomEffect(), start)

	want := start
	want.Mode = rgb.ModeSolid
	want = want.AddValue(rgb.ValueStep)

	writes := storage.Writes()
	r.tap(posSolid)
	r.tap(posUp)
	got, _ := r.kb.Editing()
	require.Equal(t, want, got)
	require.Equal(t, want, r.lights.Current())
	require.Equal(t, writes, storage.Writes(), "editing must not write storage")

	r.doubleTap(posEsc)
	require.False(t, r.kb.Layers().IsActive(board.RGBConfig))
	_, editing = r.kb.Editing()
	require.False(t, editing)
	require.Equal(t, uint8(rgb.CustomPreset), r.kb.Config().Preset)
	require.Equal(t, want, r.kb.Config().Custom)
	require.Equal(t, want, r.lights.Persisted())

	again := newRig(t, firmware.DefaultConfig(), storage)
	require.Equal(t, want, again.kb.Config().Custom)
	require.Equal(t, want, again.lights.Persisted())
}

func TestToggleAutocorrect(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)

	r.down(posFn)
	if got := r.kb.Frame()[posA]; got != rgb.Blue {
		t.Errorf("autocorrect indicator = %v, want blue", got)
	}
	r.tap(posA)
	if got := r.kb.Frame()[posA]; got != rgb.Orange {
		t.Errorf("autocorrect indicator after toggle = %v, want orange", got)
	}
	r.up(posFn)

	if r.kb.Config().Autocorrect || r.kb.AutocorrectActive() {
		t.Error("autocorrect still enabled after toggle")
	}
}

func TestEEPROMReset(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	r.withFn(func() {
		r.tap(posF8)
		r.tap(posA)
	})
	require.NotEqual(t, persist.Defaults(), r.kb.Config())

	r.withFn(func() { r.tap(posZero) })
	require.Equal(t, persist.Defaults(), r.kb.Config())
	require.Equal(t, persist.Defaults().ActiveEffect(), r.lights.Persisted())
}

func TestCapsLockIndicator(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)
	r.state.Caps = true
	r.advance(1)

	if got, ok := r.leds.Get(posCaps); !ok || got != rgb.Blue {
		t.Errorf("caps indicator = %v (%v), want blue", got, ok)
	}
}

func TestSelectWord(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)

	r.tap(posSelWord)
	want := []string{
		"+KC_LCTL", "+KC_RGHT", "-KC_RGHT", "-KC_LCTL",
		"+KC_LCTL", "+KC_LSFT", "+KC_LEFT", "-KC_LEFT", "-KC_LSFT", "-KC_LCTL",
	}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("first press mismatch (-want +got):\n%s", diff)
	}

	r.host.Reset()
	r.tap(posSelWord)
	want = []string{"+KC_LCTL", "+KC_LSFT", "+KC_RGHT", "-KC_RGHT", "-KC_LSFT", "-KC_LCTL"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("extend mismatch (-want +got):\n%s", diff)
	}

	// Any other key ends the selection.
	r.tap(posA)
	r.host.Reset()
	r.tap(posSelWord)
	if got := r.host.Log(); len(got) != 10 {
		t.Errorf("selection did not restart: %v", got)
	}
}

func TestSelectLine(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)

	r.down(posLShift)
	r.host.Reset()
	r.tap(posSelWord)
	want := []string{
		"-KC_LSFT",
		"+KC_HOME", "-KC_HOME",
		"+KC_LSFT", "+KC_END", "-KC_END", "-KC_LSFT",
		"+KC_LSFT",
	}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("line select mismatch (-want +got):\n%s", diff)
	}
	r.up(posLShift)
}

func TestOneShotLayerDropsAfterNextKey(t *testing.T) {
	km, err := board.Keymap()
	require.NoError(t, err)
	require.NoError(t, km.Set(board.WinBase, posRCtrl, keymap.OSL(board.Mouse)))
	def, err := board.Define(km)
	require.NoError(t, err)

	r := newRigWith(t, def, firmware.DefaultConfig(), nil)
	r.tap(posRCtrl)
	if !r.kb.Layers().IsActive(board.Mouse) {
		t.Fatal("one-shot layer not active after tap")
	}
	r.down(posBtn1)
	if !r.kb.Layers().IsActive(board.Mouse) {
		t.Fatal("one-shot layer dropped before the key was released")
	}
	r.up(posBtn1)
	if r.kb.Layers().IsActive(board.Mouse) {
		t.Error("one-shot layer still active after the next key")
	}
	want := []string{"+MS_BTN1", "-MS_BTN1"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestSetKeymapRejectsLayerChanges(t *testing.T) {
	r := newRig(t, firmware.DefaultConfig(), nil)

	layout, err := keymap.NewLayout(1)
	require.NoError(t, err)
	other, err := keymap.New("other", layout, keymap.Symbols{Layers: []string{"ONLY"}})
	require.NoError(t, err)
	require.Error(t, r.kb.SetKeymap(other))

	km, err := board.Keymap()
	require.NoError(t, err)
	require.NoError(t, km.Set(board.WinBase, posA, keymap.Code(key.KeyB)))
	require.NoError(t, r.kb.SetKeymap(km))

	r.tap(posA)
	want := []string{"+KC_B", "-KC_B"}
	if diff := cmp.Diff(want, r.host.Log()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOS(t *testing.T) {
	tests := []struct {
		in      string
		want    firmware.OS
		wantErr bool
	}{
		{"", firmware.OSWindows, false},
		{"Linux", firmware.OSWindows, false},
		{"darwin", firmware.OSMac, false},
		{"mac", firmware.OSMac, false},
		{"beos", firmware.OSWindows, true},
	}
	for _, tt := range tests {
		got, err := firmware.ParseOS(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOS(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOS(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
