package persist

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/keyforge/internal/metrics"
	"github.com/dshills/keyforge/internal/platform"
	"github.com/dshills/keyforge/internal/rgb"
)

// Storage offsets.
const (
	ConfigOffset       = 0
	ConfigSize         = 8
	DefaultLayerOffset = 8
	MarkerOffset       = 9

	// Size is the number of bytes the store occupies.
	Size = 16
)

// marker is written at MarkerOffset once storage has been initialized.
const marker = 0xA5

// NoDefaultLayer is the stored value when no default layer was saved.
const NoDefaultLayer = 0xFF

// ErrBlank indicates storage that has never been initialized.
var ErrBlank = errors.New("storage not initialized")

// Store owns the configuration and mediates all storage access.
type Store struct {
	storage      platform.Storage
	cfg          Config
	defaultLayer uint8
	logger       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a store over storage. Call Load before use.
func NewStore(storage platform.Storage, opts ...Option) *Store {
	s := &Store{
		storage:      storage,
		cfg:          Defaults(),
		defaultLayer: NoDefaultLayer,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the configuration from storage.
// Blank or unreadable storage yields defaults, which are written back.
// Out-of-range fields are clamped and written back.
func (s *Store) Load() Config {
	cfg, layer, err := Read(s.storage)
	switch {
	case errors.Is(err, ErrBlank):
		s.logger.Info().Msg("initializing blank config storage")
		s.cfg = Defaults()
		s.defaultLayer = NoDefaultLayer
		s.save()
		s.saveDefaultLayer()
		return s.cfg
	case err != nil:
		s.logger.Error().Err(err).Msg("read config storage, using defaults")
		s.cfg = Defaults()
		s.defaultLayer = NoDefaultLayer
		return s.cfg
	}

	clamped, fixed := cfg.Clamp()
	s.cfg = clamped
	s.defaultLayer = layer
	if len(fixed) > 0 {
		for _, f := range fixed {
			metrics.RecordConfigClamp(f)
		}
		s.logger.Warn().Strs("fields", fixed).Uint8("preset", s.cfg.Preset).Msg("clamped out-of-range config")
		s.save()
	}
	return s.cfg
}

// Read decodes the configuration and default layer from storage without
// validating or repairing them.
func Read(storage platform.Storage) (Config, uint8, error) {
	buf := make([]byte, Size)
	if _, err := storage.ReadAt(buf, 0); err != nil {
		return Config{}, NoDefaultLayer, fmt.Errorf("read config: %w", err)
	}
	if buf[MarkerOffset] != marker {
		return Config{}, NoDefaultLayer, ErrBlank
	}
	raw := binary.LittleEndian.Uint64(buf[ConfigOffset : ConfigOffset+ConfigSize])
	return Unpack(raw), buf[DefaultLayerOffset], nil
}

// Config returns the current configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// SetAutocorrect updates the autocorrect flag and saves.
func (s *Store) SetAutocorrect(enabled bool) {
	s.cfg.Autocorrect = enabled
	s.save()
}

// SetJiggler updates the mouse jiggler flag and saves.
func (s *Store) SetJiggler(enabled bool) {
	s.cfg.Jiggler = enabled
	s.save()
}

// SetPreset selects the active preset and saves.
// Out-of-range indices select the default preset.
func (s *Store) SetPreset(index uint8) {
	if int(index) >= rgb.NumPresets {
		s.logger.Warn().Uint8("preset", index).Msg("preset out of range")
		index = rgb.DefaultPreset
	}
	s.cfg.Preset = index
	s.save()
}

// SetCustom stores the custom preset effect and saves.
func (s *Store) SetCustom(e rgb.Effect) {
	if !e.IsSet() {
		e = rgb.Effect{}
	}
	s.cfg.Custom = e
	s.save()
}

// CommitCustom stores e as the custom effect, makes the custom preset active
// and saves once.
func (s *Store) CommitCustom(e rgb.Effect) {
	if e.IsSet() {
		s.cfg.Custom = e
	}
	s.cfg.Preset = rgb.CustomPreset
	s.save()
}

// Reset restores defaults, clears the default layer and saves.
func (s *Store) Reset() {
	s.cfg = Defaults()
	s.defaultLayer = NoDefaultLayer
	s.save()
	s.saveDefaultLayer()
}

// DefaultLayer returns the stored default layer.
func (s *Store) DefaultLayer() (uint8, bool) {
	return s.defaultLayer, s.defaultLayer != NoDefaultLayer
}

// SaveDefaultLayer stores the default layer.
func (s *Store) SaveDefaultLayer(layer uint8) {
	if s.defaultLayer == layer {
		return
	}
	s.defaultLayer = layer
	s.saveDefaultLayer()
}

func (s *Store) save() {
	buf := make([]byte, ConfigSize+2)
	binary.LittleEndian.PutUint64(buf, s.cfg.Pack())
	buf[DefaultLayerOffset] = s.defaultLayer
	buf[MarkerOffset] = marker
	s.write(buf, ConfigOffset)
}

func (s *Store) saveDefaultLayer() {
	s.write([]byte{s.defaultLayer, marker}, DefaultLayerOffset)
}

func (s *Store) write(p []byte, off int64) {
	_, err := s.storage.WriteAt(p, off)
	metrics.RecordConfigWrite(err)
	if err != nil {
		s.logger.Error().Err(err).Int64("offset", off).Msg("write config storage")
	}
}
