package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/layer"
)

// Format is a keymap file encoding.
type Format string

// Supported keymap file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown keymap format")

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// LoadFile loads a keymap from a TOML or YAML file.
func LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	km, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// Decode decodes and validates a keymap.
func Decode(data []byte, format Format) (*Keymap, error) {
	var f keymapFile
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding keymap: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding keymap: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return f.build()
}

// Encode renders a keymap in the given format. Decode reverses it.
func Encode(km *Keymap, format Format) ([]byte, error) {
	f := fileFrom(km)
	switch format {
	case FormatTOML:
		return toml.Marshal(f)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("encoding keymap: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding keymap: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// keymapFile is the on-disk structure for keymap files.
type keymapFile struct {
	Name   string      `toml:"name" yaml:"name"`
	Dances []string    `toml:"dances,omitempty" yaml:"dances,omitempty"`
	Layout layoutFile  `toml:"layout" yaml:"layout"`
	Layers []layerFile `toml:"layers" yaml:"layers"`
}

type layoutFile struct {
	Rows     []int `toml:"rows" yaml:"rows"`
	Encoders int   `toml:"encoders,omitempty" yaml:"encoders,omitempty"`
}

type layerFile struct {
	Name string `toml:"name" yaml:"name"`
	// Fill is applied to every position before Keys.
	Fill string   `toml:"fill,omitempty" yaml:"fill,omitempty"`
	Keys []string `toml:"keys,omitempty" yaml:"keys,omitempty"`
	// Encoders holds one "CCW CW" binding pair per encoder.
	Encoders []string `toml:"encoders,omitempty" yaml:"encoders,omitempty"`
}

func (f *keymapFile) build() (*Keymap, error) {
	layout, err := NewLayout(f.Layout.Rows...)
	if err != nil {
		return nil, err
	}
	layout.Encoders = f.Layout.Encoders

	symbols := Symbols{Dances: f.Dances}
	for _, l := range f.Layers {
		symbols.Layers = append(symbols.Layers, l.Name)
	}

	km, err := New(f.Name, layout, symbols)
	if err != nil {
		return nil, err
	}

	var errs []error
	for i, lf := range f.Layers {
		id := layer.ID(i)
		if lf.Fill != "" {
			b, err := symbols.Parse(lf.Fill)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %s fill: %w", lf.Name, err))
			} else {
				_ = km.Fill(id, b)
			}
		}
		errs = append(errs, buildEncoders(km, id, lf)...)
		if len(lf.Keys) == 0 {
			if lf.Fill == "" {
				errs = append(errs, fmt.Errorf("%w: layer %s has no keys", ErrInvalidKeymap, lf.Name))
			}
			continue
		}
		if len(lf.Keys) != layout.Rows() {
			errs = append(errs, fmt.Errorf("%w: layer %s has %d rows, want %d", ErrInvalidKeymap, lf.Name, len(lf.Keys), layout.Rows()))
			continue
		}
		for r, row := range lf.Keys {
			toks := strings.Fields(row)
			if len(toks) != layout.RowLengths[r] {
				errs = append(errs, fmt.Errorf("%w: layer %s row %d has %d keys, want %d", ErrInvalidKeymap, lf.Name, r, len(toks), layout.RowLengths[r]))
				continue
			}
			for c, tok := range toks {
				b, err := symbols.Parse(tok)
				if err != nil {
					errs = append(errs, fmt.Errorf("layer %s row %d col %d: %w", lf.Name, r, c, err))
					continue
				}
				_ = km.Set(id, key.Pos(uint8(r), uint8(c)), b)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

func buildEncoders(km *Keymap, id layer.ID, lf layerFile) []error {
	if len(lf.Encoders) == 0 {
		return nil
	}
	if len(lf.Encoders) != km.layout.Encoders {
		return []error{fmt.Errorf("%w: layer %s has %d encoders, want %d", ErrInvalidKeymap, lf.Name, len(lf.Encoders), km.layout.Encoders)}
	}
	var errs []error
	for i, pair := range lf.Encoders {
		toks := strings.Fields(pair)
		if len(toks) != 2 {
			errs = append(errs, fmt.Errorf("%w: layer %s encoder %d has %d bindings, want 2", ErrInvalidKeymap, lf.Name, i, len(toks)))
			continue
		}
		for d, tok := range toks {
			b, err := km.symbols.Parse(tok)
			if err != nil {
				errs = append(errs, fmt.Errorf("layer %s encoder %d: %w", lf.Name, i, err))
				continue
			}
			_ = km.SetEncoder(id, i, Direction(d), b)
		}
	}
	return errs
}

func fileFrom(km *Keymap) keymapFile {
	f := keymapFile{
		Name:   km.Name,
		Dances: km.symbols.Dances,
		Layout: layoutFile{Rows: km.layout.RowLengths, Encoders: km.layout.Encoders},
	}
	for i, name := range km.symbols.Layers {
		lf := layerFile{Name: name}
		for r, n := range km.layout.RowLengths {
			toks := make([]string, n)
			for c := 0; c < n; c++ {
				toks[c] = km.symbols.Format(km.Binding(layer.ID(i), key.Pos(uint8(r), uint8(c))))
			}
			lf.Keys = append(lf.Keys, strings.Join(toks, " "))
		}
		for e := 0; e < km.layout.Encoders; e++ {
			lf.Encoders = append(lf.Encoders, km.symbols.Format(km.Encoder(layer.ID(i), e, CounterClockwise))+" "+km.symbols.Format(km.Encoder(layer.ID(i), e, Clockwise)))
		}
		f.Layers = append(f.Layers, lf)
	}
	return f
}
