package firmware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keyforge/internal/indicator"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/input/leader"
	"github.com/dshills/keyforge/internal/input/tapdance"
	"github.com/dshills/keyforge/internal/layer"
)

// Definition errors
var (
	ErrInvalidDefinition = errors.New("invalid board definition")
	ErrUnknownOS         = errors.New("unknown host OS")
)

// OS is the host operating system, which selects the default base layer.
type OS uint8

// Host operating systems.
const (
	OSWindows OS = iota
	OSMac
)

// String returns "windows" or "mac".
func (o OS) String() string {
	if o == OSMac {
		return "mac"
	}
	return "windows"
}

// ParseOS parses an OS name.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win", "linux", "":
		return OSWindows, nil
	case "mac", "macos", "darwin":
		return OSMac, nil
	default:
		return OSWindows, fmt.Errorf("%w: %q", ErrUnknownOS, s)
	}
}

// Roles names the layers the firmware treats specially.
type Roles struct {
	MacBase   layer.ID
	MacFn     layer.ID
	WinBase   layer.ID
	WinFn     layer.ID
	Features  layer.ID
	Gaming    layer.ID
	Mouse     layer.ID
	Kiddo     layer.ID
	RGBConfig layer.ID
	Leader    layer.ID
}

// Base returns the base layer for os.
func (r Roles) Base(os OS) layer.ID {
	if os == OSMac {
		return r.MacBase
	}
	return r.WinBase
}

func (r Roles) all() map[string]layer.ID {
	return map[string]layer.ID{
		"mac_base":   r.MacBase,
		"mac_fn":     r.MacFn,
		"win_base":   r.WinBase,
		"win_fn":     r.WinFn,
		"features":   r.Features,
		"gaming":     r.Gaming,
		"mouse":      r.Mouse,
		"kiddo":      r.Kiddo,
		"rgb_config": r.RGBConfig,
		"leader":     r.Leader,
	}
}

// Definition is everything that describes one board.
type Definition struct {
	Name       string
	Keymap     *keymap.Keymap
	Roles      Roles
	Dances     []tapdance.Dance
	Sequences  []leader.Entry
	Indicators *indicator.Table
}

// Validate checks the definition for consistency. All problems are reported
// together.
func (d Definition) Validate() error {
	if d.Keymap == nil {
		return fmt.Errorf("%w: no keymap", ErrInvalidDefinition)
	}

	var errs []error
	if err := d.Keymap.Validate(); err != nil {
		errs = append(errs, err)
	}
	for name, id := range d.Roles.all() {
		if int(id) >= d.Keymap.Layers() {
			errs = append(errs, fmt.Errorf("%w: role %s uses layer %d of %d", ErrInvalidDefinition, name, id, d.Keymap.Layers()))
		}
	}
	if len(d.Dances) != len(d.Keymap.Symbols().Dances) {
		errs = append(errs, fmt.Errorf("%w: %d dances defined, keymap names %d", ErrInvalidDefinition, len(d.Dances), len(d.Keymap.Symbols().Dances)))
	}
	if len(d.Dances) > 0 {
		if err := tapdance.Validate(d.Dances); err != nil {
			errs = append(errs, err)
		}
	}
	if err := leader.Validate(d.Sequences); err != nil {
		errs = append(errs, err)
	}
	if d.Indicators == nil {
		errs = append(errs, fmt.Errorf("%w: no indicator table", ErrInvalidDefinition))
	}
	return errors.Join(errs...)
}
