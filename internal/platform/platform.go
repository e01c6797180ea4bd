package platform

import (
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/rgb"
	"github.com/dshills/keyforge/internal/timer"
)

// Clock is the platform's monotonic millisecond clock.
type Clock = timer.Clock

// Host receives HID output decisions.
type Host interface {
	// Register reports code as held down.
	Register(code key.Code)

	// Unregister reports code as released.
	Unregister(code key.Code)
}

// Storage is non-volatile byte storage.
// Writes wear the backing store and are issued only on explicit user action.
type Storage interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

// Indicators is the per-key addressable LED array.
type Indicators interface {
	// Set assigns a color to the LED under pos.
	Set(pos key.Position, c rgb.Color)

	// Clear removes all per-key assignments so the lighting effect shows.
	Clear()
}

// Lighting is the platform's background effect driver.
type Lighting interface {
	// SetEffect switches the running effect. When persist is false the
	// driver must not write the change to its own storage.
	SetEffect(e rgb.Effect, persist bool)
}

// HostState reports host-side state that indicators reflect.
type HostState interface {
	// CapsLock reports the host's Caps Lock LED.
	CapsLock() bool

	// NKRO reports whether n-key rollover is enabled.
	NKRO() bool
}
