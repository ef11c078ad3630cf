// Package input turns SDL2 events into an ordered queue of viewer events
// and tracks which keys are held.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies the kind of Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Key is a physical key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
)

var scancodeKeys = map[sdl.Scancode]Key{
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
}

// KeyFromScancode maps an SDL scancode to a Key.
func KeyFromScancode(sc sdl.Scancode) Key {
	return scancodeKeys[sc]
}

// Event is one input occurrence. Pointer coordinates are absolute.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	X, Y   float64
}

// Input collects the events of one frame.
type Input struct {
	events []Event
	held   map[Key]bool

	// In relative mouse mode SDL reports motion deltas; they are summed
	// into a virtual pointer so consumers always see absolute positions.
	relative bool
	pointerX float64
	pointerY float64
}

// New creates an input handler whose virtual pointer starts at (x, y).
func New(x, y float64) *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		held:     make(map[Key]bool),
		pointerX: x,
		pointerY: y,
	}
}

// SetRelative selects whether motion is read from deltas (captured cursor)
// or from absolute window coordinates.
func (i *Input) SetRelative(relative bool) {
	i.relative = relative
}

// Update drains the SDL event queue into Events, preserving arrival order.
func (i *Input) Update() {
	i.events = i.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Handle(event)
	}
}

// Handle translates one SDL event and appends it to the frame's events.
// Unrecognized events are dropped.
func (i *Input) Handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.push(Event{Type: EventQuit})

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			i.push(Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// Key-up events never arrive for keys released while unfocused.
			clear(i.held)
		}

	case *sdl.KeyboardEvent:
		key := KeyFromScancode(e.Keysym.Scancode)
		if key == KeyUnknown {
			return
		}
		switch e.Type {
		case sdl.KEYDOWN:
			i.held[key] = true
			if e.Repeat == 0 {
				i.push(Event{Type: EventKeyDown, Key: key})
			}
		case sdl.KEYUP:
			delete(i.held, key)
			i.push(Event{Type: EventKeyUp, Key: key})
		}

	case *sdl.MouseMotionEvent:
		if i.relative {
			i.pointerX += float64(e.XRel)
			i.pointerY += float64(e.YRel)
		} else {
			i.pointerX = float64(e.X)
			i.pointerY = float64(e.Y)
		}
		i.push(Event{Type: EventMouseMove, X: i.pointerX, Y: i.pointerY})
	}
}

func (i *Input) push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events from the last Update, oldest first.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether key is currently down.
func (i *Input) Held(key Key) bool {
	return i.held[key]
}
