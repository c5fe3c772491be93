package backend

import "github.com/gdamore/tcell/v2"

// EventType tells which fields of an Event are set.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event is a terminal input event reduced to what a render loop needs.
type Event struct {
	Type EventType

	// EventKey
	Key  Key
	Rune rune // set when Key is KeyRune

	// EventResize, in cells
	Width, Height int
}

// Key names a key. Printable input is KeyRune with the character in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlC
	KeyOther
)

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyCtrlC:      KeyCtrlC,
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		out := Event{Type: EventKey, Key: convertKey(e.Key())}
		if out.Key == KeyRune {
			out.Rune = e.Rune()
		}
		return out
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	}
	return Event{Type: EventNone}
}

func convertKey(k tcell.Key) Key {
	if key, ok := tcellKeys[k]; ok {
		return key
	}
	return KeyOther
}
