package render

// Key is one dashboard keybinding.
type Key int

const (
	KeyUnknown Key = iota
	KeyQuit
	KeyRefresh
	KeyFocus1
	KeyFocus2
	KeyFocus3
	KeyFocus4
	KeyFocus5
	KeyFocus6
	KeyTabCycle
	KeyThemeCycle
	KeyHelp
)

// keyLookup maps each bound input rune to its Key. The digit keys
// 1-6 map to PanelIDs via PanelOrder in PanelForFocusKey, since both
// are defined in the same 1-6 sequence.
var keyLookup = map[rune]Key{
	'q': KeyQuit,
	'r': KeyRefresh,
	'1': KeyFocus1,
	'2': KeyFocus2,
	'3': KeyFocus3,
	'4': KeyFocus4,
	'5': KeyFocus5,
	'6': KeyFocus6,
	'\t': KeyTabCycle,
	't': KeyThemeCycle,
	'?': KeyHelp,
}

// KeyFor translates a raw input rune into a dashboard Key.
// Unrecognized input maps to KeyUnknown, which callers should ignore.
func KeyFor(r rune) Key {
	if k, ok := keyLookup[r]; ok {
		return k
	}
	return KeyUnknown
}

// PanelForFocusKey maps a KeyFocus1..KeyFocus6 to its PanelID.
func PanelForFocusKey(k Key) (PanelID, bool) {
	idx := int(k) - int(KeyFocus1)
	if idx < 0 || idx >= len(PanelOrder) {
		return 0, false
	}
	return PanelOrder[idx], true
}

// NextFocus cycles focus forward through PanelOrder, wrapping around.
func NextFocus(current PanelID) PanelID {
	for i, p := range PanelOrder {
		if p == current {
			return PanelOrder[(i+1)%len(PanelOrder)]
		}
	}
	return PanelOrder[0]
}

// Dispatch applies a dashboard Key to the current UI state (theme and
// focus), returning the updated values and whether the application
// should quit. It does not touch the Query Layer -- KeyRefresh is
// reported back to the caller to act on.
func Dispatch(k Key, theme Theme, focus PanelID) (newTheme Theme, newFocus PanelID, quit bool) {
	switch k {
	case KeyQuit:
		return theme, focus, true
	case KeyThemeCycle:
		return NextTheme(theme), focus, false
	case KeyTabCycle:
		return theme, NextFocus(focus), false
	default:
		if p, ok := PanelForFocusKey(k); ok {
			return theme, p, false
		}
		return theme, focus, false
	}
}
