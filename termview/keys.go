package termview

import (
	"github.com/gdamore/tcell/v2"

	"snakes_server/logic"
)

// rune bindings per player slot: up, down, left, right, confirm
var runeBindings = []struct {
	slot int
	keys map[rune]logic.Key
}{
	{1, map[rune]logic.Key{'w': logic.KeyUp, 's': logic.KeyDown, 'a': logic.KeyLeft, 'd': logic.KeyRight, 'e': logic.KeyConfirm}},
	{2, map[rune]logic.Key{'i': logic.KeyUp, 'k': logic.KeyDown, 'j': logic.KeyLeft, 'l': logic.KeyRight, 'o': logic.KeyConfirm}},
}

// KeyToInput maps a terminal key press to a player intent. Slot 0 plays on the arrow keys and Enter/Space.
func KeyToInput(ev *tcell.EventKey) (logic.Input, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return logic.Input{Slot: 0, Key: logic.KeyUp}, true
	case tcell.KeyDown:
		return logic.Input{Slot: 0, Key: logic.KeyDown}, true
	case tcell.KeyLeft:
		return logic.Input{Slot: 0, Key: logic.KeyLeft}, true
	case tcell.KeyRight:
		return logic.Input{Slot: 0, Key: logic.KeyRight}, true
	case tcell.KeyEnter:
		return logic.Input{Slot: 0, Key: logic.KeyConfirm}, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return logic.Input{Slot: 0, Key: logic.KeyConfirm}, true
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		for _, b := range runeBindings {
			if k, ok := b.keys[r]; ok {
				return logic.Input{Slot: b.slot, Key: k}, true
			}
		}
	}
	return logic.Input{}, false
}

// IsQuit reports whether the key should close the frontend.
func IsQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}
