package logic

import (
	"github.com/leonelquinteros/gotext"
)

// UI strings go through gettext; without a loaded catalog gotext returns the msgid formatted as is.

func stageLabel(id int) string {
	return gotext.Get("stage %d", id)
}

func scoreLabel(score, goal int) string {
	return gotext.Get("%d of %d", score, goal)
}

// headers returns the header and sub-header prompts shown on entering a mode.
func headers(st State) (string, string) {
	switch s := st.(type) {
	case *SetupState:
		return "", gotext.Get("press confirm to skip")
	case *StartState:
		return gotext.Get("snakes"), gotext.Get("press a direction to start")
	case *WinState:
		return gotext.Get("stage clear!"), gotext.Get("press confirm to continue")
	case *DeathState:
		if s.Cause == DeathFalling {
			return gotext.Get("fell off!"), gotext.Get("press confirm to try again")
		}
		return gotext.Get("crashed!"), gotext.Get("press confirm to try again")
	}
	return "", ""
}

func (e *Engine) uiText(key, text string) {
	e.emit(Event{Kind: EventUIText, UIKey: key, Text: text})
}
