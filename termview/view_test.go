package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"snakes_server/logic"
)

func TestKeyToInput(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want logic.Input
		ok   bool
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), logic.Input{Slot: 0, Key: logic.KeyLeft}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), logic.Input{Slot: 0, Key: logic.KeyConfirm}, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), logic.Input{Slot: 0, Key: logic.KeyConfirm}, true},
		{"wasd", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), logic.Input{Slot: 1, Key: logic.KeyUp}, true},
		{"wasd shifted", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), logic.Input{Slot: 1, Key: logic.KeyRight}, true},
		{"ijkl", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), logic.Input{Slot: 2, Key: logic.KeyLeft}, true},
		{"ijkl confirm", tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone), logic.Input{Slot: 2, Key: logic.KeyConfirm}, true},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), logic.Input{}, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), logic.Input{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyToInput(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("KeyToInput = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	if !IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape does not quit")
	}
	if !IsQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("ctrl-c does not quit")
	}
	if IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q quits")
	}
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 12)

	snack := logic.Coordinate{X: 2, Y: 0}
	snap := logic.Snapshot{
		Mode:    "play",
		StageID: 1,
		Width:   3,
		Height:  2,
		Tiles: [][]logic.TileKind{
			{logic.TileStone, logic.TileVoid, logic.TileSand},
			{logic.TileStone, logic.TileStone, logic.TileMoss},
		},
		Snakes: []logic.SnakeSnapshot{{
			ID:       1,
			Active:   true,
			Head:     logic.Coordinate{X: 1, Y: 1},
			Segments: []logic.Coordinate{{X: 0, Y: 1}},
		}},
		Snack:  &snack,
		Score:  3,
		Goal:   10,
		Header: "go",
		Sub:    "press",
	}
	Draw(screen, snap)

	cells := []struct {
		x, y int
		want rune
	}{
		{0, 0, 's'},        // stage label
		{0, 1, 'g'},        // header
		{0, boardTop, '·'}, // stone tile
		{2, boardTop, ' '}, // void
		{4, boardTop, '*'}, // snack over sand
		{0, boardTop + 1, 'o'},
		{2, boardTop + 1, '@'},
		{0, boardTop + 3, 'p'}, // sub header under the board
	}
	for _, c := range cells {
		mainc, _, _, _ := screen.GetContent(c.x, c.y)
		if mainc != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, mainc, c.want)
		}
	}

	// score sits at the right edge
	mainc, _, _, _ := screen.GetContent(39, 0)
	if mainc != '0' {
		t.Errorf("score tail = %q, want '0'", mainc)
	}
}

func TestChimeWithoutAudio(t *testing.T) {
	var c *chime
	c.Play()
	(&chime{}).Play()
}
