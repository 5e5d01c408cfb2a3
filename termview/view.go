package termview

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"snakes_server/logic"
)

const (
	frameInterval = 33 * time.Millisecond
	boardTop      = 2 // rows reserved for stage/score and header
)

var (
	tileStyles = map[logic.TileKind]tcell.Style{
		logic.TileStone: tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		logic.TilePlank: tcell.StyleDefault.Foreground(tcell.ColorOlive),
		logic.TileMoss:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		logic.TileSand:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
	snakeColors = []tcell.Color{tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorLime}
	snackStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

func snakeStyle(id int) tcell.Style {
	return tcell.StyleDefault.Foreground(snakeColors[(id-1)%len(snakeColors)]).Bold(true)
}

// Draw renders one snapshot. The board is drawn two columns per cell so it looks square.
func Draw(screen tcell.Screen, snap logic.Snapshot) {
	screen.Clear()

	drawText(screen, 0, 0, textStyle, fmt.Sprintf("stage %d", snap.StageID))
	if snap.Goal > 0 {
		score := fmt.Sprintf("%d of %d", snap.Score, snap.Goal)
		w, _ := screen.Size()
		drawText(screen, w-len(score), 0, textStyle, score)
	}
	drawText(screen, 0, 1, textStyle.Bold(true), snap.Header)

	for y, row := range snap.Tiles {
		for x, tile := range row {
			if tile == logic.TileVoid {
				continue
			}
			drawCell(screen, logic.Coordinate{X: x, Y: y}, '·', tileStyles[tile])
		}
	}

	for _, c := range snap.Cosmetic {
		drawCell(screen, c, '*', snackStyle)
	}
	if snap.Snack != nil {
		drawCell(screen, *snap.Snack, '*', snackStyle)
	}

	for _, s := range snap.Snakes {
		style := snakeStyle(s.ID)
		if s.Falling {
			style = style.Dim(true)
		}
		for _, seg := range s.Segments {
			drawCell(screen, seg, 'o', style)
		}
		drawCell(screen, s.Head, '@', style)
	}

	drawText(screen, 0, boardTop+snap.Height+1, textStyle, snap.Sub)
	screen.Show()
}

func drawCell(screen tcell.Screen, c logic.Coordinate, r rune, style tcell.Style) {
	if c.X < 0 || c.Y < 0 || c.Hidden() {
		return
	}
	screen.SetContent(c.X*2, boardTop+c.Y, r, nil, style)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// Run draws the game and feeds key presses to loop until the player quits or the loop stops.
func Run(screen tcell.Screen, loop *logic.GameLoop) {
	chime := newChime()

	keys := make(chan *tcell.EventKey, 16)
	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if IsQuit(ev) {
					return
				}
				keys <- ev
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	lastScore := 0

	for {
		select {
		case ev := <-keys:
			if in, ok := KeyToInput(ev); ok {
				select {
				case loop.InputChan <- in:
				case <-loop.Done():
				}
			}
		case <-ticker.C:
			snap, ok := loop.Snapshot()
			if !ok {
				return
			}
			if snap.Score > lastScore {
				chime.Play()
			}
			lastScore = snap.Score
			Draw(screen, snap)
		case <-quit:
			log.Println("termview: quit")
			return
		case <-loop.Done():
			return
		}
	}
}
