package canvas

import "github.com/gdamore/tcell/v2"

// upperHalf renders two vertical pixels in one terminal cell: fg is the top
// pixel, bg the bottom one
const upperHalf = '▀'

// FlushToScreen draws the buffer at terminal cell (originX, originY)
// Each terminal row carries two pixel rows; rows outside the screen are skipped
// The caller owns screen.Show
func (b *Buffer) FlushToScreen(screen tcell.Screen, originX, originY int) {
	sw, sh := screen.Size()
	for cy := 0; cy*2 < b.height; cy++ {
		ty := originY + cy
		if ty < 0 || ty >= sh {
			continue
		}
		top, bottom := cy*2, cy*2+1
		for x := 0; x < b.width; x++ {
			tx := originX + x
			if tx < 0 || tx >= sw {
				continue
			}
			fg := b.At(x, top)
			bg := b.background
			if bottom < b.height {
				bg = b.At(x, bottom)
			}
			style := tcell.StyleDefault.Foreground(fg.ToTcell()).Background(bg.ToTcell())
			screen.SetContent(tx, ty, upperHalf, nil, style)
		}
	}
}
