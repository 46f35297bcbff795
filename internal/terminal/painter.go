package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/stormline/internal/statusfmt"
)

// Painter draws status lines on a tcell screen.
type Painter struct {
	screen tcell.Screen
	groups Groups
	mu     sync.Mutex
}

// NewPainter creates a painter for screen.
func NewPainter(screen tcell.Screen, groups Groups) *Painter {
	return &Painter{screen: screen, groups: groups}
}

// PaintLine lays info out over the screen width and draws it on row y.
// Cells are filled per grapheme cluster, measured the way statusfmt measures
// the layout. Cells past the end of the text take
// the base group's style. Text that does not fit is clipped.
func (p *Painter) PaintLine(y int, base string, info statusfmt.Info) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	res, err := newResolver(p.groups, base)
	if err != nil {
		return err
	}

	width, height := p.screen.Size()
	if y < 0 || y >= height {
		return nil
	}

	x := 0
segments:
	for _, seg := range statusfmt.Layout(info, width) {
		hs, err := res.style(seg.Group)
		if err != nil {
			return err
		}
		st := TcellStyle(hs)
		g := uniseg.NewGraphemes(seg.Text)
		for g.Next() {
			w := statusfmt.Width(g.Str())
			if w == 0 {
				continue
			}
			if x+w > width {
				break segments
			}
			runes := g.Runes()
			p.screen.SetContent(x, y, runes[0], runes[1:], st)
			x += w
		}
	}

	fill := TcellStyle(res.base)
	for ; x < width; x++ {
		p.screen.SetContent(x, y, ' ', nil, fill)
	}
	return nil
}
