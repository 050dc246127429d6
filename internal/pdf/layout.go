package pdf

import (
	"fmt"
	"math"

	"bizdocs/internal/domain"
)

// Block is a section placed as a unit by Layout.
type Block struct {
	// Height is the measured or estimated height the block needs.
	Height float64
	// Margin is extra clearance required below the block on the current page.
	// It does not apply once the block has been moved to a fresh page.
	Margin float64
	// Header is drawn at the top of a fresh page before the block when a break
	// is taken. It returns the offset where the block should start.
	Header func(y float64) float64
	// Draw renders the block at y and returns the offset below it.
	Draw func(y float64) float64
}

// Layout owns the vertical write position on a Canvas. Every section goes
// through Place, which starts a new page when the section would cross the
// bottom margin.
type Layout struct {
	canvas Canvas
	top    float64
	bottom float64
	y      float64
}

// NewLayout starts the first page of c and positions the cursor at the top margin.
func NewLayout(c Canvas, margin float64) *Layout {
	c.AddPage()
	_, h := c.PageSize()
	return &Layout{
		canvas: c,
		top:    margin,
		bottom: h - margin,
		y:      margin,
	}
}

// Y is the current write offset.
func (l *Layout) Y() float64 { return l.y }

// Top is the offset the cursor resets to on a new page.
func (l *Layout) Top() float64 { return l.top }

// Bottom is the lowest offset a block may reach.
func (l *Layout) Bottom() float64 { return l.bottom }

// Capacity is the height available on an empty page.
func (l *Layout) Capacity() float64 { return l.bottom - l.top }

// skip moves the cursor down by dy without drawing.
func (l *Layout) skip(dy float64) { l.y += dy }

// Place draws b at the cursor, breaking to a new page first when
// y + Height + Margin would pass the bottom margin. A block that does not fit
// on a fresh page fails with domain.ErrLayoutOverflow.
func (l *Layout) Place(b Block) error {
	if b.Height < 0 || math.IsNaN(b.Height) || math.IsInf(b.Height, 0) {
		return fmt.Errorf("block height %v: %w", b.Height, domain.ErrLayoutOverflow)
	}
	if l.y+b.Height+b.Margin > l.bottom {
		l.canvas.AddPage()
		l.y = l.top
		if b.Header != nil {
			l.y = b.Header(l.y)
		}
		if l.y+b.Height > l.bottom {
			return fmt.Errorf("block of height %.2f exceeds page %d space of %.2f: %w",
				b.Height, l.canvas.PageCount(), l.bottom-l.y, domain.ErrLayoutOverflow)
		}
	}
	if b.Draw != nil {
		l.y = b.Draw(l.y)
	} else {
		l.y += b.Height
	}
	return nil
}
