package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/domain"
)

func TestLayout_PlaceAdvancesCursor(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)
	require.Equal(t, 1, rec.PageCount())
	assert.Equal(t, 30.0, l.Y())
	assert.InDelta(t, a4Height-30, l.Bottom(), 1e-9)

	var drawnAt float64
	err := l.Place(Block{Height: 100, Draw: func(y float64) float64 {
		drawnAt = y
		return y + 80
	}})
	require.NoError(t, err)
	assert.Equal(t, 30.0, drawnAt)
	assert.Equal(t, 110.0, l.Y(), "cursor follows the offset returned by Draw")

	require.NoError(t, l.Place(Block{Height: 15}))
	assert.Equal(t, 125.0, l.Y())
	assert.Equal(t, 1, rec.PageCount())
}

func TestLayout_BreaksAndDrawsHeader(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)
	l.skip(700)

	headers := 0
	var drawnAt float64
	err := l.Place(Block{
		Height: 100,
		Header: func(y float64) float64 {
			headers++
			assert.Equal(t, 30.0, y)
			return y + 55
		},
		Draw: func(y float64) float64 {
			drawnAt = y
			return y + 100
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.PageCount())
	assert.Equal(t, 1, headers)
	assert.Equal(t, 85.0, drawnAt)
	assert.Equal(t, 185.0, l.Y())
}

func TestLayout_HeaderOnlyOnBreak(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)

	called := false
	require.NoError(t, l.Place(Block{Height: 50, Header: func(y float64) float64 {
		called = true
		return y
	}}))
	assert.False(t, called)
}

func TestLayout_SafetyMarginForcesBreak(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)
	l.skip(l.Capacity() - 105)

	// Fits by 5 points but not with the 10 point margin.
	require.NoError(t, l.Place(Block{Height: 100, Margin: 10}))
	assert.Equal(t, 2, rec.PageCount())
	assert.Equal(t, 130.0, l.Y())
}

func TestLayout_TightFitStaysOnPage(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)
	l.skip(l.Capacity() - 101)

	require.NoError(t, l.Place(Block{Height: 100}))
	assert.Equal(t, 1, rec.PageCount())
}

func TestLayout_OverflowOnFreshPage(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)
	l.skip(10)

	drawn := false
	err := l.Place(Block{
		Height: l.Capacity() + 1,
		Draw: func(y float64) float64 {
			drawn = true
			return y
		},
	})
	require.ErrorIs(t, err, domain.ErrLayoutOverflow)
	assert.False(t, drawn)
	assert.Equal(t, 2, rec.PageCount(), "exactly one page is tried before giving up")
}

func TestLayout_OverflowAfterHeader(t *testing.T) {
	rec := newRecorder()
	l := NewLayout(rec, 30)
	l.skip(500)

	err := l.Place(Block{
		Height: l.Capacity() - 20,
		Header: func(y float64) float64 { return y + 55 },
	})
	assert.ErrorIs(t, err, domain.ErrLayoutOverflow)
}

func TestLayout_RejectsInvalidHeight(t *testing.T) {
	l := NewLayout(newRecorder(), 30)
	assert.ErrorIs(t, l.Place(Block{Height: -1}), domain.ErrLayoutOverflow)
}

func TestCheckColumns(t *testing.T) {
	assert.NoError(t, checkColumns(invoiceColumns, a4Width-2*invoiceMargin))
	assert.NoError(t, checkColumns(taxColumns, a4Width-2*invoiceMargin))
	assert.NoError(t, checkColumns(quotationColumns, a4Width-2*quotationMargin))
	assert.Error(t, checkColumns([]float64{100, 100}, 535.28))
	assert.Error(t, checkColumns([]float64{535.28, 0}, 535.28))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "05/03/2025", displayDate("2025-03-05"))
	assert.Equal(t, "05/03/2025", displayDate("2025-03-05T10:00:00Z"))
	assert.Equal(t, "5th March", displayDate("5th March"))
}
