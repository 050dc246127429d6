package pdf

import (
	"io"
	"math"
	"strings"
)

type textCall struct {
	page int
	text string
	x, y float64
	opts TextOptions
}

// recorder is a Canvas that measures text with a fixed glyph width and
// records what was drawn on which page.
type recorder struct {
	pages    int
	fontSize float64
	texts    []textCall
	rects    int
	maxY     []float64
}

func newRecorder() *recorder {
	return &recorder{fontSize: 10}
}

func (r *recorder) AddPage() {
	r.pages++
	r.maxY = append(r.maxY, 0)
}

func (r *recorder) PageSize() (float64, float64) { return a4Width, a4Height }

func (r *recorder) SetFont(_ string, size float64) { r.fontSize = size }

func (r *recorder) SetStrokeColor(_, _, _ int) {}

func (r *recorder) Image(string, float64, float64, float64) (float64, error) {
	return 40, nil
}

func (r *recorder) PageCount() int { return r.pages }

func (r *recorder) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

func (r *recorder) track(y float64) {
	if y > r.maxY[r.pages-1] {
		r.maxY[r.pages-1] = y
	}
}

func (r *recorder) Rect(_, y, _, h float64) {
	r.rects++
	r.track(y + h)
}

func (r *recorder) Line(_, y1, _, y2 float64) {
	r.track(math.Max(y1, y2))
}

func (r *recorder) lineHeight() float64 { return r.fontSize * lineSpacing }

func (r *recorder) Text(s string, x, y float64, opts TextOptions) {
	r.texts = append(r.texts, textCall{page: r.pages, text: s, x: x, y: y, opts: opts})
	r.track(y + r.TextHeight(s, opts.Width))
}

// TextHeight wraps on whole words assuming every glyph is half the font size wide.
func (r *recorder) TextHeight(s string, width float64) float64 {
	if s == "" {
		return 0
	}
	glyph := r.fontSize * 0.5
	lines := 0
	for _, para := range strings.Split(s, "\n") {
		if width <= 0 {
			lines++
			continue
		}
		perLine := int((width - 2*cellPadding) / glyph)
		if perLine < 1 {
			perLine = 1
		}
		n, used := 1, 0
		for _, word := range strings.Fields(para) {
			need := len(word)
			if used > 0 {
				need++
			}
			if used+need > perLine && used > 0 {
				n++
				used = len(word)
				continue
			}
			used += need
		}
		lines += n
	}
	return float64(lines) * r.lineHeight()
}

func (r *recorder) count(text string) int {
	n := 0
	for _, t := range r.texts {
		if t.text == text {
			n++
		}
	}
	return n
}

func (r *recorder) pagesWith(text string) map[int]int {
	out := map[int]int{}
	for _, t := range r.texts {
		if t.text == text {
			out[t.page]++
		}
	}
	return out
}

func (r *recorder) pagesWithPrefix(prefix string) map[int]bool {
	out := map[int]bool{}
	for _, t := range r.texts {
		if strings.HasPrefix(t.text, prefix) {
			out[t.page] = true
		}
	}
	return out
}
