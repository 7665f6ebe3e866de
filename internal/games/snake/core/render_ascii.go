package core

import "strings"

// ASCII characters used by RenderASCII.
const (
	RuneEmpty = '.'
	RuneBody  = 'o'
	RuneHead  = 'O'
	RuneFood  = '*'
)

// Rune returns the ASCII character for a cell type.
func (t CellType) Rune() rune {
	switch t {
	case CellBody:
		return RuneBody
	case CellHead:
		return RuneHead
	case CellFood:
		return RuneFood
	default:
		return RuneEmpty
	}
}

// RenderASCII draws the grid one row per line.
// Used for debugging, board screenshots and golden tests.
func RenderASCII(g *Grid) string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[g.index(C(x, y))].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ASCIIRecorder is a Renderer that keeps every frame as text.
type ASCIIRecorder struct {
	Frames []string
}

// Render appends the current frame.
func (r *ASCIIRecorder) Render(g *Grid) {
	r.Frames = append(r.Frames, RenderASCII(g))
}

// Last returns the most recent frame, or "" if nothing was rendered.
func (r *ASCIIRecorder) Last() string {
	if len(r.Frames) == 0 {
		return ""
	}
	return r.Frames[len(r.Frames)-1]
}
