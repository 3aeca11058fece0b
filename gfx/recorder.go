package gfx

import "image/color"

// Op is one recorded canvas call.
type Op struct {
	Kind   string // "fill", "rect", "sprite" or "text"
	Sprite string
	Frame  int
	Text   string
	X, Y   float64
	W, H   float64
	Rot    float64
	Color  color.Color
}

// Recorder is a Canvas that keeps every call. Text is measured as six
// pixels per rune.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Fill(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawSprite(s *Sprite, frame int, op SpriteOp) {
	name := ""
	if s != nil {
		name = s.Name
	}
	r.Ops = append(r.Ops, Op{Kind: "sprite", Sprite: name, Frame: frame, X: op.X, Y: op.Y, W: op.W, H: op.H, Rot: op.Rotation})
}

func (r *Recorder) DrawText(s string, x, y float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", Text: s, X: x, Y: y, Color: c})
}

func (r *Recorder) TextWidth(s string) float64 {
	return float64(len([]rune(s)) * 6)
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Sprites returns recorded sprite calls for the named sprite.
func (r *Recorder) Sprites(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == "sprite" && op.Sprite == name {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}
