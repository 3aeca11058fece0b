package gfx

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
)

func defaultFontSource() *text.GoTextFaceSource {
	fontOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("load font: %v", err)
			return
		}
		fontSource = s
	})
	return fontSource
}

// ScreenCanvas draws onto an ebiten image in logical game pixels.
type ScreenCanvas struct {
	dst  *ebiten.Image
	face *text.GoTextFace
}

// NewScreenCanvas wraps dst. fontSize is in logical pixels.
func NewScreenCanvas(dst *ebiten.Image, fontSize float64) *ScreenCanvas {
	c := &ScreenCanvas{dst: dst}
	if src := defaultFontSource(); src != nil {
		c.face = &text.GoTextFace{Source: src, Size: fontSize}
	}
	return c
}

func (c *ScreenCanvas) Fill(col color.Color) {
	c.dst.Fill(col)
}

func (c *ScreenCanvas) FillRect(x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *ScreenCanvas) DrawSprite(s *Sprite, frame int, op SpriteOp) {
	img := s.Image()
	if img == nil {
		return
	}
	sx := s.frameOffset(frame)
	sub, ok := img.SubImage(image.Rect(sx, 0, sx+s.FrameW, s.FrameH)).(*ebiten.Image)
	if !ok {
		return
	}
	w, h := op.W, op.H
	if w == 0 {
		w = float64(s.FrameW)
	}
	if h == 0 {
		h = float64(s.FrameH)
	}

	dop := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest, DisableMipmaps: true}
	dop.GeoM.Translate(-float64(s.FrameW)/2, -float64(s.FrameH)/2)
	dop.GeoM.Scale(w/float64(s.FrameW), h/float64(s.FrameH))
	if op.Rotation != 0 {
		dop.GeoM.Rotate(op.Rotation)
	}
	dop.GeoM.Translate(op.X, op.Y)
	c.dst.DrawImage(sub, dop)
}

func (c *ScreenCanvas) DrawText(s string, x, y float64, col color.Color) {
	if c.face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, s, c.face, op)
}

func (c *ScreenCanvas) TextWidth(s string) float64 {
	if c.face == nil {
		return 0
	}
	w, _ := text.Measure(s, c.face, 0)
	return w
}
