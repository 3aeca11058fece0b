package gfx

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"log"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// Spec describes one sprite sheet on disk.
type Spec struct {
	Name   string
	Path   string
	FrameW int
	FrameH int
	Frames int
	// Placeholder fills the sheet when the file is missing or unreadable.
	Placeholder color.Color
}

// Atlas resolves sprite names. Unknown names resolve to the fallback sprite.
type Atlas struct {
	sprites  map[string]*Sprite
	fallback string
}

// NewAtlas builds an atlas from already constructed sprites. fallback must
// name one of them.
func NewAtlas(fallback string, sprites ...*Sprite) *Atlas {
	a := &Atlas{sprites: make(map[string]*Sprite, len(sprites)), fallback: fallback}
	for _, s := range sprites {
		a.sprites[s.Name] = s
	}
	return a
}

// Lookup returns the named sprite, the fallback sprite when name is unknown,
// or nil when neither exists.
func (a *Atlas) Lookup(name string) *Sprite {
	if a == nil {
		return nil
	}
	return a.LookupOr(name, a.fallback)
}

// LookupOr is Lookup with a caller-chosen fallback, for names that belong to
// a family other than the atlas default, such as character bodies.
func (a *Atlas) LookupOr(name, fallback string) *Sprite {
	if a == nil {
		return nil
	}
	if s, ok := a.sprites[name]; ok {
		return s
	}
	return a.sprites[fallback]
}

// Has reports whether name is registered.
func (a *Atlas) Has(name string) bool {
	_, ok := a.sprites[name]
	return ok
}

// LoadAtlas decodes every spec from fsys in parallel and uploads the sheets.
// Missing files become placeholder blocks so the client stays usable without
// art assets.
func LoadAtlas(fsys fs.FS, specs []Spec, fallback string, logger *log.Logger) *Atlas {
	if logger == nil {
		logger = log.Default()
	}
	decoded, errs := decodeSheets(fsys, specs)
	sprites := make([]*Sprite, 0, len(specs))
	for i, sp := range specs {
		s := NewSprite(sp.Name, sp.FrameW, sp.FrameH, sp.Frames)
		if img := decoded[i]; img != nil {
			s.img = ebiten.NewImageFromImage(img)
		} else {
			if errs[i] != nil {
				logger.Printf("sprite %s: %v (using placeholder)", sp.Name, errs[i])
			}
			s.img = placeholder(sp)
		}
		sprites = append(sprites, s)
	}
	return NewAtlas(fallback, sprites...)
}

// decodeSheets reads and decodes specs concurrently. Results are indexed like
// specs; a nil image has a matching error.
func decodeSheets(fsys fs.FS, specs []Spec) ([]image.Image, []error) {
	imgs := make([]image.Image, len(specs))
	errs := make([]error, len(specs))
	var mu sync.Mutex

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for i, sp := range specs {
		wg.Add()
		go func(i int, sp Spec) {
			defer wg.Done()
			img, err := decodeSheet(fsys, sp)
			mu.Lock()
			imgs[i], errs[i] = img, err
			mu.Unlock()
		}(i, sp)
	}
	wg.Wait()
	return imgs, errs
}

func decodeSheet(fsys fs.FS, sp Spec) (image.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("no asset directory")
	}
	f, err := fsys.Open(sp.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", sp.Path, err)
	}
	return img, nil
}

func placeholder(sp Spec) *ebiten.Image {
	w, h := sp.FrameW*max(sp.Frames, 1), sp.FrameH
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	c := sp.Placeholder
	if c == nil {
		c = color.NRGBA{0xff, 0x00, 0xff, 0xff}
	}
	img.Fill(c)
	return img
}
