package sfx

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/remeh/sizedwaitgroup"
)

// SampleRate is the rate of the shared audio context.
const SampleRate = 44100

// maxVoices bounds how many cues may overlap.
const maxVoices = 16

// Spec describes one cue file and its base volume.
type Spec struct {
	Cue    Cue
	Path   string
	Volume float64
}

// Catalog is the built-in cue list, relative to the asset root.
var Catalog = []Spec{
	{Cue: Join, Path: "sounds/snd_join.wav", Volume: 0.2},
	{Cue: Countdown, Path: "sounds/snd_countdown.wav", Volume: 0.25},
	{Cue: CountdownGo, Path: "sounds/snd_countdown_go.wav", Volume: 0.25},
	{Cue: Win, Path: "sounds/snd_win.wav", Volume: 0.25},
}

type clip struct {
	pcm    []byte
	volume float64
}

// Bank holds decoded cues and plays them on an ebiten audio context.
type Bank struct {
	ctx    *audio.Context
	logger *log.Logger

	mu     sync.Mutex
	clips  map[Cue]clip
	voices []*audio.Player
	master float64
	muted  bool
}

// LoadBank decodes every spec in parallel. Cues whose file is missing stay
// silent.
func LoadBank(ctx *audio.Context, fsys fs.FS, specs []Spec, logger *log.Logger) *Bank {
	if logger == nil {
		logger = log.Default()
	}
	b := &Bank{ctx: ctx, logger: logger, clips: make(map[Cue]clip, len(specs)), master: 1}
	if ctx == nil || fsys == nil {
		return b
	}

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, sp := range specs {
		wg.Add()
		go func(sp Spec) {
			defer wg.Done()
			pcm, err := decodeWAV(fsys, sp.Path, ctx.SampleRate())
			if err != nil {
				logger.Printf("sound %s: %v", sp.Cue, err)
				return
			}
			b.mu.Lock()
			b.clips[sp.Cue] = clip{pcm: pcm, volume: sp.Volume}
			b.mu.Unlock()
		}(sp)
	}
	wg.Wait()
	return b
}

func decodeWAV(fsys fs.FS, path string, rate int) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(rate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return pcm, nil
}

// SetVolume sets the master multiplier, clamped to [0, 1].
func (b *Bank) SetVolume(v float64) {
	b.mu.Lock()
	b.master = min(max(v, 0), 1)
	b.mu.Unlock()
}

// SetMuted silences future cues.
func (b *Bank) SetMuted(m bool) {
	b.mu.Lock()
	b.muted = m
	b.mu.Unlock()
}

// Play starts c without waiting for it to finish.
func (b *Bank) Play(c Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || b.ctx == nil {
		return
	}
	cl, ok := b.clips[c]
	if !ok {
		return
	}

	live := b.voices[:0]
	for _, p := range b.voices {
		if p.IsPlaying() {
			live = append(live, p)
		} else {
			_ = p.Close()
		}
	}
	b.voices = live
	if len(b.voices) >= maxVoices {
		return
	}

	p := b.ctx.NewPlayerFromBytes(cl.pcm)
	p.SetVolume(cl.volume * b.master)
	p.Play()
	b.voices = append(b.voices, p)
}

// Close stops every playing cue.
func (b *Bank) Close() {
	b.mu.Lock()
	for _, p := range b.voices {
		_ = p.Close()
	}
	b.voices = nil
	b.mu.Unlock()
}
