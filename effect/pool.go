package effect

import "crossyview/gfx"

// Pool owns live effects in insertion order. Insertion order is draw order.
type Pool struct {
	effects []Effect
}

// Add appends e. Effects added while Step is running are processed by that
// same Step.
func (p *Pool) Add(e Effect) {
	if e == nil {
		return
	}
	p.effects = append(p.effects, e)
}

// Step ticks then draws every effect once, in insertion order, and only
// afterwards drops the ones that are no longer alive. Each effect's Draw
// decides whether it paints anything on its last frame.
func (p *Pool) Step(c gfx.Canvas) {
	// Index loop so effects appended by a Draw are still visited.
	for i := 0; i < len(p.effects); i++ {
		e := p.effects[i]
		e.Tick()
		e.Draw(c)
	}
	live := p.effects[:0]
	for _, e := range p.effects {
		if e.Alive() {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(p.effects); i++ {
		p.effects[i] = nil
	}
	p.effects = live
}

// Len reports the number of live effects.
func (p *Pool) Len() int { return len(p.effects) }

// Reset drops every effect.
func (p *Pool) Reset() {
	clear(p.effects)
	p.effects = p.effects[:0]
}
