package core

import "errors"

var ErrOutOfHandles = errors.New("core: out of handles")

// HandlePool hands out 16-bit handles, reusing released ones first.
type HandlePool struct {
	free []uint16
	next uint16
}

func (p *HandlePool) Alloc() (uint16, error) {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		return h, nil
	}
	if p.next == InvalidHandle {
		return 0, ErrOutOfHandles
	}
	h := p.next
	p.next++
	return h, nil
}

func (p *HandlePool) Release(h uint16) { p.free = append(p.free, h) }
