package core

// TransientArena is a per-frame bump allocator over vertex or index
// memory. Allocations are aligned to their element size and live until
// Reset.
type TransientArena struct {
	buf  []byte
	used uint32
}

func NewTransientArena(size uint32) *TransientArena {
	return &TransientArena{buf: make([]byte, size)}
}

func alignUp(v, a uint32) uint32 {
	if a <= 1 {
		return v
	}
	return (v + a - 1) / a * a
}

// Avail returns how many of num elements of elemSize bytes still fit.
func (a *TransientArena) Avail(num, elemSize uint32) uint32 {
	if elemSize == 0 {
		return 0
	}
	off := alignUp(a.used, elemSize)
	if off >= uint32(len(a.buf)) {
		return 0
	}
	return min(num, (uint32(len(a.buf))-off)/elemSize)
}

// Alloc reserves up to num elements and returns their memory and the
// index of the first element. Fewer are granted when the arena is short.
func (a *TransientArena) Alloc(num, elemSize uint32) (data []byte, first uint32) {
	num = a.Avail(num, elemSize)
	if num == 0 {
		return nil, 0
	}
	off := alignUp(a.used, elemSize)
	end := off + num*elemSize
	a.used = end
	return a.buf[off:end:end], off / elemSize
}

// Used returns the written prefix of the arena.
func (a *TransientArena) Used() []byte { return a.buf[:a.used] }

func (a *TransientArena) Size() uint32 { return uint32(len(a.buf)) }

func (a *TransientArena) Reset() { a.used = 0 }

// IndexSize is the byte width of one index.
func IndexSize(index32 bool) uint32 {
	if index32 {
		return 4
	}
	return 2
}
