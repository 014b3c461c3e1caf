package core

// State packs per-draw pipeline flags: channel writes, blend equation,
// and multisampling. The blend factors occupy four 4-bit fields starting
// at stateBlendShift: src RGB, dst RGB, src alpha, dst alpha.
type State uint64

const (
	StateWriteR State = 1 << 0
	StateWriteG State = 1 << 1
	StateWriteB State = 1 << 2
	StateWriteA State = 1 << 3
	StateWriteZ State = 1 << 4

	StateWriteRGB = StateWriteR | StateWriteG | StateWriteB

	StateDepthTestLess State = 1 << 5
	StateCullCW        State = 1 << 6
	StateCullCCW       State = 1 << 7

	StateMSAA State = 1 << 56

	stateBlendShift = 12
	stateBlendMask  = State(0xFFFF) << stateBlendShift
)

// StateDefault mirrors what a device assumes when nothing is set.
const StateDefault = StateWriteRGB | StateWriteA | StateWriteZ | StateDepthTestLess | StateCullCW | StateMSAA

type BlendFactor uint8

const (
	BlendNone BlendFactor = iota
	BlendZero
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDstAlpha
	BlendInvDstAlpha
	BlendDstColor
	BlendInvDstColor
)

// BlendFunc applies the same src/dst factors to color and alpha.
func BlendFunc(src, dst BlendFactor) State {
	return BlendFuncSeparate(src, dst, src, dst)
}

// BlendFuncSeparate packs independent color and alpha factors.
func BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA BlendFactor) State {
	v := State(srcRGB&0xF) |
		State(dstRGB&0xF)<<4 |
		State(srcA&0xF)<<8 |
		State(dstA&0xF)<<12
	return v << stateBlendShift
}

// Blend unpacks the factors set by BlendFuncSeparate. ok is false when no
// blending was requested.
func (s State) Blend() (srcRGB, dstRGB, srcA, dstA BlendFactor, ok bool) {
	v := (s & stateBlendMask) >> stateBlendShift
	if v == 0 {
		return 0, 0, 0, 0, false
	}
	return BlendFactor(v & 0xF), BlendFactor(v >> 4 & 0xF), BlendFactor(v >> 8 & 0xF), BlendFactor(v >> 12 & 0xF), true
}

// Has reports whether every bit of f is set.
func (s State) Has(f State) bool { return s&f == f }
