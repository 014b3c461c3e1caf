//go:build imgui_idx32

package imgui

// DrawIdx is the index type of every draw list in this build.
type DrawIdx = uint32

// DrawIdxSize is the byte width of DrawIdx.
const DrawIdxSize = 4
