package core

import "fmt"

// Attrib names a vertex input slot. The numeric value doubles as the
// shader attribute location.
type Attrib uint8

const (
	AttribPosition Attrib = iota
	AttribNormal
	AttribTangent
	AttribColor0
	AttribTexCoord0
	AttribTexCoord1
	AttribCount
)

var attribNames = [AttribCount]string{
	AttribPosition:  "a_position",
	AttribNormal:    "a_normal",
	AttribTangent:   "a_tangent",
	AttribColor0:    "a_color0",
	AttribTexCoord0: "a_texcoord0",
	AttribTexCoord1: "a_texcoord1",
}

// Name returns the shader-side identifier bound to this attribute.
func (a Attrib) Name() string {
	if a >= AttribCount {
		return fmt.Sprintf("a_attrib%d", a)
	}
	return attribNames[a]
}

type AttribType uint8

const (
	AttribUint8 AttribType = iota
	AttribInt16
	AttribFloat32
)

// Size is the byte width of one component.
func (t AttribType) Size() uint16 {
	switch t {
	case AttribUint8:
		return 1
	case AttribInt16:
		return 2
	default:
		return 4
	}
}

type VertexAttrib struct {
	Location   Attrib
	Size       uint8 // components
	Type       AttribType
	Offset     uint16 // bytes
	Normalized bool
	AsInt      bool
}

// VertexLayout describes an interleaved vertex. Build it with Begin, Add
// and End; attributes are packed tightly in the order they are added.
type VertexLayout struct {
	Stride     uint16
	Attributes []VertexAttrib
	building   bool
	done       bool
}

func (l *VertexLayout) Begin() *VertexLayout {
	l.Stride = 0
	l.Attributes = l.Attributes[:0]
	l.building = true
	l.done = false
	return l
}

func (l *VertexLayout) Add(a Attrib, num uint8, typ AttribType, normalized, asInt bool) *VertexLayout {
	if !l.building {
		panic("core: VertexLayout.Add outside Begin/End")
	}
	l.Attributes = append(l.Attributes, VertexAttrib{
		Location:   a,
		Size:       num,
		Type:       typ,
		Offset:     l.Stride,
		Normalized: normalized,
		AsInt:      asInt,
	})
	l.Stride += uint16(num) * typ.Size()
	return l
}

func (l *VertexLayout) End() {
	l.building = false
	l.done = true
}

// Valid reports whether End was called on a non-empty layout.
func (l *VertexLayout) Valid() bool { return l != nil && l.done && l.Stride > 0 }

// Attribute finds the attribute bound to a, if any.
func (l *VertexLayout) Attribute(a Attrib) (VertexAttrib, bool) {
	for _, at := range l.Attributes {
		if at.Location == a {
			return at, true
		}
	}
	return VertexAttrib{}, false
}
