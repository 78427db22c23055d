// Package domain contains pure, dependency-free domain models and types
// for the compute-graph evaluation engine.
package domain

import "fmt"

// ValueKind names the variant carried by a Value, for declarations in
// InputDecl/OutputDecl and for error messages.
type ValueKind int

// Supported Value variants.
const (
	KindTrigger ValueKind = iota
	KindToggle
	KindCount
	KindConstrainedMagnitude
	KindUnconstrainedMagnitude
	KindColor
	KindText
	KindBitmap1D
	KindBitmap2D
	KindShader1D
	KindShader2D
	KindShader3D
)

// String implements fmt.Stringer for ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindTrigger:
		return "trigger"
	case KindToggle:
		return "toggle"
	case KindCount:
		return "count"
	case KindConstrainedMagnitude:
		return "constrained_magnitude"
	case KindUnconstrainedMagnitude:
		return "unconstrained_magnitude"
	case KindColor:
		return "color"
	case KindText:
		return "text"
	case KindBitmap1D:
		return "bitmap_1d"
	case KindBitmap2D:
		return "bitmap_2d"
	case KindShader1D:
		return "shader_1d"
	case KindShader2D:
		return "shader_2d"
	case KindShader3D:
		return "shader_3d"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Color is an RGBA color with 16 bits per channel, supporting HDR content
// and devices with color accuracy beyond that of most monitors.
type Color struct{ R, G, B, A uint16 }

// Value is a tagged union covering every kind of data that can flow on a
// wire between vertices. It is equality-comparable via Equal and cheaply
// clonable via Clone; large variants (Bitmap1D, Bitmap2D) carry heap-owned
// payloads that Clone deep-copies, all other variants are plain value types
// copied by assignment.
type Value struct {
	kind ValueKind

	b        bool
	i        int64
	u        uint32
	f        float64
	c        Color
	s        string
	bitmap1D []Color
	bitmap2D [][]Color
	shader   uint16
}

// Kind reports which variant this Value holds.
func (v Value) Kind() ValueKind { return v.kind }

// Trigger constructs a stateless trigger Value.
func Trigger() Value { return Value{kind: KindTrigger} }

// Toggle constructs a boolean toggle Value.
func Toggle(b bool) Value { return Value{kind: KindToggle, b: b} }

// Count constructs a 64-bit signed integer Value.
func Count(i int64) Value { return Value{kind: KindCount, i: i} }

// ConstrainedMagnitude constructs a fixed-point-fraction Value in [0,1],
// represented as a 32-bit unsigned integer over [0, math.MaxUint32].
func ConstrainedMagnitude(u uint32) Value { return Value{kind: KindConstrainedMagnitude, u: u} }

// UnconstrainedMagnitude constructs a float64 magnitude Value, which may
// fall outside [0,1] (inverted or over-driven).
func UnconstrainedMagnitude(f float64) Value { return Value{kind: KindUnconstrainedMagnitude, f: f} }

// ColorValue constructs an RGBA16 color Value.
func ColorValue(c Color) Value { return Value{kind: KindColor, c: c} }

// Text constructs a UTF-8 text Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bitmap1D constructs a 1-dimensional bitmap Value. The slice is copied so
// the caller may safely mutate it afterward.
func Bitmap1D(row []Color) Value {
	owned := make([]Color, len(row))
	copy(owned, row)
	return Value{kind: KindBitmap1D, bitmap1D: owned}
}

// Bitmap2D constructs a 2-dimensional bitmap Value. The rows are copied so
// the caller may safely mutate them afterward.
func Bitmap2D(rows [][]Color) Value {
	owned := make([][]Color, len(rows))
	for i, row := range rows {
		ownedRow := make([]Color, len(row))
		copy(ownedRow, row)
		owned[i] = ownedRow
	}
	return Value{kind: KindBitmap2D, bitmap2D: owned}
}

// Shader1D constructs a handle to an externally-registered 1-dimensional
// shader program. The core never dereferences this handle.
func Shader1D(handle uint16) Value { return Value{kind: KindShader1D, shader: handle} }

// Shader2D constructs a handle to an externally-registered 2-dimensional
// shader program.
func Shader2D(handle uint16) Value { return Value{kind: KindShader2D, shader: handle} }

// Shader3D constructs a handle to an externally-registered 3-dimensional
// shader program.
func Shader3D(handle uint16) Value { return Value{kind: KindShader3D, shader: handle} }

// AsToggle returns the boolean payload and true if this Value holds a
// Toggle, or false, false otherwise.
func (v Value) AsToggle() (bool, bool) { return v.b, v.kind == KindToggle }

// AsCount returns the int64 payload and true if this Value holds a Count.
func (v Value) AsCount() (int64, bool) { return v.i, v.kind == KindCount }

// AsConstrainedMagnitude returns the uint32 payload and true if this Value
// holds a ConstrainedMagnitude.
func (v Value) AsConstrainedMagnitude() (uint32, bool) {
	return v.u, v.kind == KindConstrainedMagnitude
}

// AsUnconstrainedMagnitude returns the float64 payload and true if this
// Value holds an UnconstrainedMagnitude.
func (v Value) AsUnconstrainedMagnitude() (float64, bool) {
	return v.f, v.kind == KindUnconstrainedMagnitude
}

// AsColor returns the Color payload and true if this Value holds a Color.
func (v Value) AsColor() (Color, bool) { return v.c, v.kind == KindColor }

// AsText returns the string payload and true if this Value holds Text.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsBitmap1D returns the row payload and true if this Value holds a
// Bitmap1D. The returned slice aliases the Value's internal storage and
// must not be mutated by the caller; use Clone first if mutation is needed.
func (v Value) AsBitmap1D() ([]Color, bool) { return v.bitmap1D, v.kind == KindBitmap1D }

// AsBitmap2D returns the rows payload and true if this Value holds a
// Bitmap2D. The returned slices alias the Value's internal storage and
// must not be mutated by the caller; use Clone first if mutation is needed.
func (v Value) AsBitmap2D() ([][]Color, bool) { return v.bitmap2D, v.kind == KindBitmap2D }

// AsShaderHandle returns the shader handle and true if this Value holds
// any of Shader1D, Shader2D, or Shader3D.
func (v Value) AsShaderHandle() (uint16, bool) {
	switch v.kind {
	case KindShader1D, KindShader2D, KindShader3D:
		return v.shader, true
	default:
		return 0, false
	}
}

// Equal reports whether two Values hold the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindTrigger:
		return true
	case KindToggle:
		return v.b == other.b
	case KindCount:
		return v.i == other.i
	case KindConstrainedMagnitude:
		return v.u == other.u
	case KindUnconstrainedMagnitude:
		return v.f == other.f
	case KindColor:
		return v.c == other.c
	case KindText:
		return v.s == other.s
	case KindBitmap1D:
		return equalRows(v.bitmap1D, other.bitmap1D)
	case KindBitmap2D:
		if len(v.bitmap2D) != len(other.bitmap2D) {
			return false
		}
		for i := range v.bitmap2D {
			if !equalRows(v.bitmap2D[i], other.bitmap2D[i]) {
				return false
			}
		}
		return true
	case KindShader1D, KindShader2D, KindShader3D:
		return v.shader == other.shader
	default:
		return false
	}
}

func equalRows(a, b []Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the Value. Bitmap1D and Bitmap2D
// payloads are deep-copied; every other variant is a plain value type and
// is copied by assignment.
func (v Value) Clone() Value {
	switch v.kind {
	case KindBitmap1D:
		return Bitmap1D(v.bitmap1D)
	case KindBitmap2D:
		return Bitmap2D(v.bitmap2D)
	default:
		return v
	}
}

// String renders the Value for logging and debugging.
func (v Value) String() string {
	switch v.kind {
	case KindTrigger:
		return "trigger()"
	case KindToggle:
		return fmt.Sprintf("toggle(%v)", v.b)
	case KindCount:
		return fmt.Sprintf("count(%d)", v.i)
	case KindConstrainedMagnitude:
		return fmt.Sprintf("constrained_magnitude(%d)", v.u)
	case KindUnconstrainedMagnitude:
		return fmt.Sprintf("unconstrained_magnitude(%g)", v.f)
	case KindColor:
		return fmt.Sprintf("color(%d,%d,%d,%d)", v.c.R, v.c.G, v.c.B, v.c.A)
	case KindText:
		return fmt.Sprintf("text(%q)", v.s)
	case KindBitmap1D:
		return fmt.Sprintf("bitmap1d(len=%d)", len(v.bitmap1D))
	case KindBitmap2D:
		return fmt.Sprintf("bitmap2d(rows=%d)", len(v.bitmap2D))
	case KindShader1D:
		return fmt.Sprintf("shader1d(#%d)", v.shader)
	case KindShader2D:
		return fmt.Sprintf("shader2d(#%d)", v.shader)
	case KindShader3D:
		return fmt.Sprintf("shader3d(#%d)", v.shader)
	default:
		return "value(invalid)"
	}
}
