package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructorsAndAccessors(t *testing.T) {
	t.Run("trigger", func(t *testing.T) {
		v := Trigger()
		assert.Equal(t, KindTrigger, v.Kind())
	})

	t.Run("toggle", func(t *testing.T) {
		v := Toggle(true)
		got, ok := v.AsToggle()
		require.True(t, ok)
		assert.True(t, got)
	})

	t.Run("count", func(t *testing.T) {
		v := Count(42)
		got, ok := v.AsCount()
		require.True(t, ok)
		assert.Equal(t, int64(42), got)
	})

	t.Run("constrained magnitude", func(t *testing.T) {
		v := ConstrainedMagnitude(1 << 31)
		got, ok := v.AsConstrainedMagnitude()
		require.True(t, ok)
		assert.Equal(t, uint32(1<<31), got)
	})

	t.Run("unconstrained magnitude", func(t *testing.T) {
		v := UnconstrainedMagnitude(-1.5)
		got, ok := v.AsUnconstrainedMagnitude()
		require.True(t, ok)
		assert.Equal(t, -1.5, got)
	})

	t.Run("color", func(t *testing.T) {
		c := Color{R: 1, G: 2, B: 3, A: 4}
		v := ColorValue(c)
		got, ok := v.AsColor()
		require.True(t, ok)
		assert.Equal(t, c, got)
	})

	t.Run("text", func(t *testing.T) {
		v := Text("hello")
		got, ok := v.AsText()
		require.True(t, ok)
		assert.Equal(t, "hello", got)
	})

	t.Run("shader handles", func(t *testing.T) {
		for _, v := range []Value{Shader1D(1), Shader2D(2), Shader3D(3)} {
			handle, ok := v.AsShaderHandle()
			require.True(t, ok)
			assert.NotZero(t, handle)
		}
	})

	t.Run("wrong accessor returns not-ok", func(t *testing.T) {
		v := Count(1)
		_, ok := v.AsText()
		assert.False(t, ok)
	})
}

func TestValueBitmapsAreDeepCopied(t *testing.T) {
	row := []Color{{R: 1}, {R: 2}}
	v := Bitmap1D(row)
	row[0].R = 99

	got, ok := v.AsBitmap1D()
	require.True(t, ok)
	assert.Equal(t, uint16(1), got[0].R, "mutating the source slice must not affect the stored Value")

	clone := v.Clone()
	cloneRow, _ := clone.AsBitmap1D()
	cloneRow[0].R = 7
	got2, _ := v.AsBitmap1D()
	assert.Equal(t, uint16(1), got2[0].R, "mutating a clone must not affect the original")
}

func TestValueBitmap2D(t *testing.T) {
	rows := [][]Color{{{R: 1}}, {{R: 2}, {R: 3}}}
	v := Bitmap2D(rows)
	got, ok := v.AsBitmap2D()
	require.True(t, ok)
	assert.Len(t, got, 2)
	assert.Len(t, got[1], 2)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Count(1).Equal(Count(1)))
	assert.False(t, Count(1).Equal(Count(2)))
	assert.False(t, Count(1).Equal(Toggle(true)), "different kinds are never equal")
	assert.True(t, Trigger().Equal(Trigger()))
	assert.True(t, Bitmap1D([]Color{{R: 1}}).Equal(Bitmap1D([]Color{{R: 1}})))
	assert.False(t, Bitmap1D([]Color{{R: 1}}).Equal(Bitmap1D([]Color{{R: 2}})))
	assert.True(t, Bitmap2D([][]Color{{{R: 1}}}).Equal(Bitmap2D([][]Color{{{R: 1}}})))
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "count", KindCount.String())
	assert.Equal(t, "bitmap_2d", KindBitmap2D.String())
}
