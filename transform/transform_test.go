package transform_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/wherewasi/transform"
)

func TestIdentity(t *testing.T) {
	id := transform.Identity()
	assert.Equal(t, mgl32.Vec3{}, id.Translation)
	assert.Equal(t, mgl32.QuatIdent(), id.Rotation)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, id.Scale)
	assert.True(t, id.Matrix().ApproxEqual(mgl32.Ident4()))
}

func TestFromXYZ(t *testing.T) {
	tr := transform.FromXYZ(1, 2, 3)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Translation)
	assert.Equal(t, mgl32.QuatIdent(), tr.Rotation)

	col := tr.Matrix().Col(3)
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, col)
}

func TestTranslateAndRotate(t *testing.T) {
	tr := transform.Identity()
	tr.Translate(mgl32.Vec3{0, 1, 0})
	tr.Translate(mgl32.Vec3{2, 0, 0})
	assert.Equal(t, mgl32.Vec3{2, 1, 0}, tr.Translation)

	tr.Rotate(mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0}))
	forward := tr.Forward()
	assert.InDelta(t, -1, forward.X(), 1e-5)
	assert.InDelta(t, 0, forward.Z(), 1e-5)
}

func TestLookingAt(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}

	t.Run("along z", func(t *testing.T) {
		tr := transform.FromXYZ(0, 0, 10).LookingAt(mgl32.Vec3{}, up)
		assert.True(t, tr.Forward().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5))
	})

	t.Run("diagonal", func(t *testing.T) {
		eye := mgl32.Vec3{10, 10, 10}
		tr := transform.FromTranslation(eye).LookingAt(mgl32.Vec3{}, up)

		want := mgl32.Quat{W: 0.88047624, V: mgl32.Vec3{-0.27984813, 0.36470526, 0.11591691}}
		assert.True(t, tr.Rotation.ApproxEqualThreshold(want, 1e-5), "rotation %v", tr.Rotation)

		forward := eye.Mul(-1).Normalize()
		assert.True(t, tr.Forward().ApproxEqualThreshold(forward, 1e-5), "forward %v", tr.Forward())
		assert.Equal(t, eye, tr.Translation)
	})

	t.Run("off axis target", func(t *testing.T) {
		eye := mgl32.Vec3{-3, 2, 7}
		target := mgl32.Vec3{4, -1, 0.5}
		tr := transform.FromTranslation(eye).LookingAt(target, up)

		forward := target.Sub(eye).Normalize()
		assert.True(t, tr.Forward().ApproxEqualThreshold(forward, 1e-5), "forward %v", tr.Forward())
		assert.InDelta(t, 0, tr.Rotation.Rotate(mgl32.Vec3{1, 0, 0}).Y(), 1e-5, "no roll")
	})

	t.Run("up parallel to view", func(t *testing.T) {
		tr := transform.FromXYZ(0, 5, 0).LookingAt(mgl32.Vec3{}, up)
		assert.True(t, tr.Forward().ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-5), "forward %v", tr.Forward())
	})

	t.Run("target at eye", func(t *testing.T) {
		tr := transform.FromXYZ(1, 2, 3).LookingAt(mgl32.Vec3{1, 2, 3}, up)
		assert.Equal(t, mgl32.QuatIdent(), tr.Rotation)
	})
}

func TestApproxEqual(t *testing.T) {
	a := transform.FromXYZ(1, 2, 3)
	b := transform.FromXYZ(1, 2, 3.0000001)
	c := transform.FromXYZ(1, 2, 4)

	assert.True(t, a.ApproxEqual(b, 1e-5))
	assert.False(t, a.ApproxEqual(c, 1e-5))
	assert.False(t, a.ApproxEqual(a.WithScale(mgl32.Vec3{2, 2, 2}), 1e-5))
}
