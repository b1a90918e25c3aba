// Package transform holds the spatial state of an entity: where it is, which
// way it faces and how large it is.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is translation, rotation and scale in 3D. The zero value is not
// usable as an identity transform because its rotation and scale are zero;
// use Identity.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns a transform at the origin with no rotation and unit scale.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromXYZ returns an identity transform moved to (x, y, z).
func FromXYZ(x, y, z float32) Transform {
	return FromTranslation(mgl32.Vec3{x, y, z})
}

// FromTranslation returns an identity transform moved to v.
func FromTranslation(v mgl32.Vec3) Transform {
	t := Identity()
	t.Translation = v
	return t
}

// FromRotation returns an identity transform rotated by q.
func FromRotation(q mgl32.Quat) Transform {
	t := Identity()
	t.Rotation = q
	return t
}

// LookingAt returns t rotated so that Forward points from t.Translation to
// target, with its local Y as close to up as possible. t is returned
// unchanged when target is t.Translation. If up is parallel to the view
// direction another axis stands in for it.
func (t Transform) LookingAt(target, up mgl32.Vec3) Transform {
	back := t.Translation.Sub(target)
	if back.Len() < 1e-6 {
		return t
	}
	back = back.Normalize()

	right := up.Cross(back)
	if right.Len() < 1e-6 {
		alt := mgl32.Vec3{1, 0, 0}
		if math.Abs(float64(back.X())) > 0.9 {
			alt = mgl32.Vec3{0, 0, 1}
		}
		right = alt.Cross(back)
	}
	right = right.Normalize()

	basis := mgl32.Mat3FromCols(right, back.Cross(right), back)
	t.Rotation = mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
	return t
}

// WithScale returns t with its scale replaced.
func (t Transform) WithScale(s mgl32.Vec3) Transform {
	t.Scale = s
	return t
}

// Translate moves t by delta.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Translation = t.Translation.Add(delta)
}

// Rotate applies q on top of the current rotation.
func (t *Transform) Rotate(q mgl32.Quat) {
	t.Rotation = q.Mul(t.Rotation).Normalize()
}

// Forward returns the direction t faces.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Matrix returns the model matrix: translate * rotate * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// ApproxEqual compares each component of t and o within eps.
func (t Transform) ApproxEqual(o Transform, eps float32) bool {
	return t.Translation.ApproxEqualThreshold(o.Translation, eps) &&
		t.Rotation.ApproxEqualThreshold(o.Rotation, eps) &&
		t.Scale.ApproxEqualThreshold(o.Scale, eps)
}
