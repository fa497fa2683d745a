package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MoveTowards moves current towards target by at most maxDelta. The result never overshoots target.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target < current {
		return current - maxDelta
	}
	return current + maxDelta
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// ClampInt clamps the given value to the given range.
func ClampInt(num, min, max int) int {
	if num < min {
		return min
	}
	if num > max {
		return max
	}
	return num
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// SafeNormalize returns the unit vector of v. If v is too short to have a direction, the zero vector
// and false are returned.
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l <= NormalizeEpsilon {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Normalized returns the unit vector of v, or the zero vector if v has no direction.
func Normalized(v mgl32.Vec3) mgl32.Vec3 {
	n, _ := SafeNormalize(v)
	return n
}

// ProjectOnPlane removes the component of v along normal. normal is expected to be a unit vector.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

// ClampMagnitude2 shortens v to max if it is longer than max.
func ClampMagnitude2(v mgl32.Vec2, max float32) mgl32.Vec2 {
	if l := v.Len(); l > max && l > 0 {
		return v.Mul(max / l)
	}
	return v
}

// HorizontalBasis returns the forward and right vectors on the ground plane for a yaw in degrees.
// A yaw of zero faces +Z with +X on the right, positive yaw turns clockwise seen from above.
func HorizontalBasis(yaw float32) (forward, right mgl32.Vec3) {
	rad := mgl32.DegToRad(yaw)
	sin, cos := math32.Sin(rad), math32.Cos(rad)
	return mgl32.Vec3{sin, 0, cos}, mgl32.Vec3{cos, 0, -sin}
}
