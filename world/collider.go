package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
	"github.com/oomph-ac/yamato/locomotion"
)

const (
	// LayerDefault is the layer of colliders that were not given one.
	LayerDefault uint32 = 1 << iota
	// LayerNoSnap is a layer meant for surfaces the ground snap probe should ignore.
	LayerNoSnap
)

// ContactSkin is the gap within which a body still counts as touching a collider.
const ContactSkin = float32(0.01)

// Collider is a static shape in a World.
type Collider interface {
	// Layer returns the collision layer bit of the collider.
	Layer() uint32
	// Raycast returns the point where the ray from origin along the unit vector direction enters the
	// collider, if it does within maxDistance.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (locomotion.RaycastHit, bool)
	// Contact returns the closest point of the collider to a sphere and how deep the sphere
	// penetrates it. A negative depth is a gap between the two. false is returned if the sphere is
	// farther away than ContactSkin.
	Contact(center mgl32.Vec3, radius float32) (locomotion.ContactPoint, float32, bool)
}

// BoxCollider is an axis aligned box.
type BoxCollider struct {
	BBox  cube.BBox
	layer uint32
}

// NewBox creates a box collider spanning min to max on the layer passed. A layer of zero places the
// box on LayerDefault.
func NewBox(min, max mgl32.Vec3, layer uint32) *BoxCollider {
	if layer == 0 {
		layer = LayerDefault
	}
	return &BoxCollider{
		BBox:  cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z()),
		layer: layer,
	}
}

func (b *BoxCollider) Layer() uint32 {
	return b.layer
}

func (b *BoxCollider) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (locomotion.RaycastHit, bool) {
	if within(b.BBox, origin) {
		return locomotion.RaycastHit{}, false
	}
	result, ok := trace.BBoxIntercept(b.BBox, origin, origin.Add(direction.Mul(maxDistance)))
	if !ok {
		return locomotion.RaycastHit{}, false
	}
	return locomotion.RaycastHit{
		Point:    result.Position(),
		Normal:   faceNormal(result.Face()),
		Distance: result.Position().Sub(origin).Len(),
	}, true
}

func (b *BoxCollider) Contact(center mgl32.Vec3, radius float32) (locomotion.ContactPoint, float32, bool) {
	min, max := b.BBox.Min(), b.BBox.Max()
	closest := mgl32.Vec3{
		game.ClampFloat(center.X(), min.X(), max.X()),
		game.ClampFloat(center.Y(), min.Y(), max.Y()),
		game.ClampFloat(center.Z(), min.Z(), max.Z()),
	}

	if normal, ok := game.SafeNormalize(center.Sub(closest)); ok {
		dist := center.Sub(closest).Len()
		if dist > radius+ContactSkin {
			return locomotion.ContactPoint{}, 0, false
		}
		return locomotion.ContactPoint{Point: closest, Normal: normal}, radius - dist, true
	}

	// The center is inside of the box: push out through the nearest face.
	faces := [6]struct {
		dist   float32
		normal mgl32.Vec3
	}{
		{center.X() - min.X(), mgl32.Vec3{-1, 0, 0}},
		{max.X() - center.X(), mgl32.Vec3{1, 0, 0}},
		{center.Y() - min.Y(), mgl32.Vec3{0, -1, 0}},
		{max.Y() - center.Y(), mgl32.Vec3{0, 1, 0}},
		{center.Z() - min.Z(), mgl32.Vec3{0, 0, -1}},
		{max.Z() - center.Z(), mgl32.Vec3{0, 0, 1}},
	}
	nearest := faces[0]
	for _, f := range faces[1:] {
		if f.dist < nearest.dist {
			nearest = f
		}
	}
	return locomotion.ContactPoint{
		Point:  center.Add(nearest.normal.Mul(nearest.dist)),
		Normal: nearest.normal,
	}, radius + nearest.dist, true
}

// SlopeCollider is a one-sided plane, such as a ramp or a wall, limited to the part of it inside of
// a bounding box. Only its front side, the side its normal points to, collides.
type SlopeCollider struct {
	Origin mgl32.Vec3
	Normal mgl32.Vec3
	Bounds cube.BBox
	layer  uint32
}

// NewSlope creates a slope through origin with the normal passed, limited to bounds. The normal is
// normalized, and the slope is placed on LayerDefault if layer is zero.
func NewSlope(origin, normal mgl32.Vec3, bounds cube.BBox, layer uint32) *SlopeCollider {
	if layer == 0 {
		layer = LayerDefault
	}
	n, ok := game.SafeNormalize(normal)
	if !ok {
		n = game.Up
	}
	return &SlopeCollider{Origin: origin, Normal: n, Bounds: bounds, layer: layer}
}

// NewRamp creates a slope rising along +Z by angle degrees, starting at the edge at start and
// spanning width along X and length along Z on the ground plane.
func NewRamp(start mgl32.Vec3, width, length, angle float32, layer uint32) *SlopeCollider {
	rad := mgl32.DegToRad(angle)
	height := length * math32.Tan(rad)
	normal := mgl32.Vec3{0, math32.Cos(rad), -math32.Sin(rad)}
	bounds := cube.Box(start.X(), start.Y(), start.Z(), start.X()+width, start.Y()+height, start.Z()+length)
	return NewSlope(start, normal, bounds, layer)
}

func (s *SlopeCollider) Layer() uint32 {
	return s.layer
}

func (s *SlopeCollider) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (locomotion.RaycastHit, bool) {
	denom := direction.Dot(s.Normal)
	if denom >= 0 {
		// Parallel to the slope or coming from behind it.
		return locomotion.RaycastHit{}, false
	}
	dist := s.Origin.Sub(origin).Dot(s.Normal) / denom
	if dist < 0 || dist > maxDistance {
		return locomotion.RaycastHit{}, false
	}
	point := origin.Add(direction.Mul(dist))
	if !within(s.Bounds, point) {
		return locomotion.RaycastHit{}, false
	}
	return locomotion.RaycastHit{Point: point, Normal: s.Normal, Distance: dist}, true
}

func (s *SlopeCollider) Contact(center mgl32.Vec3, radius float32) (locomotion.ContactPoint, float32, bool) {
	dist := center.Sub(s.Origin).Dot(s.Normal)
	// A sphere whose center went behind the plane is not pulled through it.
	if dist > radius+ContactSkin || dist < -radius {
		return locomotion.ContactPoint{}, 0, false
	}
	point := center.Sub(s.Normal.Mul(dist))
	if !within(s.Bounds, point) {
		return locomotion.ContactPoint{}, 0, false
	}
	return locomotion.ContactPoint{Point: point, Normal: s.Normal}, radius - dist, true
}

// within checks if v is inside of bb, allowing for a small tolerance on every side.
func within(bb cube.BBox, v mgl32.Vec3) bool {
	const eps = 1e-4
	min, max := bb.Min(), bb.Max()
	return v.X() >= min.X()-eps && v.X() <= max.X()+eps &&
		v.Y() >= min.Y()-eps && v.Y() <= max.Y()+eps &&
		v.Z() >= min.Z()-eps && v.Z() <= max.Z()+eps
}

// faceNormal returns the outward unit normal of a box face.
func faceNormal(f cube.Face) mgl32.Vec3 {
	switch f {
	case cube.FaceDown:
		return game.Down
	case cube.FaceUp:
		return game.Up
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return game.Forward
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	case cube.FaceEast:
		return game.Right
	}
	return game.Up
}
