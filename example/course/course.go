package main

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/world"
)

const characterRadius = float32(0.5)

// buildCourse returns a world with a floor, a ramp, a gap to jump over and a steep wall.
func buildCourse(gravity float32) *world.World {
	w := world.New(mgl32.Vec3{0, gravity, 0})
	w.AddCollider(
		// Floor up to the gap, and the landing past it.
		world.NewBox(mgl32.Vec3{-10, -1, -5}, mgl32.Vec3{10, 0, 30}, 0),
		world.NewBox(mgl32.Vec3{-10, -1, 32.5}, mgl32.Vec3{10, 0, 60}, 0),
		// A gentle ramp onto a platform.
		world.NewRamp(mgl32.Vec3{-2, 0, 8}, 4, 4, 20, 0),
		world.NewBox(mgl32.Vec3{-2, 0, 12}, mgl32.Vec3{2, 4*tan20, 16}, 0),
		// A steep wall to the right of the track, which the snap probe ignores.
		world.NewSlope(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{-1, 0, 0}, cube.Box(3, 0, 18, 3, 6, 28), world.LayerNoSnap),
		// The end of the course.
		world.NewBox(mgl32.Vec3{-10, 0, 60}, mgl32.Vec3{10, 5, 61}, 0),
	)
	return w
}

// tan20 is the tangent of the ramp angle.
const tan20 = float32(0.36397023)

// timeline returns the scripted input of the character at time t, in seconds.
func timeline(t float32) locomotion.InputState {
	in := locomotion.InputState{Move: mgl32.Vec2{0, 1}}
	switch {
	case t < 0.5:
		in.Move = mgl32.Vec2{}
	case t >= 2.9 && t < 2.92:
		// Over the gap.
		in.Jump = true
	case t >= 3.4 && t < 3.6:
		// Drift towards the wall and jump off it.
		in.Move = mgl32.Vec2{1, 1}
	case t >= 3.6 && t < 3.62:
		in.Move = mgl32.Vec2{1, 1}
		in.Jump = true
	case t >= 3.62 && t < 3.64:
		in.Jump = true
	}
	return in
}

// sphereInput returns the input of the moving sphere at time t. It circles its area.
func sphereInput(t float32) mgl32.Vec2 {
	switch int(t) % 4 {
	case 0:
		return mgl32.Vec2{1, 0}
	case 1:
		return mgl32.Vec2{0, 1}
	case 2:
		return mgl32.Vec2{-1, 0}
	}
	return mgl32.Vec2{0, -1}
}
