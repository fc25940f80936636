package renderer

const (
	maxOffset  = 0.7
	offsetStep = 0.005
	angleStep  = 0.5
	minSize    = 0.1
	maxSize    = 0.8
	sizeStep   = 0.001
)

// Animation is the per-frame motion shared by the animated scenes. Offset and
// Size bounce between their limits; Angle is in degrees and wraps at 360.
type Animation struct {
	Offset float32
	Angle  float32
	Size   float32

	rightward bool
	growing   bool
}

func NewAnimation() *Animation {
	return &Animation{Size: 0.4, rightward: true, growing: true}
}

// Step advances the animation by one frame.
func (a *Animation) Step() {
	if a.rightward {
		a.Offset += offsetStep
	} else {
		a.Offset -= offsetStep
	}
	if a.Offset >= maxOffset || a.Offset <= -maxOffset {
		a.rightward = !a.rightward
	}

	a.Angle += angleStep
	if a.Angle >= 360 {
		a.Angle -= 360
	}

	if a.growing {
		a.Size += sizeStep
	} else {
		a.Size -= sizeStep
	}
	if a.Size >= maxSize || a.Size <= minSize {
		a.growing = !a.growing
	}
}
