package motion

import "github.com/openjam/jamroom/pkg/api"

// Config holds the kinematic constants of the room.
type Config struct {
	MoveSpeed float64 `fig:"moveSpeed" default:"0.08"`
	JumpForce float64 `fig:"jumpForce" default:"0.18"`
	Gravity   float64 `fig:"gravity" default:"0.01"`
	GroundY   float64 `fig:"groundY" default:"0.5"`
}

func DefaultConfig() Config {
	return Config{MoveSpeed: 0.08, JumpForce: 0.18, Gravity: 0.01, GroundY: 0.5}
}

// Intent is the sampled input of one tick: horizontal movement
// direction in {-1, 0, 1} per axis plus a jump flag.
type Intent struct {
	X, Z int
	Jump bool
}

// Body advances a local avatar with a fixed-rule semi-implicit Euler
// step. The update order is load-bearing: jump is applied before
// gravity is subtracted, and the ground clamp runs after integration;
// reordering changes observable trajectories.
type Body struct {
	conf     Config
	pos      api.Position
	velY     float64
	grounded bool
}

func NewBody(conf Config) *Body {
	return &Body{conf: conf, pos: api.Position{0, conf.GroundY, 0}, grounded: true}
}

// Step advances the body by one tick and returns the new position.
func (b *Body) Step(in Intent) api.Position {
	vx := float64(in.X) * b.conf.MoveSpeed
	vz := float64(in.Z) * b.conf.MoveSpeed
	if in.Jump && b.grounded {
		b.velY = b.conf.JumpForce
		b.grounded = false
	}
	b.velY -= b.conf.Gravity
	b.pos[0] += vx
	b.pos[1] += b.velY
	b.pos[2] += vz
	if b.pos[1] <= b.conf.GroundY {
		b.pos[1] = b.conf.GroundY
		b.velY = 0
		b.grounded = true
	}
	return b.pos
}

func (b *Body) Position() api.Position    { return b.pos }
func (b *Body) Grounded() bool            { return b.grounded }
func (b *Body) VerticalVelocity() float64 { return b.velY }
