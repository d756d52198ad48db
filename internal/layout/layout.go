package layout

import (
	"fmt"
	"strings"
)

// Position is a symbolic pose token resolved to an offset by Resolve.
type Position int

const (
	Up Position = iota
	Left
	Center
	Right
	Down
)

var positionNames = [...]string{"up", "left", "center", "right", "down"}

func (p Position) String() string {
	if p < Up || p > Down {
		return fmt.Sprintf("position(%d)", int(p))
	}
	return positionNames[p]
}

// ParsePosition accepts the token names case-insensitively.
func ParsePosition(s string) (Position, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range positionNames {
		if name == want {
			return Position(i), nil
		}
	}
	return Center, fmt.Errorf("unknown position %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Vec2 is a 2D offset in terminal cells. Y grows downwards.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Lerp interpolates between a and b by t without clamping.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Size is a width/height pair in terminal cells.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Scaled multiplies the size per axis.
func (s Size) Scaled(scale Vec2) Size {
	return Size{W: s.W * scale.X, H: s.H * scale.Y}
}

// Frame is the ancestor coordinate frame a panel is laid out against.
type Frame interface {
	Bounds() Size
}

// FixedFrame is a Frame with constant bounds.
type FixedFrame Size

// Bounds implements Frame.
func (f FixedFrame) Bounds() Size {
	return Size(f)
}

// Resolve maps a pose token to an offset from the frame centre. The
// directional target places the panel just outside the frame edge; blend
// interpolates between the centre (0) and that target (1).
func Resolve(frame, panel Size, pos Position, blend float64) Vec2 {
	var target Vec2
	switch pos {
	case Up:
		target = Vec2{Y: -(frame.H/2 + panel.H/2)}
	case Down:
		target = Vec2{Y: frame.H/2 + panel.H/2}
	case Left:
		target = Vec2{X: -(frame.W/2 + panel.W/2)}
	case Right:
		target = Vec2{X: frame.W/2 + panel.W/2}
	}
	return Lerp(Vec2{}, target, Clamp01(blend))
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
