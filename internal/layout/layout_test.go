package layout

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestResolveDirections(t *testing.T) {
	frame := Size{W: 80, H: 24}
	panel := Size{W: 20, H: 10}
	cases := []struct {
		pos  Position
		want Vec2
	}{
		{Center, Vec2{}},
		{Up, Vec2{Y: -17}},
		{Down, Vec2{Y: 17}},
		{Left, Vec2{X: -50}},
		{Right, Vec2{X: 50}},
	}
	for _, tc := range cases {
		got := Resolve(frame, panel, tc.pos, 1)
		if got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.pos, tc.want, got)
		}
	}
}

func TestResolveBlend(t *testing.T) {
	frame := Size{W: 80, H: 24}
	panel := Size{W: 20, H: 10}
	if got := Resolve(frame, panel, Right, 0); got != (Vec2{}) {
		t.Fatalf("expected centre for blend 0, got %+v", got)
	}
	if got := Resolve(frame, panel, Right, 0.5); got != (Vec2{X: 25}) {
		t.Fatalf("expected half travel, got %+v", got)
	}
	if got := Resolve(frame, panel, Right, 3); got != (Vec2{X: 50}) {
		t.Fatalf("expected blend clamped to 1, got %+v", got)
	}
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition(" LEFT ")
	if err != nil || p != Left {
		t.Fatalf("expected left, got %v (%v)", p, err)
	}
	if _, err := ParsePosition("diagonal"); err == nil {
		t.Fatalf("expected error for unknown token")
	}
}

func TestPositionYAML(t *testing.T) {
	var doc struct {
		From Position `yaml:"from"`
		To   Position `yaml:"to"`
	}
	if err := yaml.Unmarshal([]byte("from: up\nto: Right\n"), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.From != Up || doc.To != Right {
		t.Fatalf("unexpected tokens %v %v", doc.From, doc.To)
	}
	if err := yaml.Unmarshal([]byte("from: sideways\n"), &doc); err == nil {
		t.Fatalf("expected error for unknown token")
	}
}
