package sprite

import (
	"math"
	"testing"

	"github.com/Faultbox/wolfcast/internal/engine/view"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

func testView() view.Config {
	cfg := view.Default()
	cfg.Width = 640
	cfg.Height = 400
	return cfg
}

func TestProject_OnHeading(t *testing.T) {
	cfg := testView()
	p := NewProjector(cfg)

	// Points placed exactly on each heading so the bearing delta is zero.
	tests := []struct {
		angle float64
		pos   wmath.Vec2
	}{
		{0, wmath.Vec2{X: 9, Y: 5}},
		{math.Pi / 2, wmath.Vec2{X: 5, Y: 9}},
		{math.Pi, wmath.Vec2{X: 1, Y: 5}},
		{-math.Pi / 2, wmath.Vec2{X: 5, Y: 1}},
	}
	for _, tt := range tests {
		a, pos := tt.angle, tt.pos
		pose := view.Pose{Pos: wmath.Vec2{X: 5, Y: 5}, Angle: a}
		proj, ok := p.Project(pos, 0, pose)
		if !ok {
			t.Fatalf("heading %v: sprite straight ahead not projected", a)
		}
		if proj.X != cfg.Width/2 {
			t.Errorf("heading %v: X = %d, want %d", a, proj.X, cfg.Width/2)
		}
		if math.Abs(proj.Distance-4) > 1e-9 {
			t.Errorf("heading %v: distance = %v, want 4", a, proj.Distance)
		}
		if proj.Size != cfg.Height/4 {
			t.Errorf("heading %v: size = %d, want %d", a, proj.Size, cfg.Height/4)
		}
		if proj.Y != cfg.Height/2-proj.Size/2 {
			t.Errorf("heading %v: Y = %d, want centred", a, proj.Y)
		}
	}
}

func TestProject_Culling(t *testing.T) {
	cfg := testView()
	p := NewProjector(cfg)
	pose := view.Pose{Pos: wmath.Vec2{X: 5, Y: 5}}

	tests := []struct {
		name    string
		bearing float64
		dist    float64
		want    bool
	}{
		{"inside aperture", 0.3, 3, true},
		{"inside margin", cfg.HalfFOV() + cfg.SpriteMargin - 0.05, 3, true},
		{"beyond margin", cfg.HalfFOV() + cfg.SpriteMargin + 0.05, 3, false},
		{"behind", math.Pi, 3, false},
		{"too close", 0, 0.1, false},
		{"at min distance", 0, cfg.MinSpriteDistance + 1e-9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := pose.Pos.Add(wmath.FromAngle(tt.bearing).Scale(tt.dist))
			_, ok := p.Project(pos, 0, pose)
			if ok != tt.want {
				t.Errorf("Project ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestProject_SideOfScreen(t *testing.T) {
	cfg := testView()
	p := NewProjector(cfg)
	pose := view.Pose{Pos: wmath.Vec2{X: 5, Y: 5}}

	// Positive bearings turn towards +Y, which is to the right on screen.
	right, _ := p.Project(pose.Pos.Add(wmath.FromAngle(0.2).Scale(3)), 0, pose)
	left, _ := p.Project(pose.Pos.Add(wmath.FromAngle(-0.2).Scale(3)), 0, pose)
	if right.X <= cfg.Width/2 || left.X >= cfg.Width/2 {
		t.Errorf("left X %d, right X %d around centre %d", left.X, right.X, cfg.Width/2)
	}

	// A point on the edge of the aperture lands on the screen edge.
	edge, ok := p.Project(pose.Pos.Add(wmath.FromAngle(cfg.HalfFOV()).Scale(3)), 0, pose)
	if !ok {
		t.Fatal("edge point not projected")
	}
	if edge.X < cfg.Width-1 || edge.X > cfg.Width {
		t.Errorf("edge X = %d, want about %d", edge.X, cfg.Width)
	}
}

func TestProject_SizeCap(t *testing.T) {
	cfg := testView()
	cfg.MinSpriteDistance = 0.01
	p := NewProjector(cfg)
	pose := view.Pose{Pos: wmath.Vec2{X: 5, Y: 5}}

	proj, ok := p.Project(wmath.Vec2{X: 5.05, Y: 5}, 0, pose)
	if !ok {
		t.Fatal("expected projection")
	}
	if want := int(cfg.MaxSpriteScale * float64(cfg.Height)); proj.Size != want {
		t.Errorf("size = %d, want cap %d", proj.Size, want)
	}
}

func TestProject_VShift(t *testing.T) {
	cfg := testView()
	p := NewProjector(cfg)
	pose := view.Pose{Pos: wmath.Vec2{X: 5, Y: 5}}
	pos := wmath.Vec2{X: 7, Y: 5}

	base, _ := p.Project(pos, 0, pose)
	shifted, _ := p.Project(pos, 0.5, pose)
	if shifted.Y != base.Y+base.Size/2 {
		t.Errorf("shifted Y = %d, want %d", shifted.Y, base.Y+base.Size/2)
	}
	if shifted.Size != base.Size || shifted.X != base.X {
		t.Error("vshift must only move the square vertically")
	}
}

func TestProjectSprite_Scratch(t *testing.T) {
	p := NewProjector(testView())
	pose := view.Pose{Pos: wmath.Vec2{X: 1, Y: 1}}

	s := New(wmath.Vec2{X: 4, Y: 5}, "barrel")
	if !p.ProjectSprite(s, pose) {
		t.Fatal("sprite should be visible")
	}
	if s.Distance != 5 {
		t.Errorf("Distance = %v, want 5", s.Distance)
	}
	if s.Projection.Distance >= s.Distance {
		t.Errorf("perpendicular %v should be below Euclidean %v off-axis", s.Projection.Distance, s.Distance)
	}

	pose.Angle = math.Pi
	if p.ProjectSprite(s, pose) || s.Visible {
		t.Error("sprite behind the viewer should be hidden")
	}
}

func TestSortFarToNear(t *testing.T) {
	sprites := []*Sprite{
		{Texture: "a", Distance: 2},
		{Texture: "b", Distance: 9},
		{Texture: "c", Distance: 5},
	}
	SortFarToNear(sprites)
	got := sprites[0].Texture + sprites[1].Texture + sprites[2].Texture
	if got != "bca" {
		t.Errorf("order = %s, want bca", got)
	}
}
