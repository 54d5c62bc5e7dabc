package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 0.06)
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1.0 {
		t.Errorf("new camera = %+v, want origin at zoom 1", cam)
	}
}

func TestFollow(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		wantX float64
	}{
		{"one tick", 1, 6},
		{"half tick", 0.5, 3},
		{"stalled frame", 3, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(1280, 720, 0.06)
			cam.Follow(100, -100, tt.dt)
			if math.Abs(cam.X-tt.wantX) > 1e-9 || math.Abs(cam.Y+tt.wantX) > 1e-9 {
				t.Errorf("camera at (%v, %v), want (%v, %v)", cam.X, cam.Y, tt.wantX, -tt.wantX)
			}
		})
	}
}

func TestFollowConverges(t *testing.T) {
	cam := New(1280, 720, 0.06)
	for i := 0; i < 300; i++ {
		cam.Follow(50, 20, 1)
	}
	if math.Abs(cam.X-50) > 0.01 || math.Abs(cam.Y-20) > 0.01 {
		t.Errorf("camera at (%v, %v) after 300 ticks, want (50, 20)", cam.X, cam.Y)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 0.06)
	cam.Snap(300, -120)
	cam.SetZoom(1.5)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 1e-9 || math.Abs(sy-tc.sy) > 1e-9 {
			t.Errorf("roundtrip failed: (%v,%v) -> (%v,%v) -> (%v,%v)", tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
	if sx, sy := cam.WorldToScreen(300, -120); sx != 640 || sy != 360 {
		t.Errorf("camera centre maps to (%v, %v), want screen centre", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 0.06)
	tests := []struct {
		name        string
		wx, wy, r   float64
		wantVisible bool
	}{
		{"centre", 0, 0, 1, true},
		{"just inside", 639, 0, 1, true},
		{"edge overlap", 645, 0, 10, true},
		{"outside", 700, 0, 10, false},
		{"below", 0, 400, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.wx, tt.wy, tt.r); got != tt.wantVisible {
				t.Errorf("IsVisible = %v, want %v", got, tt.wantVisible)
			}
		})
	}
}

func TestEdgeIndicator(t *testing.T) {
	cam := New(1280, 720, 0.06)
	if _, _, _, ok := cam.EdgeIndicator(10, 10, 20); ok {
		t.Error("on-screen point got an indicator")
	}
	ex, ey, angle, ok := cam.EdgeIndicator(2000, 0, 20)
	if !ok {
		t.Fatal("off-screen point has no indicator")
	}
	if math.Abs(ex-1260) > 1e-9 || math.Abs(ey-360) > 1e-9 || math.Abs(angle) > 1e-9 {
		t.Errorf("indicator at (%v, %v) angle %v, want (1260, 360) angle 0", ex, ey, angle)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 0.06)
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want max %v", cam.Zoom, cam.MaxZoom)
	}
	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want min %v", cam.Zoom, cam.MinZoom)
	}
	minX, _, maxX, _ := cam.VisibleWorldBounds()
	if math.Abs((maxX-minX)-1280/cam.MinZoom) > 1e-9 {
		t.Errorf("visible width = %v", maxX-minX)
	}
}
