package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/horizon/components"
)

func TestFade_RampsThenDropsMarker(t *testing.T) {
	s := newTestStore()
	e, ok := s.Spawn(testInstance(0, 0, 2), &components.SpawnFade{})
	if !ok {
		t.Fatal("spawn refused")
	}
	fade := NewFadeSystem(s, 60)

	for i := 0; i < 30; i++ {
		fade.Update(1)
	}
	if f := s.Fade(e); f == nil || math.Abs(f.Alpha-0.5) > eps {
		t.Fatalf("alpha after 30 ticks = %+v, want 0.5", f)
	}
	for i := 0; i < 30; i++ {
		fade.Update(1)
	}
	if f := s.Fade(e); f != nil {
		t.Errorf("fade marker still present: %+v", f)
	}
	if v := s.Views()[0]; v.Alpha != 1 {
		t.Errorf("view alpha = %v, want 1", v.Alpha)
	}
}

func TestFade_FragmentStartsHalfway(t *testing.T) {
	s := newTestStore()
	e, _ := s.Spawn(testInstance(0, 0, 2), &components.SpawnFade{Age: 30, Alpha: 0.5})
	fade := NewFadeSystem(s, 60)

	fade.Update(1)
	if f := s.Fade(e); f == nil || math.Abs(f.Alpha-31.0/60) > eps {
		t.Fatalf("alpha = %+v, want %v", f, 31.0/60)
	}
	for i := 0; i < 29; i++ {
		fade.Update(1)
	}
	if s.Fade(e) != nil {
		t.Error("fragment fade did not finish after 30 ticks")
	}
}

func TestFade_ZeroWindowIsInstant(t *testing.T) {
	s := newTestStore()
	e, _ := s.Spawn(testInstance(0, 0, 2), &components.SpawnFade{})
	NewFadeSystem(s, 0).Update(1)
	if s.Fade(e) != nil {
		t.Error("zero window should drop the fade at once")
	}
}

func TestFade_UnfadedUntouched(t *testing.T) {
	s := newTestStore()
	e := mustSpawn(t, s, testInstance(0, 0, 2))
	NewFadeSystem(s, 60).Update(1)
	if s.Fade(e) != nil {
		t.Error("object spawned without fade gained one")
	}
	if s.Count() != 1 {
		t.Errorf("count = %d, want 1", s.Count())
	}
}
