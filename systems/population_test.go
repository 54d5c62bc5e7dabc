package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/catalog"
)

func testArena(galaxy int) Arena {
	return Arena{
		Galaxy:  galaxy,
		Bounds:  catalog.Bounds(galaxy),
		Biome:   catalog.BiomeFor(galaxy),
		Initial: catalog.ObjectCount(galaxy),
	}
}

func TestPopulation_CapAndFloor(t *testing.T) {
	pop := NewPopulationSystem(newTestStore(), testConfig().Population, testRNG())
	tests := []struct {
		initial   int
		wantCap   int
		wantFloor int
	}{
		{30, 45, 20},
		{46, 69, 20},
		{100, 150, 35},
		{340, 510, 119},
	}
	for _, tt := range tests {
		if got := pop.Cap(tt.initial); got != tt.wantCap {
			t.Errorf("Cap(%d) = %d, want %d", tt.initial, got, tt.wantCap)
		}
		if got := pop.Floor(tt.initial); got != tt.wantFloor {
			t.Errorf("Floor(%d) = %d, want %d", tt.initial, got, tt.wantFloor)
		}
	}
}

func TestPopulation_DepletionInterval(t *testing.T) {
	pop := NewPopulationSystem(newTestStore(), testConfig().Population, testRNG())
	tests := []struct {
		deficit int
		want    float64
	}{
		{1, 115},
		{10, 70},
		{18, 30},
		{40, 30},
	}
	for _, tt := range tests {
		if got := pop.DepletionInterval(tt.deficit); math.Abs(got-tt.want) > eps {
			t.Errorf("DepletionInterval(%d) = %v, want %v", tt.deficit, got, tt.want)
		}
	}
}

func TestPopulation_DepletionSpawnsAtWall(t *testing.T) {
	s := newTestStore()
	a := testArena(1)
	a.Initial = 30
	for i := 0; i < 19; i++ {
		mustSpawn(t, s, testInstance(float64(i)*10, 0, 2))
	}

	pop := NewPopulationSystem(s, testConfig().Population, testRNG())
	for tick := 1; tick < 115; tick++ {
		if rep := pop.Update(a, 1); rep.Depletion != 0 {
			t.Fatalf("depletion spawn at tick %d, want 115", tick)
		}
	}
	rep := pop.Update(a, 1)
	if rep.Depletion != 1 {
		t.Fatalf("no depletion spawn at tick 115: %+v", rep)
	}
	if s.Count() != 20 {
		t.Errorf("count = %d, want 20", s.Count())
	}

	var spawned *View
	for _, v := range s.Views() {
		if v.ID == 20 {
			v := v
			spawned = &v
		}
	}
	if spawned == nil {
		t.Fatal("spawned object not found")
	}
	if s.Fade(spawned.Entity) == nil {
		t.Error("spawned object has no fade-in")
	}
	pos := spawned.Pos.Vec()
	if d := r2.Norm(pos); math.Abs(d-(a.Bounds-5)) > 1e-6 {
		t.Errorf("spawn distance = %v, want %v", d, a.Bounds-5)
	}
	if r2.Dot(pos, spawned.Vel.Vec()) >= 0 {
		t.Errorf("spawn velocity %+v is not inward", spawned.Vel)
	}
	if spawned.Alpha != 0 {
		t.Errorf("spawn alpha = %v, want 0", spawned.Alpha)
	}

	// floor satisfied: the depletion spawner stays idle
	for i := 0; i < 200; i++ {
		if rep := pop.Update(a, 1); rep.Depletion != 0 {
			t.Fatalf("depletion spawn with population at floor")
		}
	}
}

func TestPopulation_AmbientSpawnRate(t *testing.T) {
	s := newTestStore()
	a := testArena(1)
	pop := NewPopulationSystem(s, testConfig().Population, testRNG())
	for i := 0; i < a.Initial; i++ {
		mustSpawn(t, s, testInstance(float64(i), 0, 1))
	}

	ambient := 0
	for i := 0; i < 3000; i++ {
		ambient += pop.Update(a, 1).Ambient
	}
	// one spawn every 300 to 500 ticks
	if ambient < 6 || ambient > 10 {
		t.Errorf("ambient spawns over 3000 ticks = %d, want 6..10", ambient)
	}
}

func TestPopulation_RespectsCap(t *testing.T) {
	s := newTestStore()
	a := testArena(1)
	a.Initial = 30
	s.SetCap(19)
	for i := 0; i < 19; i++ {
		mustSpawn(t, s, testInstance(float64(i), 0, 1))
	}

	pop := NewPopulationSystem(s, testConfig().Population, testRNG())
	refused := 0
	for i := 0; i < 600; i++ {
		rep := pop.Update(a, 1)
		refused += rep.Refused
		if rep.Depletion+rep.Ambient != 0 {
			t.Fatal("spawned past the cap")
		}
	}
	if refused == 0 {
		t.Error("expected refused spawns to be reported")
	}
	if s.Count() != 19 {
		t.Errorf("count = %d, want 19", s.Count())
	}
}

func TestPopulation_SealedRefuses(t *testing.T) {
	s := newTestStore()
	s.Seal()
	pop := NewPopulationSystem(s, testConfig().Population, testRNG())
	if _, ok := pop.SpawnEdge(testArena(2)); ok {
		t.Error("spawned into sealed store")
	}
}
