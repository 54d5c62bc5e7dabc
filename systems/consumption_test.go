package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/components"
)

func newConsumer(s *Store) (*ConsumptionSystem, *PlayerSystem) {
	cfg := testConfig()
	players := NewPlayerSystem(cfg.Player)
	return NewConsumptionSystem(s, players, cfg.Consumption), players
}

// fillFar spawns n small objects well away from the origin.
func fillFar(t *testing.T, s *Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		mustSpawn(t, s, testInstance(math.Cos(angle)*600, math.Sin(angle)*600, 3))
	}
}

func TestConsumption_FirstBiteScenario(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	fillFar(t, s, 29)
	target := testInstance(6, 0, 5)
	mustSpawn(t, s, target)

	c, _ := newConsumer(s)
	p := newTestPlayer(cfg, 20)
	batch := c.Update(p, 1)

	if batch.Count() != 1 {
		t.Fatalf("eaten = %d, want 1", batch.Count())
	}
	if want := 20 + 0.5*target.Mass; math.Abs(p.Mass-want) > eps {
		t.Errorf("mass = %v, want %v", p.Mass, want)
	}
	if got := s.LiveCount(); got != 29 {
		t.Errorf("live count = %d, want 29", got)
	}
	if got := c.Combo().Count; got != 1 {
		t.Errorf("combo = %d, want 1", got)
	}
	if math.Abs(p.Radius-RadiusForMass(cfg.Player, p.Mass)) > eps {
		t.Error("radius not refreshed after growth")
	}
	if math.Abs(batch.AvgTone-180) > eps {
		t.Errorf("avg tone = %v, want 180", batch.AvgTone)
	}
	if want := target.Mass / 400; math.Abs(batch.MassRatio-want) > eps {
		t.Errorf("mass ratio = %v, want %v", batch.MassRatio, want)
	}
}

func TestConsumption_EatRuleBoundary(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name      string
		radius    float64
		distance  float64
		wantEaten bool
	}{
		{"too big even when touching", 12, 0.5, false},
		{"just too big", 11.5, 2, false},
		{"smaller and touching", 8, 5, true},
		{"smaller but out of reach", 8, 10 + 8*0.4 + 0.01, false},
		{"smaller at touch edge", 8, 10 + 8*0.4 - 0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			mustSpawn(t, s, testInstance(tt.distance, 0, tt.radius))
			c, _ := newConsumer(s)
			p := &Player{Mass: 20, Radius: 10}

			eaten := false
			for i := 0; i < 20; i++ {
				if c.Update(p, 1).Count() > 0 {
					eaten = true
				}
				p.Radius = 10 // hold radius fixed
			}
			if eaten != tt.wantEaten {
				t.Errorf("eaten = %v, want %v (cfg eat ratio %v)", eaten, tt.wantEaten, cfg.Consumption.EatRatio)
			}
		})
	}
}

func TestConsumption_ShrinkThenRemove(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	mustSpawn(t, s, testInstance(0, 0, 2))
	c, _ := newConsumer(s)
	p := newTestPlayer(cfg, 20)

	c.Update(p, 1)
	if s.Count() != 1 || s.LiveCount() != 0 {
		t.Fatalf("after bite: count %d live %d, want 1 and 0", s.Count(), s.LiveCount())
	}

	ticks := 0
	removed := 0
	for s.Count() > 0 && ticks < 100 {
		removed += c.Update(p, 1).Removed
		ticks++
	}
	// progress 0.06 per tick reaches 1 on the 17th tick
	if ticks != 17 {
		t.Errorf("removed after %d ticks, want 17", ticks)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestConsumption_ComboResetsWhenTimerRunsOut(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	mustSpawn(t, s, testInstance(0, 0, 2))
	c, _ := newConsumer(s)
	p := newTestPlayer(cfg, 20)
	p.Pos = r2.Vec{X: 0}

	c.Update(p, 1)
	if c.Combo().Count != 1 {
		t.Fatalf("combo = %d, want 1", c.Combo().Count)
	}

	// window 90, decay 16 per tick: 5 ticks leave 10, the 6th empties it
	for i := 0; i < 5; i++ {
		c.Update(p, 1)
	}
	if c.Combo().Count != 1 {
		t.Errorf("combo reset early: %+v", c.Combo())
	}
	c.Update(p, 1)
	if c.Combo().Count != 0 || c.Combo().Timer != 0 {
		t.Errorf("combo = %+v, want reset", c.Combo())
	}
}

func TestConsumption_ChimeEveryThird(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	c, _ := newConsumer(s)
	p := newTestPlayer(cfg, 20)

	var chimes []int
	for i := 1; i <= 7; i++ {
		mustSpawn(t, s, testInstance(0, 0, 1))
		if b := c.Update(p, 1); b.Chime {
			chimes = append(chimes, b.Combo)
		}
	}
	if len(chimes) != 2 || chimes[0] != 3 || chimes[1] != 6 {
		t.Errorf("chimes at combos %v, want [3 6]", chimes)
	}
}

func TestConsumption_ConsumedStateRemoved(t *testing.T) {
	s := newTestStore()
	e := mustSpawn(t, s, testInstance(500, 0, 2))
	consMap := ecsConsMap(s)
	consMap.Get(e).State = components.Consumed

	c, _ := newConsumer(s)
	c.Update(&Player{Mass: 20, Radius: 8}, 1)
	if s.Count() != 0 {
		t.Errorf("object marked consumed was not removed")
	}
}
