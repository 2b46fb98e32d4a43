package ecs

import (
	"math"
	"testing"

	"github.com/milk9111/bouncer/ecs/component"
)

func defaultParams(maxSpeed float64) SpawnParams {
	return SpawnParams{MaxSpeed: maxSpeed, Size: component.Size{Width: 10, Height: 10}}
}

func TestStoreInitialize(t *testing.T) {
	cases := []struct {
		name     string
		count    int
		maxSpeed float64
		want     int
	}{
		{"empty", 0, 10, 0},
		{"negative_count_is_empty", -3, 10, 0},
		{"fifteen", 15, 10, 15},
		{"stationary", 4, 0, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore(NewSampler(1))
			vp := Viewport{Width: 640, Height: 480}
			sprites := s.Initialize(c.count, vp, defaultParams(c.maxSpeed))
			if len(sprites) != c.want || s.Len() != c.want {
				t.Fatalf("expected %d sprites, got %d (Len=%d)", c.want, len(sprites), s.Len())
			}
			for i, sp := range sprites {
				if sp.ID != Entity(i) {
					t.Fatalf("sprite %d has identity %d", i, sp.ID)
				}
				if sp.Position.X < 0 || sp.Position.X >= vp.Width || sp.Position.Y < 0 || sp.Position.Y >= vp.Height {
					t.Fatalf("sprite %d spawned outside viewport: %+v", i, sp.Position)
				}
				if sp.Heading < 0 || sp.Heading >= 360 {
					t.Fatalf("sprite %d heading out of range: %v", i, sp.Heading)
				}
				if sp.Layer.Index != 100 {
					t.Fatalf("expected render order 100, got %d", sp.Layer.Index)
				}
				if sp.Size != (component.Size{Width: 10, Height: 10}) {
					t.Fatalf("unexpected size %+v", sp.Size)
				}
				if c.maxSpeed == 0 && !sp.Velocity.IsZero() {
					t.Fatalf("expected stationary sprite, got velocity %+v", sp.Velocity)
				}
			}
		})
	}
}

func TestSamplerVelocityNeverZero(t *testing.T) {
	s := NewStore(NewSampler(42))
	const maxSpeed = 10.0
	sprites := s.Initialize(10000, Viewport{Width: 100, Height: 100}, defaultParams(maxSpeed))
	for _, sp := range sprites {
		if sp.Velocity.X == 0 || sp.Velocity.Y == 0 {
			t.Fatalf("sprite %d has a zero velocity component: %+v", sp.ID, sp.Velocity)
		}
		if math.Abs(sp.Velocity.X) > maxSpeed || math.Abs(sp.Velocity.Y) > maxSpeed {
			t.Fatalf("sprite %d exceeds max speed: %+v", sp.ID, sp.Velocity)
		}
	}
}

func TestStoreResize(t *testing.T) {
	t.Run("same_count_is_noop", func(t *testing.T) {
		s := NewStore(NewSampler(7))
		s.Initialize(5, Viewport{Width: 200, Height: 200}, defaultParams(5))
		before := append([]Sprite(nil), s.Sprites()...)

		added, removed := s.Resize(5)
		if len(added) != 0 || len(removed) != 0 {
			t.Fatalf("expected no changes, got added=%v removed=%v", added, removed)
		}
		for i, sp := range s.Sprites() {
			if sp != before[i] {
				t.Fatalf("sprite %d changed: %+v -> %+v", i, before[i], sp)
			}
		}
	})

	t.Run("down_then_up", func(t *testing.T) {
		s := NewStore(NewSampler(7))
		s.Initialize(5, Viewport{Width: 200, Height: 200}, defaultParams(5))
		before := append([]Sprite(nil), s.Sprites()...)

		added, removed := s.Resize(2)
		if len(added) != 0 || len(removed) != 3 {
			t.Fatalf("expected 3 removed, got added=%v removed=%v", added, removed)
		}
		for i, id := range removed {
			if id != Entity(2+i) {
				t.Fatalf("expected tail removal, got %v", removed)
			}
		}

		added, removed = s.Resize(5)
		if len(added) != 3 || len(removed) != 0 {
			t.Fatalf("expected 3 added, got added=%v removed=%v", added, removed)
		}

		sprites := s.Sprites()
		for i := 0; i < 2; i++ {
			if sprites[i] != before[i] {
				t.Fatalf("surviving sprite %d changed", i)
			}
		}
		for i := 2; i < 5; i++ {
			if sprites[i].ID != Entity(i) {
				t.Fatalf("expected identity %d, got %d", i, sprites[i].ID)
			}
			if sprites[i].Position == before[i].Position {
				t.Fatalf("re-added sprite %d kept its old position", i)
			}
		}
	})

	t.Run("negative_clears", func(t *testing.T) {
		s := NewStore(NewSampler(7))
		s.Initialize(3, Viewport{Width: 200, Height: 200}, defaultParams(5))
		_, removed := s.Resize(-1)
		if len(removed) != 3 || s.Len() != 0 {
			t.Fatalf("expected everything removed, got removed=%v len=%d", removed, s.Len())
		}
	})
}

func TestStoreSetViewportRespawns(t *testing.T) {
	s := NewStore(NewSampler(3))
	s.Initialize(4, Viewport{Width: 100, Height: 100}, defaultParams(5))

	if s.SetViewport(Viewport{Width: 100, Height: 100}) {
		t.Fatalf("same viewport should not respawn")
	}
	if !s.SetViewport(Viewport{Width: 1000, Height: 50}) {
		t.Fatalf("new viewport should respawn")
	}
	if s.Len() != 4 {
		t.Fatalf("respawn changed count to %d", s.Len())
	}
	if s.Viewport() != (Viewport{Width: 1000, Height: 50}) {
		t.Fatalf("viewport not stored: %+v", s.Viewport())
	}
	for _, sp := range s.Sprites() {
		if sp.Position.Y >= 50 {
			t.Fatalf("sprite %d sampled against the old viewport: %+v", sp.ID, sp.Position)
		}
	}
}

func TestStoreSizeMultiplier(t *testing.T) {
	cases := []struct {
		name      string
		mult      float64
		wantLayer int
		wantWidth float64
	}{
		{"half", 0.5, 50, 5},
		{"one_and_half", 1.5, 150, 15},
		{"zero_falls_back", 0, 100, 10},
		{"nan_falls_back", math.NaN(), 100, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore(NewSampler(9))
			p := defaultParams(1)
			p.SizeMultiplier = func(Entity, int) float64 { return c.mult }
			sp := s.Initialize(1, Viewport{Width: 100, Height: 100}, p)[0]
			if sp.Layer.Index != c.wantLayer {
				t.Fatalf("expected layer %d, got %d", c.wantLayer, sp.Layer.Index)
			}
			if sp.Size.Width != c.wantWidth || sp.Size.Height != c.wantWidth {
				t.Fatalf("expected size %v, got %+v", c.wantWidth, sp.Size)
			}
		})
	}
}

func TestStoreResizeKeepsSizeBasis(t *testing.T) {
	cases := []struct {
		name      string
		start     int
		next      int
		wantCount int
	}{
		{"grow_after_spawn", 3, 6, 3},
		{"shrink_then_grow", 4, 5, 4},
		{"grow_from_empty", 0, 2, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var counts []int
			p := defaultParams(1)
			// larger counts give smaller sprites
			p.SizeMultiplier = func(_ Entity, count int) float64 {
				counts = append(counts, count)
				return 1 / float64(count)
			}
			s := NewStore(NewSampler(3))
			s.Initialize(c.start, Viewport{Width: 100, Height: 100}, p)
			if c.name == "shrink_then_grow" {
				s.Resize(1)
			}
			counts = nil
			s.Resize(c.next)

			for _, n := range counts {
				if n != c.wantCount {
					t.Fatalf("expected appended sprites sized for %d, got %v", c.wantCount, counts)
				}
			}
			want := s.Sprites()[0].Size
			for _, sp := range s.Sprites() {
				if sp.Size != want {
					t.Fatalf("sprite %d sized %+v, survivors are %+v", sp.ID, sp.Size, want)
				}
			}
		})
	}
}

func TestStoreAt(t *testing.T) {
	s := NewStore(NewSampler(1))
	s.Initialize(2, Viewport{Width: 10, Height: 10}, defaultParams(1))
	if _, ok := s.At(2); ok {
		t.Fatalf("expected out of range lookup to fail")
	}
	if _, ok := s.At(-1); ok {
		t.Fatalf("expected negative lookup to fail")
	}
	sp, ok := s.At(1)
	if !ok || sp.ID != 1 {
		t.Fatalf("expected sprite 1, got %+v ok=%v", sp, ok)
	}
	sp.Position.X = 3
	if s.Sprites()[1].Position.X != 3 {
		t.Fatalf("At should return a pointer into the store")
	}
}

func TestEntityHandleID(t *testing.T) {
	if got := Entity(12).HandleID(); got != "entity12" {
		t.Fatalf("expected entity12, got %s", got)
	}
}
