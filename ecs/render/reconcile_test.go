package render

import (
	"testing"
	"time"

	"github.com/milk9111/bouncer/ecs"
	"github.com/milk9111/bouncer/ecs/component"
)

func sprites(n int) []ecs.Sprite {
	out := make([]ecs.Sprite, n)
	for i := range out {
		out[i] = ecs.Sprite{
			ID:       ecs.Entity(i),
			Position: component.Vec2{X: float64(i * 10), Y: float64(i * 5)},
			Size:     component.Size{Width: 8, Height: 8},
			Heading:  float64(i * 30),
			Layer:    component.RenderLayer{Index: 100},
		}
	}
	return out
}

func handles(n int) map[ecs.Entity]HandleState {
	out := make(map[ecs.Entity]HandleState, n)
	for i := 0; i < n; i++ {
		out[ecs.Entity(i)] = HandleState{Rotation: i * 30, Rotated: true}
	}
	return out
}

func TestReconcileCounts(t *testing.T) {
	cases := []struct {
		name         string
		sprites      int
		handles      int
		wantCreates  int
		wantUpdates  int
		wantDestroys int
	}{
		{"five_handles_three_sprites", 3, 5, 0, 3, 2},
		{"three_handles_five_sprites", 5, 3, 2, 5, 0},
		{"matched", 4, 4, 0, 4, 0},
		{"empty", 0, 0, 0, 0, 0},
		{"all_gone", 0, 2, 0, 0, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			effects := Reconcile(sprites(c.sprites), handles(c.handles), SyncOptions{})
			creates, updates, destroys := Count(effects)
			if creates != c.wantCreates || updates != c.wantUpdates || destroys != c.wantDestroys {
				t.Fatalf("expected %d/%d/%d create/update/destroy, got %d/%d/%d",
					c.wantCreates, c.wantUpdates, c.wantDestroys, creates, updates, destroys)
			}
		})
	}
}

func TestReconcileDestroysTailInOrder(t *testing.T) {
	effects := Reconcile(sprites(1), handles(4), SyncOptions{})
	var got []ecs.Entity
	for _, e := range effects {
		if e.Kind == EffectDestroy {
			got = append(got, e.Entity)
		}
	}
	want := []ecs.Entity{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected destroys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected destroys %v, got %v", want, got)
		}
	}
}

func TestReconcileCreateCarriesInitialProps(t *testing.T) {
	s := sprites(2)
	s[1].Layer.Index = 150
	effects := Reconcile(s, handles(1), SyncOptions{})

	var create *Effect
	for i := range effects {
		if effects[i].Kind == EffectCreate {
			create = &effects[i]
		}
	}
	if create == nil {
		t.Fatalf("expected a create effect")
	}
	if create.Entity != 1 || create.Width != 8 || create.Height != 8 || create.ZIndex != 150 || create.Left != 10 || create.Top != 5 {
		t.Fatalf("unexpected create effect %+v", *create)
	}
}

func TestReconcileRotationChangeDetection(t *testing.T) {
	cases := []struct {
		name         string
		heading      float64
		state        HandleState
		wantRotate   bool
		wantRotation int
		wantFlip     bool
	}{
		{"first_write", 10, HandleState{}, true, 10, true},
		{"same_rounded", 10.4, HandleState{Rotation: 10, Rotated: true}, false, 0, true},
		{"rounds_up", 10.5, HandleState{Rotation: 10, Rotated: true}, true, 11, true},
		{"changed", 200, HandleState{Rotation: 10, Rotated: true}, true, 200, false},
		{"unchanged_still_flips", 90, HandleState{Rotation: 90, Rotated: true}, false, 0, true},
		{"unchanged_no_flip", 270, HandleState{Rotation: 270, Rotated: true}, false, 0, false},
		{"boundary_180", 180, HandleState{Rotation: 180, Rotated: true}, false, 0, false},
		{"wraps_to_zero", 359.7, HandleState{Rotation: 0, Rotated: true}, false, 0, false},
		{"first_write_at_wrap", 359.5, HandleState{}, true, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := sprites(1)
			s[0].Heading = c.heading
			effects := Reconcile(s, map[ecs.Entity]HandleState{0: c.state}, SyncOptions{Transition: 250 * time.Millisecond})
			if len(effects) != 1 || effects[0].Kind != EffectUpdate {
				t.Fatalf("expected a single update, got %+v", effects)
			}
			u := effects[0]
			if u.SetRotation != c.wantRotate {
				t.Fatalf("expected SetRotation=%v, got %v", c.wantRotate, u.SetRotation)
			}
			if c.wantRotate {
				if u.Rotation != c.wantRotation {
					t.Fatalf("expected rotation %d, got %d", c.wantRotation, u.Rotation)
				}
				if u.Transition != 250*time.Millisecond {
					t.Fatalf("expected transition hint, got %v", u.Transition)
				}
			}
			if u.VerticalFlip != c.wantFlip {
				t.Fatalf("expected flip=%v, got %v", c.wantFlip, u.VerticalFlip)
			}
		})
	}
}

func TestReconcileDefaultTransition(t *testing.T) {
	effects := Reconcile(sprites(1), nil, SyncOptions{})
	for _, e := range effects {
		if e.Kind == EffectUpdate && e.Transition != DefaultTransition {
			t.Fatalf("expected default transition, got %v", e.Transition)
		}
	}
}
