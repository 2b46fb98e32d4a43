package prefabs

import (
	"errors"
	"testing"
	"time"
)

func TestLoadVisualSpecEmbedded(t *testing.T) {
	spec, err := LoadVisualSpec("")
	if err != nil {
		t.Fatalf("load embedded spec: %v", err)
	}
	want := DefaultVisualSpec()
	if *spec != want {
		t.Fatalf("embedded spec drifted from defaults:\n got %+v\nwant %+v", *spec, want)
	}
	if spec.TickPeriod() != 50*time.Millisecond || spec.Transition() != 500*time.Millisecond {
		t.Fatalf("unexpected periods %v / %v", spec.TickPeriod(), spec.Transition())
	}
}

func TestParseVisualSpec(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, s *VisualSpec)
	}{
		{
			name: "partial_overrides_defaults",
			yaml: "count: 3\nsprite:\n  width: 20\n",
			check: func(t *testing.T, s *VisualSpec) {
				if s.Count != 3 || s.Sprite.Width != 20 || s.Sprite.Height != 180 || s.MaxSpeed != 10 {
					t.Fatalf("unexpected spec %+v", *s)
				}
			},
		},
		{
			name: "negative_count_clamped",
			yaml: "count: -4\n",
			check: func(t *testing.T, s *VisualSpec) {
				if s.Count != 0 {
					t.Fatalf("expected count clamped to 0, got %d", s.Count)
				}
			},
		},
		{
			name: "zero_periods_use_defaults",
			yaml: "tick_ms: 0\ntransition_ms: 0\n",
			check: func(t *testing.T, s *VisualSpec) {
				if s.TickMS != 50 || s.TransitionMS != 500 {
					t.Fatalf("expected default periods, got %d / %d", s.TickMS, s.TransitionMS)
				}
			},
		},
		{
			name: "zero_speed_is_valid",
			yaml: "max_speed: 0\n",
			check: func(t *testing.T, s *VisualSpec) {
				if s.MaxSpeed != 0 {
					t.Fatalf("expected stationary spec, got %v", s.MaxSpeed)
				}
			},
		},
		{name: "negative_speed", yaml: "max_speed: -1\n", wantErr: true},
		{name: "nan_speed", yaml: "max_speed: .nan\n", wantErr: true},
		{name: "negative_tick", yaml: "tick_ms: -5\n", wantErr: true},
		{name: "zero_width", yaml: "sprite:\n  width: 0\n", wantErr: true},
		{name: "negative_multiplier", yaml: "sprite:\n  size_multiplier: -2\n", wantErr: true},
		{name: "bad_yaml", yaml: "count: [1, 2\n", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := ParseVisualSpec([]byte(c.yaml))
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got spec %+v", *s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			c.check(t, s)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	s := DefaultVisualSpec()
	s.Sprite.Height = -1
	if err := s.Validate(); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestLoadSpecGeneric(t *testing.T) {
	spec, err := LoadSpec[VisualSpec](DefaultVisual)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "unicorns" {
		t.Fatalf("unexpected name %q", spec.Name)
	}
	if _, err := LoadSpec[VisualSpec]("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing spec")
	}
}
