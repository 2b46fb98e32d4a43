package render

import (
	"testing"

	"github.com/milk9111/bouncer/ecs"
)

func TestRegistryApply(t *testing.T) {
	rec := NewRecorder()
	reg := NewRegistry(rec)

	reg.Sync(sprites(3), SyncOptions{})
	if reg.Len() != 3 || rec.Len() != 3 {
		t.Fatalf("expected 3 handles, got registry=%d recorder=%d", reg.Len(), rec.Len())
	}
	p, ok := rec.Props(2)
	if !ok {
		t.Fatalf("missing handle 2")
	}
	if p.Left != 20 || p.Top != 10 || p.Width != 8 || p.ZIndex != 100 || p.Rotation != 60 || !p.VerticalFlip {
		t.Fatalf("unexpected props %+v", p)
	}

	// same headings: rotation is not rewritten, flip and position are
	reg.Sync(sprites(3), SyncOptions{})
	rot, flip, pos, ok := rec.Writes(2)
	if !ok || rot != 1 || flip != 2 || pos != 3 {
		t.Fatalf("expected 1 rotation / 2 flip / 3 position writes, got %d/%d/%d", rot, flip, pos)
	}

	reg.Sync(sprites(1), SyncOptions{})
	if reg.Len() != 1 || rec.Len() != 1 {
		t.Fatalf("expected 1 handle after shrink, got registry=%d recorder=%d", reg.Len(), rec.Len())
	}
	created, destroyed := rec.Counts()
	if created != 3 || destroyed != 2 {
		t.Fatalf("expected 3 created / 2 destroyed, got %d/%d", created, destroyed)
	}
}

func TestRegistryIgnoresUnknownHandles(t *testing.T) {
	rec := NewRecorder()
	reg := NewRegistry(rec)

	reg.Apply([]Effect{
		{Kind: EffectDestroy, Entity: 7},
		{Kind: EffectUpdate, Entity: 3, SetRotation: true, Rotation: 40},
	})
	if reg.Len() != 0 || rec.Len() != 0 {
		t.Fatalf("expected no handles")
	}
	if _, destroyed := rec.Counts(); destroyed != 0 {
		t.Fatalf("destroying a missing handle must not reach the surface")
	}

	reg.Apply([]Effect{{Kind: EffectCreate, Entity: 0}, {Kind: EffectCreate, Entity: 0}})
	if created, _ := rec.Counts(); created != 1 {
		t.Fatalf("duplicate create should be ignored, got %d creates", created)
	}
}

func TestRegistryReset(t *testing.T) {
	rec := NewRecorder()
	reg := NewRegistry(rec)
	reg.Sync(sprites(4), SyncOptions{})

	reg.Reset()
	if reg.Len() != 0 || rec.Len() != 0 {
		t.Fatalf("expected all handles destroyed")
	}
	if _, ok := reg.Handle(ecs.Entity(0)); ok {
		t.Fatalf("handle 0 should be gone")
	}
	reg.Reset()
}

func TestRecordedHandleDestroyTwice(t *testing.T) {
	rec := NewRecorder()
	h := rec.Create(0)
	h.Destroy()
	h.Destroy()
	if _, destroyed := rec.Counts(); destroyed != 1 {
		t.Fatalf("expected one destroy, got %d", destroyed)
	}
}
