package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"posecraft/internal/pose"
	"posecraft/internal/rig"
	"posecraft/internal/snapshot"
)

func openTestStore(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "snapshots.db")
	client, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { client.Close(context.Background()) })

	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

func armPose(t *testing.T, x float64) *pose.Pose {
	t.Helper()
	conv := rig.DefaultConvention()

	p := &pose.Pose{}
	p.Set(conv.Classify("Arm_L_IK"), pose.State{Channels: []pose.Channel{
		{Name: "position.x", Value: x},
		{Name: "rotation.y", Value: -30.25},
		{Name: "twist", Value: 0.5},
	}})
	p.Set(conv.Classify("Spine_01"), pose.State{Channels: []pose.Channel{
		{Name: "rotation.z", Value: 5},
	}})
	return p
}

func TestClient_SaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	p := armPose(t, 1.25)
	saved, err := store.Save(ctx, "rest", 42, p)
	if err != nil {
		t.Fatalf("saving: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected a snapshot ID")
	}

	got, err := store.Get(ctx, "rest")
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if got.ID != saved.ID || got.Name != "rest" || got.Frame != 42 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if !reflect.DeepEqual(got.Pose, p) {
		t.Fatalf("pose did not round-trip through sqlite")
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created_at did not round-trip: %v vs %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestClient_DuplicateName(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.Save(ctx, "rest", 0, armPose(t, 1)); err != nil {
		t.Fatalf("saving: %v", err)
	}
	if _, err := store.Save(ctx, "rest", 0, armPose(t, 2)); !errors.Is(err, snapshot.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// The failed save must not clobber the stored pose.
	got, _ := store.Get(ctx, "rest")
	st, _ := got.Pose.Get("Arm_L_IK")
	if v, _ := st.Get("position.x"); v != 1 {
		t.Fatalf("duplicate save clobbered pose: %v", v)
	}
}

func TestClient_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first, err := store.Save(ctx, "rest", 10, armPose(t, 1))
	if err != nil {
		t.Fatalf("saving: %v", err)
	}
	second, err := store.Overwrite(ctx, "rest", 20, armPose(t, 2))
	if err != nil {
		t.Fatalf("overwriting: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("overwrite must mint a new ID")
	}

	got, _ := store.Get(ctx, "rest")
	if got.ID != second.ID || got.Frame != 20 {
		t.Fatalf("unexpected snapshot after overwrite: %+v", got)
	}

	// Overwrite of an absent name creates it.
	if _, err := store.Overwrite(ctx, "fresh", 0, armPose(t, 3)); err != nil {
		t.Fatalf("overwriting absent name: %v", err)
	}
}

func TestClient_List(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, name := range []string{"rest", "action", "spread"} {
		if _, err := store.Save(ctx, name, 7, armPose(t, 1)); err != nil {
			t.Fatalf("saving %s: %v", name, err)
		}
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	if !reflect.DeepEqual(names, []string{"rest", "action", "spread"}) {
		t.Fatalf("expected creation order, got %v", names)
	}
	if infos[0].Controllers != 2 || infos[0].Frame != 7 {
		t.Fatalf("unexpected info: %+v", infos[0])
	}
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Delete(ctx, "ghost"); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := store.Save(ctx, "rest", 0, armPose(t, 1)); err != nil {
		t.Fatalf("saving: %v", err)
	}
	if err := store.Delete(ctx, "rest"); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if _, err := store.Get(ctx, "rest"); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "rest"); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
