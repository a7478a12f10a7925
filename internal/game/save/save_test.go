package save

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/quasilyte/gdata/v2"

	"github.com/Faultbox/midgard-props/internal/config"
	"github.com/Faultbox/midgard-props/internal/engine/keys"
	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/game/world"
	"github.com/Faultbox/midgard-props/internal/prop"
)

func defaultScene(t *testing.T) (*world.World, *entity.Character) {
	t.Helper()
	w, player, err := world.Build(config.Default(), keys.New(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return w, player
}

// testManager opens gdata under a throwaway app name, or skips when the
// platform has no usable data directory.
func testManager(t *testing.T) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("midgard_props_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return m
}

func TestCaptureAndApply(t *testing.T) {
	w, player := defaultScene(t)
	w.Prop("front_door").Controller.Restore(prop.StateOpen, -1)
	w.Prop("treasure_chest").Controller.Restore(prop.StateOpen, 1)
	player.SetPosition(mgl32.Vec3{1, 0, 2})
	player.Direction = entity.DirE

	snap := Capture(w, player)
	if got := snap.Props["front_door"]; !got.Open || got.Side != -1 {
		t.Errorf("front_door saved as %+v, want open on side -1", got)
	}
	if got := snap.Props["cellar_door"]; got.Open {
		t.Errorf("cellar_door saved as %+v, want closed", got)
	}
	if snap.Facing != "E" {
		t.Errorf("facing = %q, want E", snap.Facing)
	}

	w.Reset()
	player.SetPosition(mgl32.Vec3{})
	player.Direction = entity.DirN

	if n := snap.Apply(w, player); n != len(w.Props()) {
		t.Errorf("Apply() restored %d props, want %d", n, len(w.Props()))
	}

	door := w.Prop("front_door").Controller
	if door.State() != prop.StateOpen || door.Side() != -1 || !door.Settled(0.01) {
		t.Errorf("front_door: state %v side %v settled %v", door.State(), door.Side(), door.Settled(0.01))
	}
	if w.Prop("treasure_chest").Controller.State() != prop.StateOpen {
		t.Error("treasure_chest should be open again")
	}
	if player.Position() != (mgl32.Vec3{1, 0, 2}) || player.Direction != entity.DirE {
		t.Errorf("player at %v facing %v", player.Position(), player.Direction)
	}
}

func TestApplyPartialSnapshot(t *testing.T) {
	w, player := defaultScene(t)
	w.Prop("cellar_door").Controller.Restore(prop.StateOpen, 1)

	snap := Snapshot{
		Player: [3]float32{0, 0, -1},
		Props: map[string]PropState{
			"front_door": {Open: true, Side: 1},
			"demolished": {Open: true},
		},
	}
	if n := snap.Apply(w, player); n != 1 {
		t.Errorf("Apply() restored %d props, want 1", n)
	}
	if w.Prop("cellar_door").Controller.State() != prop.StateClosed {
		t.Error("props missing from the snapshot should be closed")
	}
	if player.Direction != entity.DirN {
		t.Errorf("unknown facing should leave direction alone, got %v", player.Direction)
	}
}

func TestStoreWithoutData(t *testing.T) {
	s := NewStore(nil, "autosave")
	if s.Enabled() {
		t.Error("store without gdata should be disabled")
	}
	if err := s.Save(Snapshot{}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if _, ok, err := s.Load(); ok || err != nil {
		t.Errorf("Load() = ok %v, err %v; want nothing", ok, err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(testManager(t), "autosave")

	if _, ok, err := s.Load(); ok || err != nil {
		t.Fatalf("fresh slot: ok %v, err %v", ok, err)
	}

	w, player := defaultScene(t)
	w.Prop("front_door").Controller.Restore(prop.StateOpen, -1)
	player.SetPosition(mgl32.Vec3{2, 0, 3})

	if err := s.Save(Capture(w, player)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snap, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = ok %v, err %v", ok, err)
	}
	if got := snap.Props["front_door"]; !got.Open || got.Side != -1 {
		t.Errorf("front_door loaded as %+v", got)
	}
	if snap.Player != [3]float32{2, 0, 3} {
		t.Errorf("player loaded at %v", snap.Player)
	}
}
