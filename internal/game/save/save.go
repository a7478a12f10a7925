// Package save persists the scene between runs: which props stand open, the
// side each one swung to, and where the player was.
//
// Snapshots are stored as YAML through gdata, which picks the per-user data
// directory for the platform. A Store without a gdata manager keeps working
// and simply remembers nothing.
package save

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/game/world"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// sceneObject is the gdata object holding one property per save slot.
const sceneObject = "scene"

// PropState is the saved state of one prop.
type PropState struct {
	Open bool    `yaml:"open"`
	Side float32 `yaml:"side,omitempty"`
}

// Snapshot is a saved scene.
type Snapshot struct {
	Player [3]float32           `yaml:"player"`
	Facing string               `yaml:"facing,omitempty"`
	Props  map[string]PropState `yaml:"props"`
}

// Capture records the current state of every prop and the player.
func Capture(w *world.World, player *entity.Character) Snapshot {
	snap := Snapshot{Props: make(map[string]PropState)}
	if player != nil {
		snap.Player = [3]float32(player.Position())
		snap.Facing = player.Direction.String()
	}
	for _, p := range w.Props() {
		st := PropState{Open: p.Controller.State() == prop.StateOpen}
		if st.Open {
			st.Side = p.Controller.Side()
		}
		snap.Props[p.Name] = st
	}
	return snap
}

// Apply puts the scene back the way the snapshot found it and returns how
// many props it restored. Props the snapshot does not know are closed; saved
// props that no longer exist are ignored.
func (s Snapshot) Apply(w *world.World, player *entity.Character) int {
	restored := 0
	for _, p := range w.Props() {
		st, ok := s.Props[p.Name]
		if !ok {
			p.Controller.Reset()
			continue
		}
		state := prop.StateClosed
		if st.Open {
			state = prop.StateOpen
		}
		p.Controller.Restore(state, st.Side)
		restored++
	}

	if player != nil {
		player.SetPosition(mgl32.Vec3(s.Player))
		if d, ok := entity.ParseDirection(s.Facing); ok {
			player.Direction = d
		}
	}
	return restored
}

// Store reads and writes snapshots in one save slot.
type Store struct {
	data *gdata.Manager
	slot string
	log  *zap.Logger
}

// Open opens the per-user data directory for appName. On failure it still
// returns a usable Store that persists nothing, along with the error.
func Open(appName, slot string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil, slot), fmt.Errorf("opening save data: %w", err)
	}
	return NewStore(m, slot), nil
}

// NewStore wraps a gdata manager, which may be nil.
func NewStore(m *gdata.Manager, slot string) *Store {
	return &Store{data: m, slot: slot, log: logger.For("save")}
}

// Enabled reports whether snapshots actually reach disk.
func (s *Store) Enabled() bool {
	return s.data != nil
}

// Save writes snap to the slot.
func (s *Store) Save(snap Snapshot) error {
	if s.data == nil {
		return nil
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.data.SaveObjectProp(sceneObject, s.slot, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.log.Info("scene saved", zap.String("slot", s.slot), zap.Int("props", len(snap.Props)))
	return nil
}

// Load reads the slot. ok is false when nothing has been saved yet.
func (s *Store) Load() (snap Snapshot, ok bool, err error) {
	if s.data == nil || !s.data.ObjectPropExists(sceneObject, s.slot) {
		return Snapshot{}, false, nil
	}

	data, err := s.data.LoadObjectProp(sceneObject, s.slot)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap, true, nil
}
