package prop

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-props/pkg/geom"
)

var (
	// ErrInvalidConfig is returned by New for configurations that could never animate.
	ErrInvalidConfig = errors.New("invalid prop configuration")

	// ErrMissingCollaborator marks an absent panel or audio sink. It is only logged.
	ErrMissingCollaborator = errors.New("missing collaborator")
)

// Mode selects how a panel swings.
type Mode uint8

const (
	// HingePivot rotates the panel about its own origin toward a fixed open
	// orientation. Plain doors and chest lids.
	HingePivot Mode = iota
	// HingeOffset rotates about the panel's hinge offset toward a fixed open
	// orientation.
	HingeOffset
	// HingeSideAware rotates about the hinge offset and picks the swing
	// direction from the side the actor stands on when the prop opens.
	HingeSideAware
)

func (m Mode) String() string {
	switch m {
	case HingePivot:
		return "pivot"
	case HingeOffset:
		return "hinge"
	case HingeSideAware:
		return "side_aware"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pivot", "":
		return HingePivot, nil
	case "hinge", "offset":
		return HingeOffset, nil
	case "side_aware", "side-aware", "sideaware":
		return HingeSideAware, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// Config parameterizes a Controller.
type Config struct {
	Name        string
	Mode        Mode
	OpenAngle   float32    // degrees
	OpenAxis    mgl32.Vec3 // world axis the open rotation is composed about
	Speed       float32    // fraction of the remaining arc covered per second
	InteractKey string
	ActorTag    string
	OpenClip    string
	CloseClip   string
}

// DoorConfig returns the settings of a plain door: 90 degrees about +Y.
func DoorConfig() Config {
	return Config{
		Name:        "door",
		Mode:        HingePivot,
		OpenAngle:   90,
		OpenAxis:    geom.AxisY,
		Speed:       2,
		InteractKey: "E",
		ActorTag:    "Player",
	}
}

// ChestConfig returns the settings of a treasure chest lid: -270 degrees about
// +X, which lifts the lid upward by the short way.
func ChestConfig() Config {
	return Config{
		Name:        "chest",
		Mode:        HingePivot,
		OpenAngle:   -270,
		OpenAxis:    geom.AxisX,
		Speed:       2,
		InteractKey: "E",
		ActorTag:    "Player",
		OpenClip:    "chest_open",
		CloseClip:   "chest_close",
	}
}

// Validate reports the first problem that would stall or break the controller.
func (c Config) Validate() error {
	if c.Mode > HingeSideAware {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	}
	if !finite(c.Speed) || c.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidConfig, c.Speed)
	}
	if !finite(c.OpenAngle) {
		return fmt.Errorf("%w: open angle must be finite, got %v", ErrInvalidConfig, c.OpenAngle)
	}
	if !geom.Finite(c.OpenAxis) || c.OpenAxis.Len() == 0 {
		return fmt.Errorf("%w: open axis must be a non-zero vector, got %v", ErrInvalidConfig, c.OpenAxis)
	}
	if c.InteractKey == "" {
		return fmt.Errorf("%w: interact key is empty", ErrInvalidConfig)
	}
	return nil
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
