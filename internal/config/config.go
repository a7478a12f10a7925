// Package config handles simulator configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-props/internal/prop"
	"github.com/Faultbox/midgard-props/pkg/geom"
)

// Front end names accepted in FrontendConfig.Kind.
const (
	FrontendTUI    = "tui"
	FrontendSDL    = "sdl"
	FrontendEbiten = "ebiten"
)

// Config holds all settings.
type Config struct {
	Frontend   FrontendConfig   `yaml:"frontend"`
	Simulation SimulationConfig `yaml:"simulation"`
	Audio      AudioConfig      `yaml:"audio"`
	Game       GameConfig       `yaml:"game"`
	Logging    LoggingConfig    `yaml:"logging"`
	Player     PlayerConfig     `yaml:"player"`
	Props      []PropConfig     `yaml:"props"`
}

// FrontendConfig selects how the simulation is shown and driven.
type FrontendConfig struct {
	Kind   string `yaml:"kind"` // tui, sdl or ebiten
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	ScreenshotDir    string `yaml:"screenshot_dir"`    // F12 captures in the Ebiten window
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// SimulationConfig holds frame loop settings.
type SimulationConfig struct {
	TPS     int           `yaml:"tps"`      // frames per second for fixed-rate loops
	MaxStep time.Duration `yaml:"max_step"` // longest frame a real-time loop will simulate
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled      bool              `yaml:"enabled"`
	MasterVolume float64           `yaml:"master_volume"`
	SFXVolume    float64           `yaml:"sfx_volume"`
	Clips        map[string]string `yaml:"clips"` // clip handle -> WAV path
}

// GameConfig holds presentation settings.
type GameConfig struct {
	Language  string `yaml:"language"`
	LocaleDir string `yaml:"locale_dir"`
	Resume    bool   `yaml:"resume"`    // restore the last saved scene on start
	SaveSlot  string `yaml:"save_slot"` // scene snapshot written on exit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// PlayerConfig describes the controllable actor.
type PlayerConfig struct {
	Tag      string     `yaml:"tag"`
	Position [3]float32 `yaml:"position"`
	Speed    float32    `yaml:"speed"` // units per second
}

// PropConfig describes one interactive prop placed in the world.
type PropConfig struct {
	Name          string     `yaml:"name"`
	Mode          string     `yaml:"mode"` // pivot, hinge or side_aware
	Position      [3]float32 `yaml:"position"`
	Rotation      [3]float32 `yaml:"rotation"` // euler degrees
	HingeOffset   [3]float32 `yaml:"hinge_offset"`
	OpenAngle     float32    `yaml:"open_angle"`
	OpenAxis      [3]float32 `yaml:"open_axis"`
	Speed         float32    `yaml:"speed"`
	InteractKey   string     `yaml:"interact_key"`
	ActorTag      string     `yaml:"actor_tag"`
	OpenClip      string     `yaml:"open_clip"`
	CloseClip     string     `yaml:"close_clip"`
	TriggerRadius float32    `yaml:"trigger_radius"`
}

// Default returns a Config with a small demo scene: three doors, one per
// hinge mode, and a treasure chest.
func Default() *Config {
	return &Config{
		Frontend: FrontendConfig{
			Kind:   FrontendTUI,
			Title:  "Midgard Props",
			Width:  960,
			Height: 540,

			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Simulation: SimulationConfig{
			TPS:     60,
			MaxStep: 100 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    1.0,
			Clips: map[string]string{
				"door_open":   "sounds/door_open.wav",
				"door_close":  "sounds/door_close.wav",
				"chest_open":  "sounds/chest_open.wav",
				"chest_close": "sounds/chest_close.wav",
			},
		},
		Game: GameConfig{
			Language:  "en",
			LocaleDir: "locales",
			SaveSlot:  "autosave",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Player: PlayerConfig{
			Tag:      prop.DefaultActorTag,
			Position: [3]float32{0, 0, 0},
			Speed:    3,
		},
		Props: []PropConfig{
			{
				Name:          "front_door",
				Mode:          "side_aware",
				Position:      [3]float32{0, 1, 6},
				HingeOffset:   [3]float32{-0.5, 0, 0},
				OpenAngle:     90,
				OpenAxis:      [3]float32{0, 1, 0},
				Speed:         2,
				InteractKey:   "E",
				ActorTag:      prop.DefaultActorTag,
				OpenClip:      "door_open",
				CloseClip:     "door_close",
				TriggerRadius: 2,
			},
			{
				Name:          "cellar_door",
				Mode:          "hinge",
				Position:      [3]float32{5, 1, 6},
				HingeOffset:   [3]float32{-0.5, 0, 0},
				OpenAngle:     90,
				OpenAxis:      [3]float32{0, 1, 0},
				Speed:         2,
				InteractKey:   "E",
				ActorTag:      prop.DefaultActorTag,
				OpenClip:      "door_open",
				CloseClip:     "door_close",
				TriggerRadius: 2,
			},
			{
				Name:          "shed_door",
				Mode:          "pivot",
				Position:      [3]float32{-5, 1, 6},
				OpenAngle:     90,
				OpenAxis:      [3]float32{0, 1, 0},
				Speed:         2,
				InteractKey:   "E",
				ActorTag:      prop.DefaultActorTag,
				TriggerRadius: 2,
			},
			{
				Name:          "treasure_chest",
				Mode:          "pivot",
				Position:      [3]float32{0, 0.5, -4},
				OpenAngle:     -270,
				OpenAxis:      [3]float32{1, 0, 0},
				Speed:         2,
				InteractKey:   "E",
				ActorTag:      prop.DefaultActorTag,
				OpenClip:      "chest_open",
				CloseClip:     "chest_close",
				TriggerRadius: 1.5,
			},
		},
	}
}

// Validate checks settings that cannot be fixed up silently.
func (c *Config) Validate() error {
	switch c.Frontend.Kind {
	case FrontendTUI, FrontendSDL, FrontendEbiten:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend.Kind)
	}
	switch c.Frontend.ScreenshotFormat {
	case "png", "bmp":
	default:
		return fmt.Errorf("unknown screenshot format %q", c.Frontend.ScreenshotFormat)
	}
	if c.Game.SaveSlot == "" {
		return fmt.Errorf("save slot is empty")
	}
	if c.Simulation.TPS <= 0 {
		return fmt.Errorf("simulation tps must be positive, got %d", c.Simulation.TPS)
	}

	seen := make(map[string]bool, len(c.Props))
	for i, p := range c.Props {
		if p.Name == "" {
			return fmt.Errorf("prop %d: name is empty", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("prop %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.TriggerRadius <= 0 {
			return fmt.Errorf("prop %s: trigger radius must be positive, got %v", p.Name, p.TriggerRadius)
		}
		if _, err := p.ToProp(); err != nil {
			return fmt.Errorf("prop %s: %w", p.Name, err)
		}
	}
	return nil
}

// ToProp converts the file representation into a controller configuration.
func (p PropConfig) ToProp() (prop.Config, error) {
	mode, err := prop.ParseMode(p.Mode)
	if err != nil {
		return prop.Config{}, err
	}

	cfg := prop.Config{
		Name:        p.Name,
		Mode:        mode,
		OpenAngle:   p.OpenAngle,
		OpenAxis:    mgl32.Vec3(p.OpenAxis),
		Speed:       p.Speed,
		InteractKey: p.InteractKey,
		ActorTag:    p.ActorTag,
		OpenClip:    p.OpenClip,
		CloseClip:   p.CloseClip,
	}
	return cfg, cfg.Validate()
}

// Panel builds the panel described by the prop's placement.
func (p PropConfig) Panel() *prop.Panel {
	rotation := geom.Euler(p.Rotation[0], p.Rotation[1], p.Rotation[2])
	return prop.NewPanel(mgl32.Vec3(p.Position), rotation, mgl32.Vec3(p.HingeOffset))
}
