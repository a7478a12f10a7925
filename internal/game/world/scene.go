package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/config"
	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// Build creates the world described by cfg. Every prop polls keys for its
// interact key; audio may be nil to run silently.
func Build(cfg *config.Config, keys prop.KeySource, audio prop.AudioSink) (*World, *entity.Character, error) {
	w := New(nil)

	player := entity.NewCharacter("player", cfg.Player.Tag, mgl32.Vec3(cfg.Player.Position), cfg.Player.Speed)
	w.actors.SetPlayer(player)

	for _, pc := range cfg.Props {
		pcfg, err := pc.ToProp()
		if err != nil {
			return nil, nil, fmt.Errorf("prop %s: %w", pc.Name, err)
		}

		opts := []prop.Option{prop.WithKeys(keys)}
		if audio != nil {
			opts = append(opts, prop.WithAudio(audio))
		}
		ctrl, err := prop.New(pcfg, pc.Panel(), opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("prop %s: %w", pc.Name, err)
		}

		err = w.AddProp(&Prop{
			Name:       pc.Name,
			Controller: ctrl,
			Trigger:    Volume{Center: mgl32.Vec3(pc.Position), Radius: pc.TriggerRadius},
		})
		if err != nil {
			return nil, nil, err
		}
	}

	w.log.Info("world built", zap.Int("props", len(w.props)))
	return w, player, nil
}
