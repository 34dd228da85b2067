package entities

import (
	"fmt"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
)

// addSprite 给实体添加位置、显示、精灵和碰撞盒组件
// 碰撞盒默认受世界边界约束
func addSprite(em *ecs.EntityManager, rm *game.ResourceManager, cfg *config.GameConfig, id ecs.EntityID, sheetKey string, x, y float64, body config.BodyConfig) error {
	sheet, ok := cfg.Sheets[sheetKey]
	if !ok {
		return fmt.Errorf("sprite sheet %q is not configured", sheetKey)
	}
	frames, err := rm.LoadSpriteSheet(sheetKey, sheet)
	if err != nil {
		return err
	}

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, components.NewDisplayComponent())
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Sheet:  sheetKey,
		Frames: frames,
	})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Width:              body.Width,
		Height:             body.Height,
		OffsetX:            body.OffsetX,
		OffsetY:            body.OffsetY,
		SourceWidth:        float64(sheet.FrameWidth),
		SourceHeight:       float64(sheet.FrameHeight),
		CollideWorldBounds: true,
	})
	return nil
}
