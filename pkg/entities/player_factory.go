package entities

import (
	"fmt"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
)

// NewPlayer 创建玩家（兔子）实体
// 参数:
//   - em: EntityManager 实例
//   - rm: ResourceManager 实例，用于加载精灵表
//   - cfg: 游戏配置，读取 player 段
//   - x, y: 出生位置（世界坐标，精灵中心）
//
// 返回: 创建的实体ID；精灵表加载失败时实体被销毁并返回错误
func NewPlayer(em *ecs.EntityManager, rm *game.ResourceManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	id := em.CreateEntity()

	if err := addSprite(em, rm, cfg, id, cfg.Player.Sheet, x, y, cfg.Player.Body); err != nil {
		em.DestroyEntity(id)
		return 0, fmt.Errorf("failed to create player: %w", err)
	}

	display, _ := ecs.GetComponent[*components.DisplayComponent](em, id)
	display.Depth = cfg.Player.Depth

	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: cfg.Player.Speed})
	return id, nil
}
