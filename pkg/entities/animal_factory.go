package entities

import (
	"fmt"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
	"github.com/decker502/farm/pkg/types"
)

// NewAnimal 创建一只可收集的动物（小鸡或奶牛）
//
// 只负责组装组件：闲逛计时器由 WanderSystem.Start 注册，
// 碰撞和重叠回调由场景注册。
func NewAnimal(em *ecs.EntityManager, rm *game.ResourceManager, cfg *config.GameConfig, kind types.AnimalKind, x, y float64) (ecs.EntityID, error) {
	animal, ok := cfg.Animal(kind.String())
	if !ok {
		return 0, fmt.Errorf("animal %q is not configured", kind)
	}

	id := em.CreateEntity()
	if err := addSprite(em, rm, cfg, id, animal.Sheet, x, y, animal.Body); err != nil {
		em.DestroyEntity(id)
		return 0, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.WanderComponent{
		Kind:          kind,
		Speed:         animal.Speed,
		IdleChance:    animal.IdleChance,
		RecoveryDelay: animal.RecoveryDelay,
		IdleAnim:      animal.IdleAnim,
		WalkAnim:      animal.WalkAnim,
	})
	ecs.AddComponent(em, id, &components.CollectibleComponent{
		Kind:   kind,
		Points: animal.Points,
	})
	return id, nil
}
