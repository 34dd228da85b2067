package entities

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
	"github.com/decker502/farm/pkg/systems"
	"github.com/decker502/farm/pkg/types"
)

// NewChest 创建宝箱实体，显示第 0 帧（关闭状态）
func NewChest(em *ecs.EntityManager, rm *game.ResourceManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	id := em.CreateEntity()
	if err := addSprite(em, rm, cfg, id, cfg.Chest.Sheet, x, y, cfg.Chest.Body); err != nil {
		em.DestroyEntity(id)
		return 0, fmt.Errorf("failed to create chest: %w", err)
	}
	ecs.AddComponent(em, id, &components.ChestComponent{})
	return id, nil
}

// ChestAnimFor 根据玩家朝向选择开箱动画
// 上下方向播放向下打开的动画；左右方向播放向右打开的动画，向左时水平翻转
func ChestAnimFor(cfg config.ChestConfig, facing types.Direction) (key string, flipX bool) {
	switch facing {
	case types.DirectionRight:
		return cfg.OpenRightAnim, false
	case types.DirectionLeft:
		return cfg.OpenRightAnim, true
	default:
		return cfg.OpenDownAnim, false
	}
}

// OpenChest 播放开箱动画，动画结束时调用 onComplete
//
// 宝箱正在打开时再次调用什么也不做并返回 false，onComplete 不会被调用。
func OpenChest(em *ecs.EntityManager, anims *systems.AnimationSystem, cfg config.ChestConfig, id ecs.EntityID, facing types.Direction, onComplete func()) bool {
	chest, ok := ecs.GetComponent[*components.ChestComponent](em, id)
	if !ok || chest.IsOpening {
		return false
	}

	key, flip := ChestAnimFor(cfg, facing)
	display, ok := ecs.GetComponent[*components.DisplayComponent](em, id)
	if ok {
		display.FlipX = flip
	}

	if err := anims.Play(id, key, false); err != nil {
		log.Warnf("[Chest] entity %d: %v", id, err)
		return false
	}
	chest.IsOpening = true

	anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id)
	anim.OnComplete = func() {
		chest.IsOpening = false
		if onComplete != nil {
			onComplete()
		}
	}
	log.Debugf("[Chest] opening %d with %q (flip=%v)", id, key, flip)
	return true
}
