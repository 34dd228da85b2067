package scenes

import (
	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/entities"
	"github.com/decker502/farm/pkg/types"
)

// collect 玩家碰到动物：加分、检查宝箱、移除动物，并在延迟后补充一只同类
func (s *FarmScene) collect(animal ecs.EntityID) {
	if !s.entityManager.IsAlive(animal) {
		return
	}
	collectible, ok := ecs.GetComponent[*components.CollectibleComponent](s.entityManager, animal)
	if !ok {
		return
	}
	kind := collectible.Kind

	s.gameState.AddScore(collectible.Points)
	s.gameState.RecordCollect(kind)
	s.updateScoreText()
	s.checkAndCreateChest()

	s.entityManager.DestroyEntity(animal)
	log.Debugf("[FarmScene] collected %s %d, score %d", kind, animal, s.gameState.Score)

	delay := 0.0
	if cfg, ok := s.cfg.Animal(kind.String()); ok {
		delay = cfg.RespawnDelay
	}
	s.timerSystem.DelayedCall(delay, func() {
		s.spawnAnimal(kind)
	})
}

// openChest 玩家碰到宝箱
//
// 开箱期间玩家输入被暂停，重叠回调每帧都会触发，锁定状态下直接忽略。
// 动画结束后播放庆祝特效、加上奖励分数、移除宝箱并恢复输入。
func (s *FarmScene) openChest(chest ecs.EntityID) {
	if !s.gameState.LockMovement() {
		return
	}

	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, s.player); ok {
		vel.VX, vel.VY = 0, 0
	}
	facing := types.DirectionDown
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, s.player); ok {
		facing = types.DirectionFromAnimKey(anim.CurrentKey)
	}

	opened := entities.OpenChest(s.entityManager, s.animationSystem, s.cfg.Chest, chest, facing, func() {
		s.finishChest(chest)
	})
	if !opened {
		s.gameState.UnlockMovement()
	}
}

func (s *FarmScene) finishChest(chest ecs.EntityID) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, chest); ok {
		entities.NewCelebration(s.entityManager, s.tweenSystem, s.cfg.Celebration, s.rng, pos.X, pos.Y, s.cfg.Chest.Bonus)
	}

	s.gameState.AddScore(s.cfg.Chest.Bonus)
	s.gameState.ChestsOpened++
	s.updateScoreText()

	s.entityManager.DestroyEntity(chest)
	if s.chest == chest {
		s.chest = 0
	}
	s.gameState.HasChest = false
	s.gameState.UnlockMovement()
	log.Debugf("[FarmScene] chest opened, score %d", s.gameState.Score)

	s.checkAndCreateChest()
}
