package systems

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
)

// WanderSystem 动物的闲逛行为
//
// 行为完全由计时器驱动：Start 为动物注册一个循环计时器，每次触发时调用 Wander。
// 撞到障碍时物理系统回调 HandleCollision，动物停下并进入恢复期，
// 恢复期内闲逛计时器的触发被忽略，恢复结束后立即重新决策一次。
type WanderSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	animations    *AnimationSystem
	rng           *rand.Rand
}

// NewWanderSystem 创建闲逛系统
func NewWanderSystem(em *ecs.EntityManager, timers *TimerSystem, anims *AnimationSystem, rng *rand.Rand) *WanderSystem {
	return &WanderSystem{
		entityManager: em,
		timers:        timers,
		animations:    anims,
		rng:           rng,
	}
}

// Start 开始闲逛：播放发呆动画，并注册间隔为 delay 秒的循环计时器
func (s *WanderSystem) Start(id ecs.EntityID, delay float64) {
	wander, ok := ecs.GetComponent[*components.WanderComponent](s.entityManager, id)
	if !ok {
		return
	}
	s.play(id, wander.IdleAnim)
	if wander.MoveTimer != 0 {
		s.timers.Cancel(wander.MoveTimer)
	}
	wander.MoveTimer = s.timers.AddEvent(id, delay, func() { s.Wander(id) })
}

// Wander 做一次闲逛决策：按 IdleChance 停下，否则朝随机方向移动
func (s *WanderSystem) Wander(id ecs.EntityID) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	wander, ok := ecs.GetComponent[*components.WanderComponent](s.entityManager, id)
	if !ok || wander.IsColliding {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok {
		return
	}

	if s.rng.Float64() < wander.IdleChance {
		vel.VX, vel.VY = 0, 0
		s.play(id, wander.IdleAnim)
		return
	}

	angle := s.rng.Float64() * math.Pi * 2
	vel.VX = math.Cos(angle) * wander.Speed
	vel.VY = math.Sin(angle) * wander.Speed
	if vel.VX != 0 {
		if display, ok := ecs.GetComponent[*components.DisplayComponent](s.entityManager, id); ok {
			display.FlipX = vel.VX < 0
		}
	}
	s.play(id, wander.WalkAnim)
}

// HandleCollision 动物撞到障碍：停下、发呆，RecoveryDelay 秒后恢复闲逛
//
// 恢复期内的重复碰撞被忽略，不会叠加恢复计时器。
func (s *WanderSystem) HandleCollision(id ecs.EntityID) {
	wander, ok := ecs.GetComponent[*components.WanderComponent](s.entityManager, id)
	if !ok || wander.IsColliding {
		return
	}
	wander.IsColliding = true
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
		vel.VX, vel.VY = 0, 0
	}
	s.play(id, wander.IdleAnim)

	s.timers.DelayedCallFor(id, wander.RecoveryDelay, func() {
		wander.IsColliding = false
		s.Wander(id)
	})
}

func (s *WanderSystem) play(id ecs.EntityID, key string) {
	if key == "" {
		return
	}
	if err := s.animations.Play(id, key, true); err != nil {
		log.Warnf("[WanderSystem] entity %d: %v", id, err)
	}
}
