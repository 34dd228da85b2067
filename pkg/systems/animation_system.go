package systems

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
)

// AnimationSystem 管理所有实体的键控帧动画
//
// 动画片段在创建时从 AnimationConfig 注册，实体通过 Play 切换片段，
// Update 推进帧并把当前帧号写回 SpriteComponent。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	clips         map[string]config.AnimationClip
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager, anims *config.AnimationConfig) *AnimationSystem {
	s := &AnimationSystem{
		entityManager: em,
		clips:         make(map[string]config.AnimationClip),
	}
	if anims != nil {
		for _, clip := range anims.Animations {
			s.clips[clip.Key] = clip
		}
	}
	return s
}

// Has 是否注册了该动画
func (s *AnimationSystem) Has(key string) bool {
	_, ok := s.clips[key]
	return ok
}

// Play 让实体播放指定动画
//
// ignoreIfPlaying 为 true 且该动画正在播放时什么也不做；
// 否则从第一帧重新开始，并清除上一段动画的完成回调。
func (s *AnimationSystem) Play(id ecs.EntityID, key string, ignoreIfPlaying bool) error {
	clip, ok := s.clips[key]
	if !ok {
		return fmt.Errorf("animation %q is not registered", key)
	}
	anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	if !ok {
		anim = &components.AnimationComponent{}
		ecs.AddComponent(s.entityManager, id, anim)
	}

	if ignoreIfPlaying && anim.IsPlaying && anim.CurrentKey == key {
		return nil
	}

	anim.CurrentKey = key
	anim.Frames = clip.Frames()
	anim.FrameRate = clip.FrameRate
	anim.Repeat = clip.Repeat
	anim.Repeated = 0
	anim.FrameIndex = 0
	anim.FrameTimer = 0
	anim.IsPlaying = true
	anim.IsFinished = false
	anim.OnComplete = nil

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		sprite.Frame = anim.Frames[0]
	}
	return nil
}

// Update 推进所有正在播放的动画
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.AnimationComponent, *components.SpriteComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

		if !anim.IsPlaying || len(anim.Frames) == 0 || anim.FrameRate <= 0 {
			continue
		}

		frameDuration := 1.0 / anim.FrameRate
		anim.FrameTimer += deltaTime

		for anim.FrameTimer >= frameDuration {
			anim.FrameTimer -= frameDuration

			next := anim.FrameIndex + 1
			if next >= len(anim.Frames) {
				if anim.Repeat < 0 || anim.Repeated < anim.Repeat {
					anim.Repeated++
					next = 0
				} else {
					s.finish(id, anim)
					break
				}
			}
			anim.FrameIndex = next
			sprite.Frame = anim.Frames[next]
		}
	}
}

// finish 一次性动画停在最后一帧并触发完成回调
func (s *AnimationSystem) finish(id ecs.EntityID, anim *components.AnimationComponent) {
	anim.IsPlaying = false
	anim.IsFinished = true
	anim.FrameTimer = 0

	log.Debugf("[AnimationSystem] %q complete (entity %d)", anim.CurrentKey, id)

	// 回调可能再次调用 Play 设置新的回调，先取出再清空
	callback := anim.OnComplete
	anim.OnComplete = nil
	if callback != nil {
		callback()
	}
}
