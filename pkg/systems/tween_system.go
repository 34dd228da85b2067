package systems

import (
	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/utils"
)

// TweenSystem 在一段时间内把实体属性插值到目标值
//
// 起始值在补间真正开始（延迟结束）的那一帧从实体读取，
// 所以同一属性上前后排队的补间会自然衔接。
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Add 给实体添加一个补间
func (s *TweenSystem) Add(id ecs.EntityID, tween *components.Tween) {
	tc, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
	if !ok {
		tc = &components.TweenComponent{}
		ecs.AddComponent(s.entityManager, id, tc)
	}
	if _, ok := utils.EaseByName(tween.Ease); !ok {
		log.Warnf("[TweenSystem] unknown ease %q, using Linear", tween.Ease)
	}
	tc.Tweens = append(tc.Tweens, tween)
}

// Update 推进所有补间
func (s *TweenSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager)

	for _, id := range entities {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		tc, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		display, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, id)

		var finished []*components.Tween
		for _, tw := range tc.Tweens {
			if tw.Finished {
				continue
			}
			tw.Elapsed += dt
			if tw.Elapsed < tw.Delay {
				continue
			}

			if !tw.Started {
				tw.Started = true
				for i := range tw.Targets {
					tw.Targets[i].From = readProperty(pos, display, tw.Targets[i].Property)
				}
			}

			progress := 1.0
			if tw.Duration > 0 {
				progress = (tw.Elapsed - tw.Delay) / tw.Duration
			}
			if progress >= 1 {
				progress = 1
				tw.Finished = true
			}

			ease, ok := utils.EaseByName(tw.Ease)
			if !ok {
				ease = utils.EaseLinear
			}
			eased := ease(progress)
			for _, target := range tw.Targets {
				writeProperty(pos, display, target.Property, utils.Lerp(target.From, target.To, eased))
			}

			if tw.Finished {
				finished = append(finished, tw)
			}
		}

		// 先移除已完成的补间，再调用回调（回调可能添加新补间或删除实体）
		if len(finished) > 0 {
			active := tc.Tweens[:0]
			for _, tw := range tc.Tweens {
				if !tw.Finished {
					active = append(active, tw)
				}
			}
			tc.Tweens = active
			for _, tw := range finished {
				if tw.OnComplete != nil {
					tw.OnComplete()
				}
			}
		}
	}
}

func readProperty(pos *components.PositionComponent, d *components.DisplayComponent, p components.TweenProperty) float64 {
	switch p {
	case components.TweenX:
		if pos != nil {
			return pos.X
		}
	case components.TweenY:
		if pos != nil {
			return pos.Y
		}
	case components.TweenScaleX:
		if d != nil {
			return d.ScaleX
		}
	case components.TweenScaleY:
		if d != nil {
			return d.ScaleY
		}
	case components.TweenAngle:
		if d != nil {
			return d.Angle
		}
	case components.TweenAlpha:
		if d != nil {
			return d.Alpha
		}
	}
	return 0
}

func writeProperty(pos *components.PositionComponent, d *components.DisplayComponent, p components.TweenProperty, v float64) {
	switch p {
	case components.TweenX:
		if pos != nil {
			pos.X = v
		}
	case components.TweenY:
		if pos != nil {
			pos.Y = v
		}
	case components.TweenScaleX:
		if d != nil {
			d.ScaleX = v
		}
	case components.TweenScaleY:
		if d != nil {
			d.ScaleY = v
		}
	case components.TweenAngle:
		if d != nil {
			d.Angle = v
		}
	case components.TweenAlpha:
		if d != nil {
			d.Alpha = v
		}
	}
}
