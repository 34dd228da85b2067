package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/systems"
)

// EffectDepth 庆祝特效的绘制深度，高于玩家
const EffectDepth = 20

// NewCelebration 在 (x, y) 处创建开箱庆祝特效
//
// 包括上浮淡出的加分文字、一圈向外飞散的星星和拖尾星星、以及中心扩散的光晕。
// 每个特效实体在自己的补间完成时删除自己。
//
// 返回: 创建的全部实体ID
func NewCelebration(em *ecs.EntityManager, tweens *systems.TweenSystem, cfg config.CelebrationConfig, rng *rand.Rand, x, y float64, bonus int) []ecs.EntityID {
	var ids []ecs.EntityID
	ids = append(ids, newBonusText(em, tweens, cfg.Text, x, y, bonus))

	colors := make([]color.RGBA, 0, len(cfg.Stars.Colors))
	for _, c := range cfg.Stars.Colors {
		colors = append(colors, config.MustHexColor(c))
	}
	if len(colors) == 0 {
		colors = append(colors, color.RGBA{R: 0xff, G: 0xd7, A: 0xff})
	}

	for i := 0; i < cfg.Stars.Count; i++ {
		angle := float64(i) * math.Pi * 2 / float64(cfg.Stars.Count)
		targetX := x + math.Cos(angle)*cfg.Stars.Distance
		targetY := y + math.Sin(angle)*cfg.Stars.Distance
		fill := colors[rng.IntN(len(colors))]

		star := newEffectShape(em, x, y, cfg.Stars.Scale, &components.ShapeComponent{
			Kind:        components.ShapeStar,
			Points:      cfg.Stars.Points,
			InnerRadius: cfg.Stars.InnerRadius,
			OuterRadius: cfg.Stars.OuterRadius,
			Color:       fill,
			FillAlpha:   1,
		})
		tweens.Add(star, &components.Tween{
			Targets:    burstTargets(targetX, targetY, cfg.Stars.Spin),
			Duration:   cfg.Stars.Duration,
			Ease:       cfg.Stars.Ease,
			OnComplete: destroyOnComplete(em, star),
		})

		trail := newEffectShape(em, x, y, cfg.Trail.Scale, &components.ShapeComponent{
			Kind:        components.ShapeStar,
			Points:      cfg.Stars.Points,
			InnerRadius: cfg.Trail.InnerRadius,
			OuterRadius: cfg.Trail.OuterRadius,
			Color:       fill,
			FillAlpha:   1,
		})
		tweens.Add(trail, &components.Tween{
			Targets:    burstTargets(targetX, targetY, cfg.Trail.Spin),
			Duration:   cfg.Trail.Duration,
			Delay:      cfg.Trail.Delay,
			Ease:       cfg.Trail.Ease,
			OnComplete: destroyOnComplete(em, trail),
		})

		ids = append(ids, star, trail)
	}

	glow := newEffectShape(em, x, y, 1, &components.ShapeComponent{
		Kind:        components.ShapeCircle,
		OuterRadius: cfg.Glow.Radius,
		Color:       config.MustHexColor(cfg.Glow.Color),
		FillAlpha:   cfg.Glow.Alpha,
	})
	tweens.Add(glow, &components.Tween{
		Targets: []components.TweenTarget{
			{Property: components.TweenScaleX, To: cfg.Glow.Scale},
			{Property: components.TweenScaleY, To: cfg.Glow.Scale},
			{Property: components.TweenAlpha, To: 0},
		},
		Duration:   cfg.Glow.Duration,
		Ease:       cfg.Glow.Ease,
		OnComplete: destroyOnComplete(em, glow),
	})
	ids = append(ids, glow)

	return ids
}

// newBonusText "+N" 文字从 y+OffsetY 上浮到 y+RiseTo 并淡出
func newBonusText(em *ecs.EntityManager, tweens *systems.TweenSystem, cfg config.CelebrationTextConfig, x, y float64, bonus int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y + cfg.OffsetY})
	display := components.NewDisplayComponent()
	display.Depth = EffectDepth
	ecs.AddComponent(em, id, display)
	ecs.AddComponent(em, id, &components.TextComponent{
		Text:        fmt.Sprintf("+%d", bonus),
		Size:        cfg.FontSize,
		Color:       config.MustHexColor(cfg.Color),
		StrokeColor: config.MustHexColor(cfg.Stroke),
		StrokeWidth: cfg.StrokeWidth,
		Centered:    true,
	})
	tweens.Add(id, &components.Tween{
		Targets: []components.TweenTarget{
			{Property: components.TweenY, To: y + cfg.RiseTo},
			{Property: components.TweenAlpha, To: 0},
		},
		Duration:   cfg.Duration,
		Ease:       cfg.Ease,
		OnComplete: destroyOnComplete(em, id),
	})
	return id
}

func newEffectShape(em *ecs.EntityManager, x, y, scale float64, shape *components.ShapeComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	display := components.NewDisplayComponent()
	display.ScaleX, display.ScaleY = scale, scale
	display.Depth = EffectDepth
	ecs.AddComponent(em, id, display)
	ecs.AddComponent(em, id, shape)
	return id
}

// burstTargets 飞到目标点、缩小到 0、旋转到 spin 度并淡出
func burstTargets(x, y, spin float64) []components.TweenTarget {
	return []components.TweenTarget{
		{Property: components.TweenX, To: x},
		{Property: components.TweenY, To: y},
		{Property: components.TweenScaleX, To: 0},
		{Property: components.TweenScaleY, To: 0},
		{Property: components.TweenAngle, To: spin},
		{Property: components.TweenAlpha, To: 0},
	}
}

func destroyOnComplete(em *ecs.EntityManager, id ecs.EntityID) func() {
	return func() { em.DestroyEntity(id) }
}
