package entities

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/systems"
)

func TestNewCelebration(t *testing.T) {
	env := newTestEnv(t)
	tweens := systems.NewTweenSystem(env.em)
	rng := rand.New(rand.NewPCG(1, 2))

	ids := NewCelebration(env.em, tweens, env.cfg.Celebration, rng, 300, 200, 45)
	// 文字 + 8 颗星 + 8 颗拖尾 + 光晕
	if len(ids) != 18 {
		t.Fatalf("特效实体数量 = %d, 期望 18", len(ids))
	}

	text, ok := ecs.GetComponent[*components.TextComponent](env.em, ids[0])
	if !ok || text.Text != "+45" || text.StrokeWidth != 4 {
		t.Errorf("加分文字错误: %+v", text)
	}
	textPos, _ := ecs.GetComponent[*components.PositionComponent](env.em, ids[0])
	if textPos.Y != 180 {
		t.Errorf("文字起始 Y = %v, 期望 180", textPos.Y)
	}

	palette := make(map[string]bool)
	for _, c := range env.cfg.Celebration.Stars.Colors {
		palette[fmt.Sprintf("%v", config.MustHexColor(c))] = true
	}
	for i := 0; i < 8; i++ {
		star, _ := ecs.GetComponent[*components.ShapeComponent](env.em, ids[1+2*i])
		trail, _ := ecs.GetComponent[*components.ShapeComponent](env.em, ids[2+2*i])
		if star.Kind != components.ShapeStar || star.Points != 5 || star.OuterRadius != 12 {
			t.Errorf("星星 %d 形状错误: %+v", i, star)
		}
		if trail.Color != star.Color || trail.OuterRadius != 8 {
			t.Errorf("拖尾 %d 应与星星同色且更小", i)
		}
		if !palette[fmt.Sprintf("%v", star.Color)] {
			t.Errorf("星星 %d 的颜色 %v 不在配置的调色板中", i, star.Color)
		}
	}

	glow, _ := ecs.GetComponent[*components.ShapeComponent](env.em, ids[17])
	if glow.Kind != components.ShapeCircle || glow.OuterRadius != 20 || glow.FillAlpha != 0.5 {
		t.Errorf("光晕错误: %+v", glow)
	}

	// 第 0 颗星（角度 0）飞到 (350, 200)
	for i := 0; i < 30; i++ {
		tweens.Update(1.0 / 60)
		if i == 14 {
			star, _ := ecs.GetComponent[*components.PositionComponent](env.em, ids[1])
			if star.X <= 300 || star.X >= 350 {
				t.Errorf("补间进行中星星 X 应在 (300, 350) 之间, got %v", star.X)
			}
		}
	}
	star, _ := ecs.GetComponent[*components.PositionComponent](env.em, ids[1])
	if math.Abs(star.X-350) > 1e-6 || math.Abs(star.Y-200) > 1e-6 {
		t.Errorf("星星终点 = (%v, %v), 期望 (350, 200)", star.X, star.Y)
	}

	// 补间结束后所有特效实体都被删除
	env.em.RemoveMarkedEntities()
	for _, id := range ids {
		if env.em.IsAlive(id) {
			t.Errorf("特效实体 %d 应在补间结束后被删除", id)
		}
	}
}
