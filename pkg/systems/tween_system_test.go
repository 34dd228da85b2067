package systems

import (
	"math"
	"testing"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
)

func newTweenTarget(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, components.NewDisplayComponent())
	return id
}

func TestTweenLinear(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewTweenSystem(em)
	id := newTweenTarget(em, 0, 100)

	s.Add(id, &components.Tween{
		Targets:  []components.TweenTarget{{Property: components.TweenY, To: 50}, {Property: components.TweenAlpha, To: 0}},
		Duration: 0.4,
		Ease:     "Linear",
	})

	s.Update(0.1)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	display, _ := ecs.GetComponent[*components.DisplayComponent](em, id)
	if math.Abs(pos.Y-87.5) > 1e-9 || math.Abs(display.Alpha-0.75) > 1e-9 {
		t.Errorf("0.1 秒: y=%.3f alpha=%.3f, 期望 87.5 0.75", pos.Y, display.Alpha)
	}
}

func TestTweenEaseAndComplete(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewTweenSystem(em)
	id := newTweenTarget(em, 10, 10)

	completed := 0
	s.Add(id, &components.Tween{
		Targets: []components.TweenTarget{
			{Property: components.TweenX, To: 60},
			{Property: components.TweenScaleX, To: 0},
			{Property: components.TweenAngle, To: 360},
		},
		Duration:   0.4,
		Ease:       "Cubic.easeOut",
		OnComplete: func() { completed++ },
	})

	s.Update(0.2) // 一半时间，Cubic.easeOut 已走完 87.5%
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.X-(10+50*0.875)) > 1e-9 {
		t.Errorf("x = %.4f, 期望 %.4f", pos.X, 10+50*0.875)
	}

	s.Update(0.25)
	display, _ := ecs.GetComponent[*components.DisplayComponent](em, id)
	if pos.X != 60 || display.ScaleX != 0 || display.Angle != 360 {
		t.Errorf("结束时应精确到达目标: x=%.2f scale=%.2f angle=%.2f", pos.X, display.ScaleX, display.Angle)
	}
	if completed != 1 {
		t.Errorf("完成回调次数 = %d", completed)
	}

	tc, _ := ecs.GetComponent[*components.TweenComponent](em, id)
	if len(tc.Tweens) != 0 {
		t.Error("完成的补间应被移除")
	}
	s.Update(1)
	if completed != 1 {
		t.Error("完成回调只调用一次")
	}
}

func TestTweenDelayReadsStartValueLate(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewTweenSystem(em)
	id := newTweenTarget(em, 0, 0)

	s.Add(id, &components.Tween{
		Targets:  []components.TweenTarget{{Property: components.TweenX, To: 100}},
		Duration: 0.3,
		Delay:    0.05,
	})

	s.Update(0.04)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 0 {
		t.Fatalf("延迟期间不应移动, x=%.2f", pos.X)
	}

	// 延迟期间属性被其他逻辑修改，补间从新值开始
	pos.X = 40
	s.Update(0.01)
	if math.Abs(pos.X-40) > 1e-6 {
		t.Errorf("开始的那一帧进度约为 0, x=%.4f", pos.X)
	}
	s.Update(0.31)
	if pos.X != 100 {
		t.Errorf("结束 x=%.2f, 期望 100", pos.X)
	}
}

func TestTweenCompleteDestroysEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewTweenSystem(em)
	id := newTweenTarget(em, 0, 0)

	s.Add(id, &components.Tween{
		Targets:    []components.TweenTarget{{Property: components.TweenAlpha, To: 0}},
		Duration:   0.3,
		Ease:       "Cubic.easeOut",
		OnComplete: func() { em.DestroyEntity(id) },
	})
	s.Update(0.3)
	em.RemoveMarkedEntities()

	if em.EntityCount() != 0 {
		t.Errorf("补间完成后实体应被删除, 剩余 %d", em.EntityCount())
	}
}
