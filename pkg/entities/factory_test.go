package entities

import (
	"testing"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/types"
)

func TestNewPlayer(t *testing.T) {
	env := newTestEnv(t)

	id, err := NewPlayer(env.em, env.rm, env.cfg, 240, 240)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](env.em, id)
	if pos.X != 240 || pos.Y != 240 {
		t.Errorf("位置 = (%v, %v), 期望 (240, 240)", pos.X, pos.Y)
	}
	player, ok := ecs.GetComponent[*components.PlayerComponent](env.em, id)
	if !ok || player.Speed != 130 {
		t.Errorf("玩家速度应为 130, got %+v", player)
	}
	display, _ := ecs.GetComponent[*components.DisplayComponent](env.em, id)
	if display.Depth != 10 {
		t.Errorf("玩家深度 = %v, 期望 10", display.Depth)
	}

	// 碰撞盒在脚下: 48x48 帧, 16x16 盒, 偏移 (16, 24)
	body, _ := ecs.GetComponent[*components.BodyComponent](env.em, id)
	left, top, right, bottom := body.Rect(pos)
	if left != 232 || top != 240 || right != 248 || bottom != 256 {
		t.Errorf("碰撞盒 = (%v, %v, %v, %v), 期望 (232, 240, 248, 256)", left, top, right, bottom)
	}
	if !body.CollideWorldBounds {
		t.Error("玩家应受世界边界约束")
	}

	sprite, _ := ecs.GetComponent[*components.SpriteComponent](env.em, id)
	if len(sprite.Frames) != 16 {
		t.Errorf("兔子精灵表应有 16 帧, got %d", len(sprite.Frames))
	}
}

func TestNewAnimal(t *testing.T) {
	tests := []struct {
		name       string
		kind       types.AnimalKind
		speed      float64
		idleChance float64
		recovery   float64
		bodyW      float64
		frameW     float64
	}{
		{"小鸡", types.AnimalChicken, 30, 0.3, 1.0, 12, 16},
		{"奶牛", types.AnimalCow, 20, 0.4, 1.5, 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			id, err := NewAnimal(env.em, env.rm, env.cfg, tt.kind, 150, 200)
			if err != nil {
				t.Fatalf("NewAnimal() error = %v", err)
			}

			wander, ok := ecs.GetComponent[*components.WanderComponent](env.em, id)
			if !ok {
				t.Fatal("缺少 WanderComponent")
			}
			if wander.Speed != tt.speed || wander.IdleChance != tt.idleChance || wander.RecoveryDelay != tt.recovery {
				t.Errorf("闲逛参数错误: %+v", wander)
			}
			if wander.IsColliding || wander.MoveTimer != 0 {
				t.Error("新动物不应处于恢复期，也不应已有计时器")
			}

			collectible, _ := ecs.GetComponent[*components.CollectibleComponent](env.em, id)
			if collectible.Kind != tt.kind || collectible.Points != 1 {
				t.Errorf("收集参数错误: %+v", collectible)
			}

			body, _ := ecs.GetComponent[*components.BodyComponent](env.em, id)
			if body.Width != tt.bodyW || body.SourceWidth != tt.frameW {
				t.Errorf("碰撞盒 %v/%v, 期望 %v/%v", body.Width, body.SourceWidth, tt.bodyW, tt.frameW)
			}
			if !ecs.HasComponent[*components.VelocityComponent](env.em, id) {
				t.Error("动物应有速度组件")
			}
		})
	}
}

func TestNewAnimalUnknownKind(t *testing.T) {
	env := newTestEnv(t)
	if _, err := NewAnimal(env.em, env.rm, env.cfg, types.AnimalUnknown, 0, 0); err == nil {
		t.Error("未配置的动物应返回错误")
	}
}

func TestFactoryMissingSheet(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Chest.Sheet = "missing"

	if _, err := NewChest(env.em, env.rm, env.cfg, 100, 100); err == nil {
		t.Fatal("精灵表未配置时应返回错误")
	}
	env.em.RemoveMarkedEntities()
	if env.em.EntityCount() != 0 {
		t.Errorf("失败时不应留下实体, count=%d", env.em.EntityCount())
	}
}
