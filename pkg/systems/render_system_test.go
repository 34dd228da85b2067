package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
)

func addDrawable(em *ecs.EntityManager, x, y, depth, scrollFactor float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	display := components.NewDisplayComponent()
	display.Depth = depth
	display.ScrollFactor = scrollFactor
	ecs.AddComponent(em, id, display)
	ecs.AddComponent(em, id, &components.SpriteComponent{})
	return id
}

func TestRenderDrawOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := &RenderSystem{entityManager: em}

	lowAnimal := addDrawable(em, 0, 300, 0, 1)
	highAnimal := addDrawable(em, 0, 100, 0, 1)
	player := addDrawable(em, 0, 50, 10, 1)
	hud := addDrawable(em, 16, 16, 0, 0)
	sameY := addDrawable(em, 0, 100, 0, 1)

	hidden := addDrawable(em, 0, 0, 0, 1)
	display, _ := ecs.GetComponent[*components.DisplayComponent](em, hidden)
	display.Hidden = true

	// 只有位置和显示组件、没有可绘制内容的实体被跳过
	bare := em.CreateEntity()
	ecs.AddComponent(em, bare, &components.PositionComponent{})
	ecs.AddComponent(em, bare, components.NewDisplayComponent())

	world, screen := rs.drawOrder()

	want := []ecs.EntityID{highAnimal, sameY, lowAnimal, player}
	if len(world) != len(want) {
		t.Fatalf("世界实体 = %v, 期望 %v", world, want)
	}
	for i := range want {
		if world[i] != want[i] {
			t.Errorf("第 %d 个 = %d, 期望 %d（按深度、Y、ID 排序）", i, world[i], want[i])
		}
	}
	if len(screen) != 1 || screen[0] != hud {
		t.Errorf("屏幕固定实体 = %v, 期望 [%d]", screen, hud)
	}
}

func TestAppendStar(t *testing.T) {
	shape := &components.ShapeComponent{
		Kind:        components.ShapeStar,
		Points:      5,
		InnerRadius: 6,
		OuterRadius: 12,
		Color:       color.RGBA{R: 255, G: 215, A: 255},
		FillAlpha:   1,
	}
	display := components.NewDisplayComponent()

	vs, is := appendStar(nil, nil, shape, display, 100, 100, 1)
	if len(vs) != 11 {
		t.Fatalf("5 角星应有 11 个顶点（含中心）, got %d", len(vs))
	}
	if len(is) != 30 {
		t.Fatalf("5 角星应有 10 个三角形, got %d 个索引", len(is))
	}
	// 第一个外顶点朝上
	if math.Abs(float64(vs[1].DstX)-100) > 1e-4 || math.Abs(float64(vs[1].DstY)-88) > 1e-4 {
		t.Errorf("第一个尖角 = (%v, %v), 期望 (100, 88)", vs[1].DstX, vs[1].DstY)
	}
	// 最后一个三角形回到第一个外顶点
	if is[len(is)-1] != 1 {
		t.Errorf("三角形扇应闭合, 最后索引 = %d", is[len(is)-1])
	}

	// 缩放 0.5 并旋转 180 度后尖角朝下、半径减半
	display.ScaleX, display.ScaleY = 0.5, 0.5
	display.Angle = 180
	vs, _ = appendStar(vs[:0], is[:0], shape, display, 100, 100, 0.5)
	if math.Abs(float64(vs[1].DstY)-106) > 1e-4 {
		t.Errorf("旋转后尖角 Y = %v, 期望 106", vs[1].DstY)
	}
	if vs[0].ColorA != 0.5 || math.Abs(float64(vs[0].ColorR)-0.5) > 1e-6 {
		t.Errorf("顶点颜色应预乘 alpha: %+v", vs[0])
	}

	// 缩放到 0 时不产生三角形
	display.ScaleX = 0
	vs, is = appendStar(vs[:0], is[:0], shape, display, 0, 0, 1)
	if len(vs) != 0 || len(is) != 0 {
		t.Error("缩放为 0 的星形不应绘制")
	}
}

func TestWithAlpha(t *testing.T) {
	got := withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.5)
	if got.A != 127 || got.R != 127 {
		t.Errorf("withAlpha = %+v", got)
	}
}
