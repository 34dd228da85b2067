package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/farmmap"
	"github.com/decker502/farm/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 绘制地图和所有可见实体
//
// 绘制顺序（从底到顶）：
//   - 地图瓦片图层（按地图配置的图层顺序）
//   - 跟随世界的实体（精灵、图形、文字），按 Depth 再按 Y 排序
//   - 固定在屏幕上的实体（ScrollFactor 为 0，如分数），同样按 Depth 排序
//   - 可选的碰撞盒调试层
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem
	resources     *game.ResourceManager
	farmMap       *farmmap.FarmMap // 可为 nil

	showDebug bool

	// 星形的三角形扇（复用，避免每帧分配）
	vertices []ebiten.Vertex
	indices  []uint16
	white    *ebiten.Image
}

// NewRenderSystem 创建渲染系统，farmMap 可以为 nil
func NewRenderSystem(em *ecs.EntityManager, camera *CameraSystem, rm *game.ResourceManager, farmMap *farmmap.FarmMap) *RenderSystem {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		resources:     rm,
		farmMap:       farmMap,
		white:         white.SubImage(white.Bounds().Inset(1)).(*ebiten.Image),
	}
}

// SetShowDebug 开关碰撞盒调试层
func (s *RenderSystem) SetShowDebug(show bool) {
	s.showDebug = show
}

// ShowDebug 是否绘制碰撞盒
func (s *RenderSystem) ShowDebug() bool {
	return s.showDebug
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.drawMap(screen)

	world, hud := s.drawOrder()
	for _, id := range world {
		s.drawEntity(screen, id)
	}
	for _, id := range hud {
		s.drawEntity(screen, id)
	}

	if s.showDebug {
		s.drawBodies(screen)
	}
}

// drawMap 绘制所有瓦片图层，只绘制与视口相交的瓦片
func (s *RenderSystem) drawMap(screen *ebiten.Image) {
	if s.farmMap == nil {
		return
	}
	cam := s.camera.Camera()
	tw, th := s.farmMap.TileWidth, s.farmMap.TileHeight

	for _, layer := range s.farmMap.Layers {
		s.farmMap.ForEachTile(layer, func(tx, ty, local int, flipX bool) {
			x, y, _, _ := s.farmMap.TileRect(tx, ty)
			if x+tw < cam.ScrollX || x > cam.ScrollX+cam.Width || y+th < cam.ScrollY || y > cam.ScrollY+cam.Height {
				return
			}
			img := s.resources.TileImage(layer.Tileset.Name, local)
			if img == nil {
				return
			}
			sx, sy := s.camera.WorldToScreen(x, y, 1)
			op := &ebiten.DrawImageOptions{}
			if flipX {
				op.GeoM.Scale(-1, 1)
				op.GeoM.Translate(tw, 0)
			}
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(img, op)
		})
	}
}

// drawOrder 返回要绘制的实体：跟随世界的和固定在屏幕上的，各自按 Depth、Y、ID 排序
func (s *RenderSystem) drawOrder() (world, hud []ecs.EntityID) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.DisplayComponent](s.entityManager)

	for _, id := range entities {
		display, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, id)
		if display.Hidden || !s.isDrawable(id) {
			continue
		}
		if display.ScrollFactor == 0 {
			hud = append(hud, id)
		} else {
			world = append(world, id)
		}
	}

	s.sortByDepth(world)
	s.sortByDepth(hud)
	return world, hud
}

func (s *RenderSystem) isDrawable(id ecs.EntityID) bool {
	return ecs.HasComponent[*components.SpriteComponent](s.entityManager, id) ||
		ecs.HasComponent[*components.ShapeComponent](s.entityManager, id) ||
		ecs.HasComponent[*components.TextComponent](s.entityManager, id)
}

func (s *RenderSystem) sortByDepth(ids []ecs.EntityID) {
	sort.SliceStable(ids, func(i, j int) bool {
		di, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, ids[i])
		dj, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, ids[j])
		if di.Depth != dj.Depth {
			return di.Depth < dj.Depth
		}
		pi, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, ids[i])
		pj, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, ids[j])
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return ids[i] < ids[j]
	})
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	display, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, id)
	x, y := s.camera.WorldToScreen(pos.X, pos.Y, display.ScrollFactor)

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		s.drawSprite(screen, sprite, display, x, y)
	}
	if shape, ok := ecs.GetComponent[*components.ShapeComponent](s.entityManager, id); ok {
		s.drawShape(screen, shape, display, x, y)
	}
	if txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
		s.drawText(screen, txt, display, x, y)
	}
}

// drawSprite 以图像中心为原点绘制当前帧
func (s *RenderSystem) drawSprite(screen *ebiten.Image, sprite *components.SpriteComponent, display *components.DisplayComponent, x, y float64) {
	img := sprite.CurrentImage()
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	if display.FlipX {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(display.ScaleX, display.ScaleY)
	op.GeoM.Rotate(display.Angle * math.Pi / 180)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(display.Alpha))
	screen.DrawImage(img, op)
}

func (s *RenderSystem) drawShape(screen *ebiten.Image, shape *components.ShapeComponent, display *components.DisplayComponent, x, y float64) {
	alpha := shape.FillAlpha * display.Alpha
	if alpha <= 0 {
		return
	}
	switch shape.Kind {
	case components.ShapeCircle:
		r := shape.OuterRadius * math.Max(display.ScaleX, display.ScaleY)
		if r <= 0 {
			return
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), withAlpha(shape.Color, alpha), true)
	case components.ShapeStar:
		s.vertices, s.indices = appendStar(s.vertices[:0], s.indices[:0], shape, display, x, y, alpha)
		if len(s.indices) == 0 {
			return
		}
		screen.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

// appendStar 以三角形扇构建星形：中心点 + 交替的外顶点和内顶点
// 第一个尖角朝上，角度按顺时针旋转
func appendStar(vs []ebiten.Vertex, is []uint16, shape *components.ShapeComponent, display *components.DisplayComponent, x, y, alpha float64) ([]ebiten.Vertex, []uint16) {
	if shape.Points < 2 || display.ScaleX == 0 || display.ScaleY == 0 {
		return vs, is
	}
	r, g, b := float32(shape.Color.R)/255, float32(shape.Color.G)/255, float32(shape.Color.B)/255
	a := float32(alpha)
	vertex := func(vx, vy float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(vx), DstY: float32(vy),
			SrcX: 1, SrcY: 1,
			// 颜色需要预乘 alpha
			ColorR: r * a, ColorG: g * a, ColorB: b * a, ColorA: a,
		}
	}

	base := uint16(len(vs))
	vs = append(vs, vertex(x, y))

	rotation := display.Angle * math.Pi / 180
	corners := shape.Points * 2
	for i := 0; i < corners; i++ {
		radius := shape.OuterRadius
		if i%2 == 1 {
			radius = shape.InnerRadius
		}
		theta := -math.Pi/2 + float64(i)*math.Pi/float64(shape.Points)
		px := math.Cos(theta) * radius * display.ScaleX
		py := math.Sin(theta) * radius * display.ScaleY
		rx := px*math.Cos(rotation) - py*math.Sin(rotation)
		ry := px*math.Sin(rotation) + py*math.Cos(rotation)
		vs = append(vs, vertex(x+rx, y+ry))
	}
	for i := 0; i < corners; i++ {
		next := (i+1)%corners + 1
		is = append(is, base, base+uint16(i+1), base+uint16(next))
	}
	return vs, is
}

// drawText 绘制文字，描边通过在一圈偏移位置重复绘制实现
func (s *RenderSystem) drawText(screen *ebiten.Image, txt *components.TextComponent, display *components.DisplayComponent, x, y float64) {
	if txt.Text == "" || display.Alpha <= 0 {
		return
	}
	face, err := s.resources.Font(txt.Size)
	if err != nil {
		log.Warnf("[RenderSystem] font: %v", err)
		return
	}

	if txt.Centered {
		w, h := text.Measure(txt.Text, face, 0)
		x -= w / 2
		y -= h / 2
	}

	if txt.StrokeWidth > 0 {
		offset := txt.StrokeWidth / 2
		for i := 0; i < 8; i++ {
			theta := float64(i) * math.Pi / 4
			op := &text.DrawOptions{}
			op.GeoM.Translate(x+math.Round(math.Cos(theta)*offset), y+math.Round(math.Sin(theta)*offset))
			op.ColorScale.ScaleWithColor(txt.StrokeColor)
			op.ColorScale.ScaleAlpha(float32(display.Alpha))
			text.Draw(screen, txt.Text, face, op)
		}
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(txt.Color)
	op.ColorScale.ScaleAlpha(float32(display.Alpha))
	text.Draw(screen, txt.Text, face, op)
}

// drawBodies 碰撞盒调试层：绿色为动态实体，蓝色为静态实体，阻挡方向变红
func (s *RenderSystem) drawBodies(screen *ebiten.Image) {
	bodies := ecs.GetEntitiesWith2[*components.PositionComponent, *components.BodyComponent](s.entityManager)
	for _, id := range bodies {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		left, top, _, _ := body.Rect(pos)
		x, y := s.camera.WorldToScreen(left, top, 1)

		clr := color.RGBA{G: 0xff, A: 0xff}
		if !ecs.HasComponent[*components.VelocityComponent](s.entityManager, id) {
			clr = color.RGBA{B: 0xff, A: 0xff}
		}
		if body.IsBlocked() {
			clr = color.RGBA{R: 0xff, A: 0xff}
		}
		vector.StrokeRect(screen, float32(x), float32(y), float32(body.Width), float32(body.Height), 1, clr, false)
	}
}

// withAlpha 返回预乘了 alpha 的颜色
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(255 * alpha),
	}
}
