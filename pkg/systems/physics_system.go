package systems

import (
	"math"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/farmmap"
)

// tileBias 单帧内允许纠正的最大额外嵌入深度（像素）
// 嵌入更深的瓦片被视为出生时就重叠，不做分离
const tileBias = 16.0

// SolidTileSource 提供实心瓦片查询，*farmmap.FarmMap 实现了它
type SolidTileSource interface {
	SolidTiles(left, top, right, bottom float64) []farmmap.Tile
}

// TileColliderFunc 实体与实心瓦片发生碰撞分离时调用，每帧最多一次
type TileColliderFunc func(id ecs.EntityID, tile farmmap.Tile)

// OverlapFunc 两个实体的碰撞盒重叠时调用，重叠期间每帧都会调用
type OverlapFunc func(a, b ecs.EntityID)

type tileCollider struct {
	id       ecs.EntityID
	callback TileColliderFunc
}

type overlapPair struct {
	a, b     ecs.EntityID
	callback OverlapFunc
}

// ArcadePhysicsSystem 最小化的街机物理
//
// 每帧按轴积分速度：先移动 X 并与实心瓦片分离，再移动 Y 并分离，
// 然后把开启了 CollideWorldBounds 的碰撞盒限制在世界边界内，最后检查重叠对。
// 被阻挡的轴速度清零。
type ArcadePhysicsSystem struct {
	entityManager *ecs.EntityManager
	tiles         SolidTileSource

	// 世界边界
	hasBounds    bool
	boundsX      float64
	boundsY      float64
	boundsWidth  float64
	boundsHeight float64

	colliders []tileCollider
	overlaps  []overlapPair
}

// NewArcadePhysicsSystem 创建物理系统，tiles 可以为 nil（没有地图碰撞）
func NewArcadePhysicsSystem(em *ecs.EntityManager, tiles SolidTileSource) *ArcadePhysicsSystem {
	return &ArcadePhysicsSystem{
		entityManager: em,
		tiles:         tiles,
	}
}

// SetWorldBounds 设置世界边界
func (ps *ArcadePhysicsSystem) SetWorldBounds(x, y, width, height float64) {
	ps.hasBounds = true
	ps.boundsX, ps.boundsY = x, y
	ps.boundsWidth, ps.boundsHeight = width, height
}

// AddTileCollider 让实体与所有碰撞图层发生碰撞，callback 可以为 nil
func (ps *ArcadePhysicsSystem) AddTileCollider(id ecs.EntityID, callback TileColliderFunc) {
	ps.colliders = append(ps.colliders, tileCollider{id: id, callback: callback})
}

// AddOverlap 注册一对实体的重叠检测
// 任一实体被删除后该检测自动移除
func (ps *ArcadePhysicsSystem) AddOverlap(a, b ecs.EntityID, callback OverlapFunc) {
	ps.overlaps = append(ps.overlaps, overlapPair{a: a, b: b, callback: callback})
}

// OverlapCount 当前注册的重叠对数量
func (ps *ArcadePhysicsSystem) OverlapCount() int {
	return len(ps.overlaps)
}

// Update 推进物理
func (ps *ArcadePhysicsSystem) Update(dt float64) {
	ps.pruneDead()

	// 带速度的实体按轴移动
	moving := ecs.GetEntitiesWith3[*components.PositionComponent, *components.VelocityComponent, *components.BodyComponent](ps.entityManager)
	for _, id := range moving {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](ps.entityManager, id)

		body.BlockedLeft, body.BlockedRight = false, false
		body.BlockedUp, body.BlockedDown = false, false

		collider, collides := ps.colliderFor(id)
		var hit *farmmap.Tile

		dx := vel.VX * dt
		pos.X += dx
		if collides && dx != 0 {
			if tile, ok := ps.separateX(pos, vel, body, dx); ok && hit == nil {
				hit = &tile
			}
		}

		dy := vel.VY * dt
		pos.Y += dy
		if collides && dy != 0 {
			if tile, ok := ps.separateY(pos, vel, body, dy); ok && hit == nil {
				hit = &tile
			}
		}

		if body.CollideWorldBounds {
			ps.clampToWorld(pos, vel, body)
		}

		if hit != nil && collider.callback != nil {
			collider.callback(id, *hit)
		}
	}

	// 静止的碰撞盒（宝箱）也受世界边界约束
	static := ecs.GetEntitiesWith2[*components.PositionComponent, *components.BodyComponent](ps.entityManager)
	for _, id := range static {
		if ecs.HasComponent[*components.VelocityComponent](ps.entityManager, id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](ps.entityManager, id)
		if body.CollideWorldBounds {
			ps.clampToWorld(pos, nil, body)
		}
	}

	ps.checkOverlaps()
}

func (ps *ArcadePhysicsSystem) colliderFor(id ecs.EntityID) (tileCollider, bool) {
	if ps.tiles == nil {
		return tileCollider{}, false
	}
	for _, c := range ps.colliders {
		if c.id == id {
			return c, true
		}
	}
	return tileCollider{}, false
}

// separateX 沿 X 轴把碰撞盒推出实心瓦片
func (ps *ArcadePhysicsSystem) separateX(pos *components.PositionComponent, vel *components.VelocityComponent, body *components.BodyComponent, dx float64) (farmmap.Tile, bool) {
	left, top, right, bottom := body.Rect(pos)
	tiles := ps.tiles.SolidTiles(left, top, right, bottom)
	if len(tiles) == 0 {
		return farmmap.Tile{}, false
	}

	var (
		push  float64
		found bool
		first farmmap.Tile
	)
	for _, t := range tiles {
		var p float64
		if dx > 0 {
			p = right - t.X // 向右撞到瓦片左边
		} else {
			p = t.X + t.W - left // 向左撞到瓦片右边
		}
		if p <= 0 || p > math.Abs(dx)+tileBias {
			continue
		}
		if !found || p > push {
			push = p
			first = t
			found = true
		}
	}
	if !found {
		return farmmap.Tile{}, false
	}

	if dx > 0 {
		pos.X -= push
		body.BlockedRight = true
	} else {
		pos.X += push
		body.BlockedLeft = true
	}
	vel.VX = 0
	return first, true
}

// separateY 沿 Y 轴把碰撞盒推出实心瓦片
func (ps *ArcadePhysicsSystem) separateY(pos *components.PositionComponent, vel *components.VelocityComponent, body *components.BodyComponent, dy float64) (farmmap.Tile, bool) {
	left, top, right, bottom := body.Rect(pos)
	tiles := ps.tiles.SolidTiles(left, top, right, bottom)
	if len(tiles) == 0 {
		return farmmap.Tile{}, false
	}

	var (
		push  float64
		found bool
		first farmmap.Tile
	)
	for _, t := range tiles {
		var p float64
		if dy > 0 {
			p = bottom - t.Y
		} else {
			p = t.Y + t.H - top
		}
		if p <= 0 || p > math.Abs(dy)+tileBias {
			continue
		}
		if !found || p > push {
			push = p
			first = t
			found = true
		}
	}
	if !found {
		return farmmap.Tile{}, false
	}

	if dy > 0 {
		pos.Y -= push
		body.BlockedDown = true
	} else {
		pos.Y += push
		body.BlockedUp = true
	}
	vel.VY = 0
	return first, true
}

// clampToWorld 把碰撞盒限制在世界边界内，vel 可以为 nil
func (ps *ArcadePhysicsSystem) clampToWorld(pos *components.PositionComponent, vel *components.VelocityComponent, body *components.BodyComponent) {
	if !ps.hasBounds {
		return
	}
	left, top, right, bottom := body.Rect(pos)
	maxX := ps.boundsX + ps.boundsWidth
	maxY := ps.boundsY + ps.boundsHeight

	if left < ps.boundsX {
		pos.X += ps.boundsX - left
		body.BlockedLeft = true
		if vel != nil && vel.VX < 0 {
			vel.VX = 0
		}
	} else if right > maxX {
		pos.X -= right - maxX
		body.BlockedRight = true
		if vel != nil && vel.VX > 0 {
			vel.VX = 0
		}
	}

	if top < ps.boundsY {
		pos.Y += ps.boundsY - top
		body.BlockedUp = true
		if vel != nil && vel.VY < 0 {
			vel.VY = 0
		}
	} else if bottom > maxY {
		pos.Y -= bottom - maxY
		body.BlockedDown = true
		if vel != nil && vel.VY > 0 {
			vel.VY = 0
		}
	}
}

// checkOverlaps 对每个注册的实体对做 AABB 重叠检测
// 回调可能删除实体或注册新的重叠对，遍历使用快照
func (ps *ArcadePhysicsSystem) checkOverlaps() {
	pairs := make([]overlapPair, len(ps.overlaps))
	copy(pairs, ps.overlaps)

	for _, pair := range pairs {
		if !ps.entityManager.IsAlive(pair.a) || !ps.entityManager.IsAlive(pair.b) {
			continue
		}
		if ps.Overlaps(pair.a, pair.b) && pair.callback != nil {
			pair.callback(pair.a, pair.b)
		}
	}
}

// Overlaps 两个实体的碰撞盒是否重叠（仅接触边缘不算）
func (ps *ArcadePhysicsSystem) Overlaps(a, b ecs.EntityID) bool {
	posA, ok1 := ecs.GetComponent[*components.PositionComponent](ps.entityManager, a)
	bodyA, ok2 := ecs.GetComponent[*components.BodyComponent](ps.entityManager, a)
	posB, ok3 := ecs.GetComponent[*components.PositionComponent](ps.entityManager, b)
	bodyB, ok4 := ecs.GetComponent[*components.BodyComponent](ps.entityManager, b)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}

	left1, top1, right1, bottom1 := bodyA.Rect(posA)
	left2, top2, right2, bottom2 := bodyB.Rect(posB)
	return right1 > left2 && left1 < right2 && bottom1 > top2 && top1 < bottom2
}

// pruneDead 移除引用已删除实体的碰撞器和重叠对
func (ps *ArcadePhysicsSystem) pruneDead() {
	colliders := ps.colliders[:0]
	for _, c := range ps.colliders {
		if ps.entityManager.IsAlive(c.id) {
			colliders = append(colliders, c)
		}
	}
	ps.colliders = colliders

	overlaps := ps.overlaps[:0]
	for _, p := range ps.overlaps {
		if ps.entityManager.IsAlive(p.a) && ps.entityManager.IsAlive(p.b) {
			overlaps = append(overlaps, p)
		}
	}
	ps.overlaps = overlaps
}
