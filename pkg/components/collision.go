package components

// BodyComponent 街机物理的轴对齐碰撞盒
//
// 碰撞盒相对于精灵帧的左上角定位：
//
//	left = Position.X - SourceWidth/2 + OffsetX
//	top  = Position.Y - SourceHeight/2 + OffsetY
//
// 例如 48x48 的兔子帧，碰撞盒 16x16、偏移 (16, 24)，即脚下的一小块区域。
type BodyComponent struct {
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 相对帧左上角的X偏移
	OffsetY float64 // 相对帧左上角的Y偏移

	SourceWidth  float64 // 精灵帧宽度
	SourceHeight float64 // 精灵帧高度

	CollideWorldBounds bool // 是否被限制在世界边界内

	// 本帧的阻挡状态，每帧由物理系统重置
	BlockedLeft, BlockedRight, BlockedUp, BlockedDown bool
}

// Rect 返回碰撞盒在世界坐标中的边界 (left, top, right, bottom)
func (b *BodyComponent) Rect(pos *PositionComponent) (float64, float64, float64, float64) {
	left := pos.X - b.SourceWidth/2 + b.OffsetX
	top := pos.Y - b.SourceHeight/2 + b.OffsetY
	return left, top, left + b.Width, top + b.Height
}

// Center 返回碰撞盒中心的世界坐标
func (b *BodyComponent) Center(pos *PositionComponent) (float64, float64) {
	left, top, right, bottom := b.Rect(pos)
	return (left + right) / 2, (top + bottom) / 2
}

// IsBlocked 本帧是否在任一方向被阻挡
func (b *BodyComponent) IsBlocked() bool {
	return b.BlockedLeft || b.BlockedRight || b.BlockedUp || b.BlockedDown
}
