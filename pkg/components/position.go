package components

// PositionComponent 实体在世界坐标系中的位置
// 对精灵而言是图像中心（原点 0.5, 0.5），对文字和图形同样以中心对齐
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒），由 ArcadePhysicsSystem 积分到位置上
type VelocityComponent struct {
	VX float64
	VY float64
}
