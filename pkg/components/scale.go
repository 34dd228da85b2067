package components

// DisplayComponent 实体级别的显示变换
// 精灵、图形、文字共用；TweenSystem 直接插值这里的字段
type DisplayComponent struct {
	ScaleX float64 // X轴缩放（1.0 = 原始大小）
	ScaleY float64 // Y轴缩放
	Angle  float64 // 旋转角度（度，顺时针）
	Alpha  float64 // 透明度 0..1
	FlipX  bool    // 水平翻转
	Depth  float64 // 绘制深度，越大越靠前；相同深度按 Y 排序

	// ScrollFactor 镜头滚动系数：1 跟随世界，0 固定在屏幕上（HUD）
	ScrollFactor float64

	Hidden bool
}

// NewDisplayComponent 返回默认显示参数（不缩放、不透明、跟随世界）
func NewDisplayComponent() *DisplayComponent {
	return &DisplayComponent{
		ScaleX:       1,
		ScaleY:       1,
		Alpha:        1,
		ScrollFactor: 1,
	}
}
