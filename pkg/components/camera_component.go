package components

// CameraComponent 主镜头状态
//
// ScrollX/ScrollY 是镜头左上角的世界坐标。
// 跟随目标时，目标离开以镜头中心为中心的死区后，镜头按 Lerp 系数追赶。
type CameraComponent struct {
	ScrollX float64
	ScrollY float64
	Width   float64 // 视口宽度
	Height  float64 // 视口高度

	// 跟随参数
	Target    uint64  // 跟随的实体ID，0 表示不跟随
	LerpX     float64 // 0..1，1 表示立即跟上
	LerpY     float64
	DeadzoneW float64 // 死区宽度，0 表示没有死区
	DeadzoneH float64

	// 镜头边界（世界坐标）
	HasBounds    bool
	BoundsX      float64
	BoundsY      float64
	BoundsWidth  float64
	BoundsHeight float64
}
