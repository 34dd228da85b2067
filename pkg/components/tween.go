package components

// TweenProperty 可被补间的属性
type TweenProperty int

const (
	// TweenX 位置 X
	TweenX TweenProperty = iota
	// TweenY 位置 Y
	TweenY
	// TweenScaleX X 缩放
	TweenScaleX
	// TweenScaleY Y 缩放
	TweenScaleY
	// TweenAngle 旋转角度
	TweenAngle
	// TweenAlpha 透明度
	TweenAlpha
)

// TweenTarget 单个属性的目标值
// From 在补间开始（延迟结束）时从实体当前状态读取
type TweenTarget struct {
	Property TweenProperty
	To       float64
	From     float64
}

// Tween 一段时间内的属性插值
type Tween struct {
	Targets  []TweenTarget
	Duration float64 // 持续时间（秒）
	Delay    float64 // 开始前的延迟（秒）
	Ease     string  // 缓动名称，如 "Cubic.easeOut"、"Power2"
	Elapsed  float64 // 已经过的时间（含延迟）

	Started  bool
	Finished bool

	// OnComplete 补间完成时调用一次
	OnComplete func()
}

// TweenComponent 实体上所有活动的补间
type TweenComponent struct {
	Tweens []*Tween
}
