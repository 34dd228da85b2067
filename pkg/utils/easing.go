package utils

import "math"

// 缓动函数
//
// 输入进度 t ∈ [0, 1]，返回缓动后的进度 ∈ [0, 1]。
// 名称沿用补间配置里的写法（"Cubic.easeOut"、"Power2" 等），见 EaseByName。

// EaseFunc 缓动函数类型
type EaseFunc func(t float64) float64

// EaseLinear 匀速
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutCubic 三次方缓出，开始快结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutExpo 指数缓出
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// PowerN 是对应多项式缓出的别名：Power1 = Quad，Power2 = Cubic
var easeByName = map[string]EaseFunc{
	"":                EaseLinear,
	"Linear":          EaseLinear,
	"Quad.easeOut":    EaseOutQuad,
	"Quad.easeIn":     EaseInQuad,
	"Power1":          EaseOutQuad,
	"Cubic.easeOut":   EaseOutCubic,
	"Cubic.easeIn":    EaseInCubic,
	"Cubic.easeInOut": EaseInOutCubic,
	"Power2":          EaseOutCubic,
	"Expo.easeOut":    EaseOutExpo,
}

// EaseByName 按名称查找缓动函数，未知名称返回 false
func EaseByName(name string) (EaseFunc, bool) {
	fn, ok := easeByName[name]
	return fn, ok
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
