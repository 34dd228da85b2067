package components

import "image/color"

// ShapeKind 矢量图形种类
type ShapeKind int

const (
	// ShapeStar 多角星
	ShapeStar ShapeKind = iota
	// ShapeCircle 圆
	ShapeCircle
)

// ShapeComponent 用矢量绘制的简单图形（庆祝特效里的星星和光晕）
type ShapeComponent struct {
	Kind        ShapeKind
	Points      int     // 星形的角数
	InnerRadius float64 // 星形内半径
	OuterRadius float64 // 星形外半径；圆形使用它作为半径
	Color       color.RGBA
	FillAlpha   float64 // 填充透明度，与 DisplayComponent.Alpha 相乘
}

// TextComponent 文字
type TextComponent struct {
	Text        string
	Size        float64 // 字号（像素）
	Color       color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64 // 描边宽度，0 表示不描边
	Centered    bool    // true 时以位置为中心，否则位置为左上角
}
