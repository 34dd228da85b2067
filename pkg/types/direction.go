package types

import "strings"

// Direction 角色朝向
type Direction int

const (
	// DirectionDown 朝下（默认朝向）
	DirectionDown Direction = iota
	// DirectionUp 朝上
	DirectionUp
	// DirectionLeft 朝左
	DirectionLeft
	// DirectionRight 朝右
	DirectionRight
)

// String 返回朝向名称，与动画键名的后缀一致（如 "walk-left" 中的 "left"）
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "down"
	}
}

// ParseDirection 解析朝向名称，无法识别时返回 DirectionDown
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return DirectionUp
	case "left":
		return DirectionLeft
	case "right":
		return DirectionRight
	default:
		return DirectionDown
	}
}

// DirectionFromAnimKey 从 "<动作>-<朝向>" 形式的动画键中取出朝向
// 例如 "walk-left" -> DirectionLeft；键为空或格式不符时返回 DirectionDown
func DirectionFromAnimKey(key string) Direction {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return DirectionDown
	}
	return ParseDirection(parts[1])
}
