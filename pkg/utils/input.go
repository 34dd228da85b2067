// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DirectionInput 当前帧按下的方向键
type DirectionInput struct {
	Left, Right, Up, Down bool
}

// 每个方向同时接受方向键和 WASD
var directionKeys = struct {
	left, right, up, down []ebiten.Key
}{
	left:  []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
	right: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
	up:    []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
	down:  []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
}

// ReadDirectionKeys 读取键盘上的方向输入
func ReadDirectionKeys() DirectionInput {
	return DirectionFromKeys(ebiten.IsKeyPressed)
}

// DirectionFromKeys 用给定的按键查询函数计算方向输入
func DirectionFromKeys(pressed func(ebiten.Key) bool) DirectionInput {
	held := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return DirectionInput{
		Left:  held(directionKeys.left),
		Right: held(directionKeys.right),
		Up:    held(directionKeys.up),
		Down:  held(directionKeys.down),
	}
}

// IsKeyJustPressed 按键是否在本帧刚按下
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
