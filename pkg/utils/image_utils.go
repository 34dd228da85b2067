package utils

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SliceSheet 把精灵表按帧大小切成子图，顺序为从左到右、从上到下
// 不足一帧的边角会被忽略
func SliceSheet(sheet *ebiten.Image, frameWidth, frameHeight int) []*ebiten.Image {
	if sheet == nil || frameWidth <= 0 || frameHeight <= 0 {
		return nil
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameWidth
	rows := bounds.Dy() / frameHeight

	frames := make([]*ebiten.Image, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := bounds.Min.X + col*frameWidth
			y := bounds.Min.Y + row*frameHeight
			rect := image.Rect(x, y, x+frameWidth, y+frameHeight)
			frames = append(frames, sheet.SubImage(rect).(*ebiten.Image))
		}
	}
	return frames
}

// PlaceholderSheet 生成一张单行的占位精灵表
//
// 每帧画一个底色的椭圆身体，再画一个随帧号上下移动的深色标记，
// 这样缺少美术资源时仍能看出动画在播放、朝向在变化。
func PlaceholderSheet(frameWidth, frameHeight, frames int, base color.RGBA) *image.RGBA {
	if frames <= 0 {
		frames = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, frameWidth*frames, frameHeight))
	mark := Shade(base, 0.55)
	outline := Shade(base, 0.35)

	cx := float64(frameWidth) / 2
	cy := float64(frameHeight) * 0.55
	rx := float64(frameWidth) * 0.3
	ry := float64(frameHeight) * 0.3

	for f := 0; f < frames; f++ {
		ox := f * frameWidth
		markY := cy - ry/2 + float64(f%4)*ry/4
		for y := 0; y < frameHeight; y++ {
			for x := 0; x < frameWidth; x++ {
				dx := (float64(x) + 0.5 - cx) / rx
				dy := (float64(y) + 0.5 - cy) / ry
				d := dx*dx + dy*dy
				switch {
				case d > 1:
					continue
				case d > 0.75:
					img.SetRGBA(ox+x, y, outline)
				case absf(float64(y)+0.5-markY) < ry/6:
					img.SetRGBA(ox+x, y, mark)
				default:
					img.SetRGBA(ox+x, y, base)
				}
			}
		}
	}
	return img
}

// PlaceholderTileset 生成占位图块集，每块瓦片为底色加深色描边
// 相邻编号的瓦片明暗略有不同，方便分辨图块边界
func PlaceholderTileset(tileWidth, tileHeight, columns, tileCount int, base color.RGBA) *image.RGBA {
	if columns <= 0 {
		columns = 1
	}
	rows := (tileCount + columns - 1) / columns
	if rows <= 0 {
		rows = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, tileWidth*columns, tileHeight*rows))
	border := Shade(base, 0.8)

	for i := 0; i < tileCount; i++ {
		fill := base
		if i%2 == 1 {
			fill = Shade(base, 0.92)
		}
		ox := (i % columns) * tileWidth
		oy := (i / columns) * tileHeight
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth; x++ {
				c := fill
				if x == 0 || y == 0 || x == tileWidth-1 || y == tileHeight-1 {
					c = border
				}
				img.SetRGBA(ox+x, oy+y, c)
			}
		}
	}
	return img
}

// Shade 按比例调暗颜色，alpha 不变
func Shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		out := float64(v) * factor
		if out > 255 {
			out = 255
		}
		return uint8(out)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
