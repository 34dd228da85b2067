package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现
// Frames 是整张精灵表切好的所有帧，Frame 是当前显示的帧索引（由 AnimationSystem 推进）
type SpriteComponent struct {
	Sheet  string          // 精灵表键名，如 "rabbit"
	Frames []*ebiten.Image // 精灵表的全部帧，可为 nil（无头测试）
	Frame  int             // 当前帧索引
}

// CurrentImage 返回当前帧图像，索引越界或没有帧时返回 nil
func (s *SpriteComponent) CurrentImage() *ebiten.Image {
	if s.Frame < 0 || s.Frame >= len(s.Frames) {
		return nil
	}
	return s.Frames[s.Frame]
}
