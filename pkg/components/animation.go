package components

// AnimationComponent 管理基于精灵表的键控帧动画
//
// 动画片段（帧序列、帧率、重复次数）来自动画配置，
// 组件只保存当前正在播放的片段及其进度。
type AnimationComponent struct {
	CurrentKey string  // 当前动画键，如 "walk-down"
	Frames     []int   // 当前片段在精灵表中的帧号序列
	FrameRate  float64 // 帧率（帧/秒）
	Repeat     int     // -1 无限循环，0 只播放一次，n 表示额外重复 n 次
	Repeated   int     // 已经重复的次数
	FrameIndex int     // 当前在 Frames 中的位置
	FrameTimer float64 // 当前帧已显示的时间（秒）
	IsPlaying  bool    // 是否正在播放
	IsFinished bool    // 一次性动画是否已播放完成

	// OnComplete 一次性动画完成时调用一次，调用后清空
	OnComplete func()
}
