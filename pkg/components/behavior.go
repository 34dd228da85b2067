package components

import "github.com/decker502/farm/pkg/types"

// WanderComponent 动物闲逛行为
//
// 每次闲逛计时器触发时按 IdleChance 的概率停下，否则朝随机方向以 Speed 移动。
// 撞到障碍后进入恢复期（IsColliding），恢复期间忽略闲逛计时器。
type WanderComponent struct {
	Kind          types.AnimalKind
	Speed         float64 // 移动速度（像素/秒）
	IdleChance    float64 // 停下发呆的概率 0..1
	RecoveryDelay float64 // 碰撞后的恢复时间（秒）
	IdleAnim      string  // 发呆动画键
	WalkAnim      string  // 行走动画键

	IsColliding bool    // 是否处于碰撞恢复期
	MoveTimer   TimerID // 循环闲逛计时器
}

// PlayerComponent 玩家控制参数
type PlayerComponent struct {
	Speed float64 // 移动速度（像素/秒）
}

// ChestComponent 宝箱状态
type ChestComponent struct {
	IsOpening bool // 正在播放开箱动画，期间的开箱请求被忽略
}

// CollectibleComponent 可被玩家收集的实体
type CollectibleComponent struct {
	Kind   types.AnimalKind
	Points int // 收集得分
}
