package components

// TimerID 标识 TimerSystem 中的一个计时事件，0 表示无效
// 组件只保存句柄，事件本身由 TimerSystem 持有
type TimerID uint64
