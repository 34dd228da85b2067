package game

import (
	"fmt"

	"github.com/decker502/farm/pkg/types"
	"github.com/google/uuid"
)

// GameState 一局游戏的全局状态
//
// 由场景创建并传给需要它的系统，不做成全局单例，
// 这样测试和重新开局都能拿到干净的状态。
type GameState struct {
	SessionID string // 本局的唯一标识，写入分数记录

	Score    int
	CanMove  bool // 开箱期间为 false，玩家输入被暂停
	HasChest bool // 场上是否已经有宝箱

	// 统计
	Collected    map[types.AnimalKind]int
	ChestsOpened int
	PlayTime     float64 // 游戏时间（秒）
}

// NewGameState 创建新的一局
func NewGameState() *GameState {
	return &GameState{
		SessionID: uuid.NewString(),
		CanMove:   true,
		Collected: make(map[types.AnimalKind]int),
	}
}

// AddScore 增加分数并返回新分数
func (gs *GameState) AddScore(points int) int {
	gs.Score += points
	return gs.Score
}

// ScoreText HUD 上显示的分数文字
func (gs *GameState) ScoreText() string {
	return fmt.Sprintf("Score: %d", gs.Score)
}

// RecordCollect 记录收集了一只动物
func (gs *GameState) RecordCollect(kind types.AnimalKind) {
	gs.Collected[kind]++
}

// ShouldSpawnChest 没有宝箱、分数为正且是 interval 的倍数时需要生成宝箱
func (gs *GameState) ShouldSpawnChest(interval int) bool {
	if interval <= 0 {
		return false
	}
	return !gs.HasChest && gs.Score > 0 && gs.Score%interval == 0
}

// LockMovement 暂停玩家输入，已锁定时返回 false
func (gs *GameState) LockMovement() bool {
	if !gs.CanMove {
		return false
	}
	gs.CanMove = false
	return true
}

// UnlockMovement 恢复玩家输入
func (gs *GameState) UnlockMovement() {
	gs.CanMove = true
}
