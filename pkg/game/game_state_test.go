package game

import (
	"testing"

	"github.com/decker502/farm/pkg/types"
)

func TestNewGameState(t *testing.T) {
	a := NewGameState()
	b := NewGameState()

	if a.SessionID == "" || a.SessionID == b.SessionID {
		t.Errorf("每局应有不同的会话 ID: %q %q", a.SessionID, b.SessionID)
	}
	if !a.CanMove || a.HasChest || a.Score != 0 {
		t.Errorf("初始状态错误: %+v", a)
	}
	if a.ScoreText() != "Score: 0" {
		t.Errorf("ScoreText() = %q", a.ScoreText())
	}
}

func TestShouldSpawnChest(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		hasChest bool
		want     bool
	}{
		{"零分不生成", 0, false, false},
		{"非倍数", 7, false, false},
		{"十分", 10, false, true},
		{"五十五分", 55, false, false},
		{"已有宝箱", 20, true, false},
		{"开箱奖励后正好倍数", 100, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGameState()
			gs.Score = tt.score
			gs.HasChest = tt.hasChest
			if got := gs.ShouldSpawnChest(10); got != tt.want {
				t.Errorf("ShouldSpawnChest() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

func TestMovementLock(t *testing.T) {
	gs := NewGameState()
	if !gs.LockMovement() {
		t.Fatal("第一次锁定应该成功")
	}
	if gs.LockMovement() {
		t.Error("已锁定时再次锁定应返回 false")
	}
	gs.UnlockMovement()
	if !gs.CanMove {
		t.Error("解锁后应可移动")
	}
}

func TestScoreAndStats(t *testing.T) {
	gs := NewGameState()
	gs.AddScore(1)
	gs.RecordCollect(types.AnimalChicken)
	gs.RecordCollect(types.AnimalChicken)
	gs.RecordCollect(types.AnimalCow)

	if got := gs.AddScore(45); got != 46 {
		t.Errorf("AddScore() = %d, 期望 46", got)
	}
	if gs.Collected[types.AnimalChicken] != 2 || gs.Collected[types.AnimalCow] != 1 {
		t.Errorf("收集统计错误: %v", gs.Collected)
	}
}
