package systems

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
	"github.com/decker502/farm/pkg/types"
	"github.com/decker502/farm/pkg/utils"
)

// PlayerControlSystem 把方向键输入转换为玩家速度和行走动画
//
// 先处理水平方向再处理垂直方向，两个方向同时按下时播放垂直方向的行走动画；
// 斜向移动时每个轴的速度为 speed/√2。GameState.CanMove 为 false 时整个系统暂停。
type PlayerControlSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	animations    *AnimationSystem
	readInput     func() utils.DirectionInput
}

// NewPlayerControlSystem 创建玩家控制系统
// readInput 为 nil 时读取键盘
func NewPlayerControlSystem(em *ecs.EntityManager, gs *game.GameState, anims *AnimationSystem, readInput func() utils.DirectionInput) *PlayerControlSystem {
	if readInput == nil {
		readInput = utils.ReadDirectionKeys
	}
	return &PlayerControlSystem{
		entityManager: em,
		gameState:     gs,
		animations:    anims,
		readInput:     readInput,
	}
}

// Update 读取输入并更新玩家
func (s *PlayerControlSystem) Update(dt float64) {
	if !s.gameState.CanMove {
		return
	}

	players := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.VelocityComponent](s.entityManager)
	if len(players) == 0 {
		return
	}
	input := s.readInput()

	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		vx, vy := 0.0, 0.0
		facing := types.DirectionDown
		if input.Left {
			vx = -player.Speed
			facing = types.DirectionLeft
		} else if input.Right {
			vx = player.Speed
			facing = types.DirectionRight
		}
		if input.Up {
			vy = -player.Speed
			facing = types.DirectionUp
		} else if input.Down {
			vy = player.Speed
			facing = types.DirectionDown
		}

		if vx != 0 && vy != 0 {
			normalized := player.Speed / math.Sqrt2
			vx = math.Copysign(normalized, vx)
			vy = math.Copysign(normalized, vy)
		}
		vel.VX, vel.VY = vx, vy

		key := "walk-" + facing.String()
		if vx == 0 && vy == 0 {
			// 停下时保持上一次的朝向
			current := ""
			if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); ok {
				current = anim.CurrentKey
			}
			key = "idle-" + types.DirectionFromAnimKey(current).String()
		}
		if err := s.animations.Play(id, key, true); err != nil {
			log.Warnf("[PlayerControlSystem] %v", err)
		}
	}
}
