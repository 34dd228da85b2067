package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/entities"
	"github.com/decker502/farm/pkg/farmmap"
	"github.com/decker502/farm/pkg/types"
)

// spawnOrder 开局时依次安排的动物种类
var spawnOrder = []types.AnimalKind{types.AnimalChicken, types.AnimalCow}

// initPlayer 在屏幕中心创建玩家并让镜头跟随
func (s *FarmScene) initPlayer() error {
	x := float64(s.cfg.Screen.Width) / 2
	y := float64(s.cfg.Screen.Height) / 2

	id, err := entities.NewPlayer(s.entityManager, s.rm, s.cfg, x, y)
	if err != nil {
		return fmt.Errorf("farm scene: %w", err)
	}
	s.player = id
	s.physicsSystem.AddTileCollider(id, nil)
	s.cameraSystem.StartFollow(id, s.cfg.Camera.Lerp, s.cfg.Camera.Lerp)
	return nil
}

// scheduleAnimals 为每种动物随机决定开局数量，第 i 只在 i*SpawnStagger 秒后出现
func (s *FarmScene) scheduleAnimals() {
	for _, kind := range spawnOrder {
		animal, ok := s.cfg.Animal(kind.String())
		if !ok {
			continue
		}
		count := s.between(animal.Count.Min, animal.Count.Max)
		log.Debugf("[FarmScene] %d %s(s) scheduled", count, kind)

		for i := 0; i < count; i++ {
			s.timerSystem.DelayedCall(float64(i)*animal.SpawnStagger, func() {
				s.spawnAnimal(kind)
			})
		}
	}
}

// spawnAnimal 在随机位置创建一只动物，并接好地图碰撞、玩家重叠和闲逛计时器
func (s *FarmScene) spawnAnimal(kind types.AnimalKind) ecs.EntityID {
	animal, ok := s.cfg.Animal(kind.String())
	if !ok {
		return 0
	}
	x, y := s.randomPosition()
	id, err := entities.NewAnimal(s.entityManager, s.rm, s.cfg, kind, x, y)
	if err != nil {
		log.Errorf("[FarmScene] %v", err)
		return 0
	}

	s.physicsSystem.AddTileCollider(id, func(id ecs.EntityID, tile farmmap.Tile) {
		s.wanderSystem.HandleCollision(id)
	})
	s.physicsSystem.AddOverlap(s.player, id, func(_, animal ecs.EntityID) {
		s.collect(animal)
	})
	s.wanderSystem.Start(id, s.wanderDelay(animal))
	return id
}

// spawnChest 在随机位置生成宝箱
func (s *FarmScene) spawnChest() error {
	x, y := s.randomPosition()
	id, err := entities.NewChest(s.entityManager, s.rm, s.cfg, x, y)
	if err != nil {
		return fmt.Errorf("farm scene: %w", err)
	}
	s.chest = id
	s.gameState.HasChest = true
	s.physicsSystem.AddOverlap(s.player, id, func(_, chest ecs.EntityID) {
		s.openChest(chest)
	})
	log.Debugf("[FarmScene] chest spawned at (%.0f, %.0f)", x, y)
	return nil
}

// checkAndCreateChest 分数达到间隔的倍数且场上没有宝箱时生成宝箱
func (s *FarmScene) checkAndCreateChest() {
	if !s.gameState.ShouldSpawnChest(s.cfg.Chest.ScoreInterval) {
		return
	}
	if err := s.spawnChest(); err != nil {
		log.Errorf("[FarmScene] %v", err)
	}
}

// initScoreText 创建固定在屏幕左上角的分数文字
func (s *FarmScene) initScoreText() {
	hud := s.cfg.HUD
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: hud.X, Y: hud.Y})
	display := components.NewDisplayComponent()
	display.ScrollFactor = 0
	display.Depth = HUDDepth
	ecs.AddComponent(s.entityManager, id, display)
	ecs.AddComponent(s.entityManager, id, &components.TextComponent{
		Text:  s.gameState.ScoreText(),
		Size:  hud.FontSize,
		Color: config.MustHexColor(hud.Color),
	})
	s.scoreText = id
}

func (s *FarmScene) updateScoreText() {
	if txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, s.scoreText); ok {
		txt.Text = s.gameState.ScoreText()
	}
}

// randomPosition 在距屏幕边缘 margin 以内的区域随机取整数坐标（含两端）
func (s *FarmScene) randomPosition() (float64, float64) {
	margin := s.cfg.Spawn.Margin
	x := s.between(margin, s.cfg.Screen.Width-margin)
	y := s.between(margin, s.cfg.Screen.Height-margin)
	return float64(x), float64(y)
}

// wanderDelay 在配置范围内按整毫秒随机取闲逛间隔（秒）
func (s *FarmScene) wanderDelay(animal config.AnimalConfig) float64 {
	minMs := int(animal.WanderDelay.Min * 1000)
	maxMs := int(animal.WanderDelay.Max * 1000)
	return float64(s.between(minMs, maxMs)) / 1000
}

// between 返回 [lo, hi] 内的均匀随机整数
func (s *FarmScene) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}
