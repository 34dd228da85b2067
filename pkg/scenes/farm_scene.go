package scenes

import (
	"fmt"
	"image/color"
	"io/fs"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/farmmap"
	"github.com/decker502/farm/pkg/game"
	"github.com/decker502/farm/pkg/storage"
	"github.com/decker502/farm/pkg/systems"
	"github.com/decker502/farm/pkg/types"
	"github.com/decker502/farm/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// FarmSceneName 农场场景在 SceneManager 中的名称
const FarmSceneName = "farm"

// HUDDepth 分数文字的绘制深度
const HUDDepth = 100

// SessionSaver 保存一局的结果，*storage.Store 实现了它
type SessionSaver interface {
	SaveSession(rec storage.SessionRecord) error
}

// FarmOptions 创建农场场景所需的依赖
type FarmOptions struct {
	Config     *config.GameConfig
	Animations *config.AnimationConfig
	Resources  *game.ResourceManager
	DataFS     fs.FS        // 地图等数据文件所在的文件系统
	Store      SessionSaver // 可为 nil，不保存分数
	Rand       *rand.Rand   // 可为 nil，使用随机种子

	// Input 读取方向输入，nil 时读取键盘
	Input     func() utils.DirectionInput
	ShowDebug bool
}

// FarmScene 农场主场景
//
// 玩家在地图上收集四处闲逛的小鸡和奶牛，每收集一只得分并在 1 秒后补充一只同类；
// 分数每到 10 的倍数且场上没有宝箱时生成宝箱，打开宝箱获得额外奖励和庆祝特效。
// 开箱期间玩家输入被暂停，同一时间只能打开一个宝箱。
type FarmScene struct {
	cfg *config.GameConfig
	rm  *game.ResourceManager
	rng *rand.Rand

	store SessionSaver

	// ECS Framework and Systems
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	farmMap       *farmmap.FarmMap

	timerSystem         *systems.TimerSystem
	animationSystem     *systems.AnimationSystem
	playerControlSystem *systems.PlayerControlSystem
	wanderSystem        *systems.WanderSystem
	physicsSystem       *systems.ArcadePhysicsSystem
	tweenSystem         *systems.TweenSystem
	cameraSystem        *systems.CameraSystem
	renderSystem        *systems.RenderSystem

	background color.RGBA

	player    ecs.EntityID
	chest     ecs.EntityID // 0 表示场上没有宝箱
	scoreText ecs.EntityID
}

// NewFarmScene 创建农场场景：地图、玩家、镜头、分数，并安排动物和初始宝箱
func NewFarmScene(opts FarmOptions) (*FarmScene, error) {
	if opts.Config == nil || opts.Animations == nil || opts.Resources == nil || opts.DataFS == nil {
		return nil, fmt.Errorf("farm scene: config, animations, resources and data fs are required")
	}
	cfg := opts.Config

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &FarmScene{
		cfg:           cfg,
		rm:            opts.Resources,
		rng:           rng,
		store:         opts.Store,
		entityManager: ecs.NewEntityManager(),
		gameState:     game.NewGameState(),
	}

	if err := s.initMap(opts.DataFS); err != nil {
		return nil, err
	}
	s.initSystems(opts)

	if err := s.initPlayer(); err != nil {
		return nil, err
	}
	s.scheduleAnimals()
	if err := s.spawnChest(); err != nil {
		return nil, err
	}
	s.initScoreText()

	bg, err := config.ParseHexColor(cfg.Screen.Background)
	if err != nil {
		return nil, err
	}
	s.background = bg

	log.Infof("[FarmScene] session %s started", s.gameState.SessionID)
	return s, nil
}

// initMap 加载地图和所有图层用到的图块集
func (s *FarmScene) initMap(dataFS fs.FS) error {
	fm, err := farmmap.Load(dataFS, s.cfg.Map, s.cfg.Screen.Width, s.cfg.Screen.Height)
	if err != nil {
		return fmt.Errorf("farm scene: %w", err)
	}
	for _, layer := range fm.Layers {
		if _, err := s.rm.LoadTileset(layer.Tileset, s.cfg.Map.Tilesets[layer.Tileset.Name]); err != nil {
			return fmt.Errorf("farm scene: %w", err)
		}
	}
	s.farmMap = fm
	return nil
}

func (s *FarmScene) initSystems(opts FarmOptions) {
	em := s.entityManager
	w, h := float64(s.cfg.Screen.Width), float64(s.cfg.Screen.Height)

	s.timerSystem = systems.NewTimerSystem(em)
	s.animationSystem = systems.NewAnimationSystem(em, opts.Animations)
	s.playerControlSystem = systems.NewPlayerControlSystem(em, s.gameState, s.animationSystem, opts.Input)
	s.wanderSystem = systems.NewWanderSystem(em, s.timerSystem, s.animationSystem, s.rng)
	s.tweenSystem = systems.NewTweenSystem(em)

	s.physicsSystem = systems.NewArcadePhysicsSystem(em, s.farmMap)
	s.physicsSystem.SetWorldBounds(s.farmMap.Bounds())

	s.cameraSystem = systems.NewCameraSystem(em, w, h)
	s.cameraSystem.SetBounds(s.farmMap.Bounds())
	s.cameraSystem.SetDeadzone(s.cfg.Camera.DeadzoneWidth, s.cfg.Camera.DeadzoneHeight)

	s.renderSystem = systems.NewRenderSystem(em, s.cameraSystem, s.rm, s.farmMap)
	s.renderSystem.SetShowDebug(opts.ShowDebug)
}

// Update 按固定顺序推进各系统，最后清理本帧删除的实体
func (s *FarmScene) Update(deltaTime float64) {
	s.gameState.PlayTime += deltaTime

	s.timerSystem.Update(deltaTime)
	s.playerControlSystem.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制背景色、地图和实体
func (s *FarmScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.renderSystem.Draw(screen)
}

// SetShowDebug 开关碰撞盒调试层
func (s *FarmScene) SetShowDebug(show bool) {
	s.renderSystem.SetShowDebug(show)
}

// ShowDebug 是否正在绘制碰撞盒
func (s *FarmScene) ShowDebug() bool {
	return s.renderSystem.ShowDebug()
}

// GameState 返回本局状态
func (s *FarmScene) GameState() *game.GameState {
	return s.gameState
}

// SaveOnExit 把本局结果写入分数库，实现 game.Saveable
func (s *FarmScene) SaveOnExit() bool {
	if s.store == nil {
		return true
	}
	gs := s.gameState
	rec := storage.SessionRecord{
		SessionID:    gs.SessionID,
		Score:        gs.Score,
		Chickens:     gs.Collected[types.AnimalChicken],
		Cows:         gs.Collected[types.AnimalCow],
		ChestsOpened: gs.ChestsOpened,
		PlaySeconds:  gs.PlayTime,
	}
	if err := s.store.SaveSession(rec); err != nil {
		log.Errorf("[FarmScene] failed to save session %s: %v", gs.SessionID, err)
		return false
	}
	log.Infof("[FarmScene] session %s saved with score %d", gs.SessionID, gs.Score)
	return true
}
