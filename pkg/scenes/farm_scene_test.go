package scenes

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
	"github.com/decker502/farm/pkg/storage"
	"github.com/decker502/farm/pkg/types"
	"github.com/decker502/farm/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

var repoFS = os.DirFS("../..")

type farmFixture struct {
	scene *FarmScene
	input utils.DirectionInput
	store *storage.Store
}

// newFarmFixture 创建不自动生成动物的场景，动物由测试显式生成
// 初始宝箱被移到远离玩家的位置
func newFarmFixture(t *testing.T) *farmFixture {
	t.Helper()
	cfg, err := config.LoadGameConfig(repoFS, config.GameConfigPath)
	require.NoError(t, err)
	anims, err := config.LoadAnimationConfig(repoFS, config.AnimationConfigPath)
	require.NoError(t, err)

	for name, animal := range cfg.Animals {
		animal.Count = config.IntRange{}
		cfg.Animals[name] = animal
	}

	store, err := storage.Open(storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &farmFixture{store: store}
	scene, err := NewFarmScene(FarmOptions{
		Config:     cfg,
		Animations: anims,
		Resources:  game.NewResourceManager(nil),
		DataFS:     repoFS,
		Store:      store,
		Rand:       rand.New(rand.NewPCG(7, 11)),
		Input:      func() utils.DirectionInput { return f.input },
	})
	require.NoError(t, err)
	f.scene = scene

	f.moveTo(scene.chest, 120, 120)
	return f
}

func (f *farmFixture) position(id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.scene.entityManager, id)
	return pos
}

func (f *farmFixture) moveTo(id ecs.EntityID, x, y float64) {
	pos := f.position(id)
	pos.X, pos.Y = x, y
}

func (f *farmFixture) run(seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		f.scene.Update(frame)
	}
}

func (f *farmFixture) animals(kind types.AnimalKind) []ecs.EntityID {
	var out []ecs.EntityID
	em := f.scene.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.CollectibleComponent](em) {
		c, _ := ecs.GetComponent[*components.CollectibleComponent](em, id)
		if c.Kind == kind && em.IsAlive(id) {
			out = append(out, id)
		}
	}
	return out
}

func (f *farmFixture) scoreText() string {
	txt, _ := ecs.GetComponent[*components.TextComponent](f.scene.entityManager, f.scene.scoreText)
	return txt.Text
}

func TestNewFarmScene(t *testing.T) {
	f := newFarmFixture(t)
	s := f.scene

	pos := f.position(s.player)
	assert.Equal(t, 240.0, pos.X)
	assert.Equal(t, 240.0, pos.Y)

	assert.Equal(t, "Score: 0", f.scoreText())
	assert.True(t, s.gameState.HasChest, "开局应有一个宝箱")
	assert.NotZero(t, s.chest)
	assert.True(t, s.gameState.CanMove)

	// 地图 640x640 居中在 480x480 屏幕上
	x, y, w, h := s.farmMap.Bounds()
	assert.Equal(t, []float64{-80, -80, 640, 640}, []float64{x, y, w, h})

	cam := s.cameraSystem.Camera()
	assert.Equal(t, uint64(s.player), cam.Target)
	assert.Equal(t, 0.0, cam.ScrollX)
}

func TestInitialAnimalsAreStaggered(t *testing.T) {
	cfg, err := config.LoadGameConfig(repoFS, config.GameConfigPath)
	require.NoError(t, err)
	anims, err := config.LoadAnimationConfig(repoFS, config.AnimationConfigPath)
	require.NoError(t, err)

	scene, err := NewFarmScene(FarmOptions{
		Config:     cfg,
		Animations: anims,
		Resources:  game.NewResourceManager(nil),
		DataFS:     repoFS,
		Rand:       rand.New(rand.NewPCG(3, 5)),
		Input:      func() utils.DirectionInput { return utils.DirectionInput{} },
	})
	require.NoError(t, err)
	f := &farmFixture{scene: scene}
	// 动物出生点离边缘至少 100 像素，玩家停在角落不会碰到它们
	f.moveTo(scene.player, 24, 24)

	// 第一帧只生成第 0 只小鸡和第 0 头奶牛
	scene.Update(frame)
	assert.Len(t, f.animals(types.AnimalChicken), 1)
	assert.Len(t, f.animals(types.AnimalCow), 1)

	// 最多 6 只小鸡（2.5 秒）和 4 头奶牛（2.1 秒）
	f.run(2.6)
	chickens := len(f.animals(types.AnimalChicken))
	cows := len(f.animals(types.AnimalCow))
	assert.GreaterOrEqual(t, chickens, 4)
	assert.LessOrEqual(t, chickens, 6)
	assert.GreaterOrEqual(t, cows, 2)
	assert.LessOrEqual(t, cows, 4)
	assert.Equal(t, 0, scene.gameState.Score)
}

func TestSpawnPositionWithinMargin(t *testing.T) {
	f := newFarmFixture(t)
	for i := 0; i < 200; i++ {
		x, y := f.scene.randomPosition()
		require.True(t, x >= 100 && x <= 380 && y >= 100 && y <= 380, "位置越界: (%v, %v)", x, y)
		require.Equal(t, float64(int(x)), x, "坐标应为整数")
	}
}

func TestCollectAnimalRespawns(t *testing.T) {
	f := newFarmFixture(t)
	s := f.scene

	chicken := s.spawnAnimal(types.AnimalChicken)
	require.NotZero(t, chicken)
	// 玩家移到角落，补充的动物不会出现在玩家身上
	f.moveTo(s.player, 24, 24)
	f.moveTo(chicken, 24, 30)

	s.Update(frame)
	assert.Equal(t, 1, s.gameState.Score)
	assert.Equal(t, "Score: 1", f.scoreText())
	assert.False(t, s.entityManager.IsAlive(chicken), "被收集的动物应被删除")
	assert.Empty(t, f.animals(types.AnimalChicken))

	f.run(0.9)
	assert.Empty(t, f.animals(types.AnimalChicken), "1 秒内不应补充")
	f.run(0.2)
	respawned := f.animals(types.AnimalChicken)
	require.Len(t, respawned, 1, "1 秒后应补充一只小鸡")

	// 补充的动物接好了闲逛计时器
	wander, _ := ecs.GetComponent[*components.WanderComponent](s.entityManager, respawned[0])
	assert.NotZero(t, wander.MoveTimer)
	assert.True(t, s.timerSystem.IsPending(wander.MoveTimer))
}

func TestCollectSpawnsChestAtInterval(t *testing.T) {
	f := newFarmFixture(t)
	s := f.scene
	f.moveTo(s.player, 24, 24)

	// 先移除开局宝箱
	s.entityManager.DestroyEntity(s.chest)
	s.gameState.HasChest = false
	s.chest = 0
	s.Update(frame)

	s.gameState.Score = 8
	cow := s.spawnAnimal(types.AnimalCow)
	f.moveTo(cow, 24, 30)
	s.Update(frame)
	assert.Equal(t, 9, s.gameState.Score)
	assert.False(t, s.gameState.HasChest)

	chicken := s.spawnAnimal(types.AnimalChicken)
	f.moveTo(chicken, 24, 30)
	s.Update(frame)
	assert.Equal(t, 10, s.gameState.Score)
	assert.True(t, s.gameState.HasChest, "分数到 10 时应生成宝箱")
	assert.NotZero(t, s.chest)
}

func TestOpenChestFlow(t *testing.T) {
	f := newFarmFixture(t)
	s := f.scene
	chest := s.chest

	// 玩家向左走一步，朝向为 left
	f.input = utils.DirectionInput{Left: true}
	s.Update(frame)
	f.input = utils.DirectionInput{}

	playerPos := f.position(s.player)
	f.moveTo(chest, playerPos.X, playerPos.Y+8)
	s.Update(frame)

	require.False(t, s.gameState.CanMove, "开箱期间应锁定移动")
	chestComp, _ := ecs.GetComponent[*components.ChestComponent](s.entityManager, chest)
	assert.True(t, chestComp.IsOpening)
	display, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, chest)
	assert.True(t, display.FlipX, "向左开箱应翻转")

	// 锁定期间输入被忽略
	before := *playerPos
	f.input = utils.DirectionInput{Right: true}
	f.run(0.2)
	assert.Equal(t, before, *playerPos)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, s.player)
	assert.Zero(t, vel.VX)
	f.input = utils.DirectionInput{}

	// 5 帧 @10fps 后动画完成
	f.run(0.4)
	assert.Equal(t, 45, s.gameState.Score)
	assert.Equal(t, "Score: 45", f.scoreText())
	assert.True(t, s.gameState.CanMove)
	assert.False(t, s.gameState.HasChest)
	assert.False(t, s.entityManager.IsAlive(chest))
	assert.Equal(t, 1, s.gameState.ChestsOpened)

	// 庆祝特效存在，0.5 秒后全部消失
	shapes := ecs.GetEntitiesWith1[*components.ShapeComponent](s.entityManager)
	assert.NotEmpty(t, shapes)
	f.run(0.5)
	assert.Empty(t, ecs.GetEntitiesWith1[*components.ShapeComponent](s.entityManager))
}

func TestChestIgnoredWhileLocked(t *testing.T) {
	f := newFarmFixture(t)
	s := f.scene

	s.gameState.LockMovement()
	playerPos := f.position(s.player)
	f.moveTo(s.chest, playerPos.X, playerPos.Y+8)
	s.Update(frame)

	chestComp, _ := ecs.GetComponent[*components.ChestComponent](s.entityManager, s.chest)
	assert.False(t, chestComp.IsOpening, "锁定期间碰到宝箱不应打开")
	assert.Equal(t, 0, s.gameState.Score)
}

func TestSaveOnExit(t *testing.T) {
	f := newFarmFixture(t)
	s := f.scene
	s.gameState.Score = 23
	s.gameState.RecordCollect(types.AnimalChicken)
	s.gameState.RecordCollect(types.AnimalCow)
	s.gameState.RecordCollect(types.AnimalCow)

	require.True(t, s.SaveOnExit())
	// 重复保存覆盖同一条记录
	s.gameState.Score = 25
	require.True(t, s.SaveOnExit())

	top, err := f.store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, s.gameState.SessionID, top[0].SessionID)
	assert.Equal(t, 25, top[0].Score)
	assert.Equal(t, 1, top[0].Chickens)
	assert.Equal(t, 2, top[0].Cows)
}

func TestNewFarmSceneRequiresDependencies(t *testing.T) {
	_, err := NewFarmScene(FarmOptions{})
	assert.Error(t, err)
}
