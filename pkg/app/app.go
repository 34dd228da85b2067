// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载配置、资源、设置和分数库，
// 创建农场场景，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io/fs"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/embedded"
	"github.com/decker502/farm/pkg/game"
	"github.com/decker502/farm/pkg/scenes"
	"github.com/decker502/farm/pkg/storage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 设置存储使用的应用名
const AppName = "farm"

// Config 定义应用启动配置
type Config struct {
	// Seed 随机种子，0 表示每局随机
	Seed int64
	// DBPath 分数库路径，为空则不保存分数
	DBPath string
	// AssetsDir 图片所在的根目录（其下为 assets/...），为空则全部使用占位图
	AssetsDir string
	// DataDir 可选的 data/ 覆盖目录根，其中的文件优先于嵌入版本
	DataDir string
	// Debug 启动时绘制碰撞盒（与设置中的 ShowDebug 取或）
	Debug bool
	// Scale 窗口缩放倍数，0 表示使用设置中的值
	Scale int
	// Settings 设置管理器，为 nil 时打开用户目录下的设置
	Settings *game.SettingsManager
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	store        *storage.Store
	gameConfig   *config.GameConfig
	showDebug    bool // 当前是否绘制碰撞盒
	closed       bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	var overlay fs.FS
	if cfg.DataDir != "" {
		overlay = os.DirFS(cfg.DataDir)
	}
	dataFS, err := embedded.WithOverlay(overlay)
	if err != nil {
		return nil, err
	}

	gameConfig, err := config.LoadGameConfig(dataFS, config.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	animations, err := config.LoadAnimationConfig(dataFS, config.AnimationConfigPath)
	if err != nil {
		return nil, fmt.Errorf("animation config: %w", err)
	}
	if err := animations.CheckSheets(gameConfig.Sheets); err != nil {
		return nil, fmt.Errorf("animation config: %w", err)
	}
	log.Infof("[App] loaded %d animations, %d sprite sheets", len(animations.Animations), len(gameConfig.Sheets))
	if overlay != nil {
		for _, path := range overriddenFiles(overlay, config.GameConfigPath, config.AnimationConfigPath, gameConfig.Map.Path) {
			log.Infof("[App] %s overridden by %s", path, cfg.DataDir)
		}
	}

	var assets fs.FS
	if cfg.AssetsDir != "" {
		assets = os.DirFS(cfg.AssetsDir)
	}
	resourceManager := game.NewResourceManager(assets)

	settings := cfg.Settings
	if settings == nil {
		settings = game.OpenSettingsManager(AppName)
	}
	if cfg.Scale > 0 {
		settings.SetWindowScale(cfg.Scale)
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			// 没有分数库也能玩
			log.Warnf("[App] scores will not be saved: %v", err)
			store = nil
		}
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		store:        store,
		gameConfig:   gameConfig,
		showDebug:    cfg.Debug || settings.GetSettings().ShowDebug,
	}
	a.sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		if name != scenes.FarmSceneName {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
		opts := scenes.FarmOptions{
			Config:     gameConfig,
			Animations: animations,
			Resources:  resourceManager,
			DataFS:     dataFS,
			ShowDebug:  a.showDebug, // 重新开局沿用当前的开关
		}
		// 避免把 nil *Store 装进接口
		if store != nil {
			opts.Store = store
		}
		if cfg.Seed != 0 {
			opts.Rand = rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))
		}
		return scenes.NewFarmScene(opts)
	})

	if err := a.sceneManager.LoadScene(scenes.FarmSceneName); err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	if n := resourceManager.PlaceholderCount(); n > 0 {
		log.Warnf("[App] %d image(s) missing, drawing placeholders", n)
	}

	return a, nil
}

// overriddenFiles 返回 overlay 中存在、并且会覆盖嵌入版本的数据文件
func overriddenFiles(overlay fs.FS, paths ...string) []string {
	var out []string
	for _, path := range paths {
		if !embedded.Exists(path) {
			continue
		}
		if _, err := fs.Stat(overlay, path); err == nil {
			out = append(out, path)
		}
	}
	return out
}

// ApplyWindowSettings 按设置调整窗口大小、标题和全屏
// 在 ebiten.RunGame 之前调用
func (a *App) ApplyWindowSettings() {
	s := a.settings.GetSettings()
	screen := a.gameConfig.Screen
	ebiten.SetWindowSize(screen.Width*s.WindowScale, screen.Height*s.WindowScale)
	ebiten.SetWindowTitle(screen.Title)
	ebiten.SetFullscreen(s.Fullscreen)
	ebiten.SetWindowClosingHandled(true)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
	}
	// F3 切换碰撞盒
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.ToggleDebug()
	}
	// R 重新开局
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.sceneManager.Reload(); err != nil {
			return err
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// debugToggler 可以开关调试层的场景
type debugToggler interface {
	SetShowDebug(show bool)
	ShowDebug() bool
}

// ToggleDebug 开关当前场景的碰撞盒绘制并记住选择
func (a *App) ToggleDebug() {
	scene, ok := a.sceneManager.GetCurrentScene().(debugToggler)
	if !ok {
		return
	}
	show := !scene.ShowDebug()
	scene.SetShowDebug(show)
	a.showDebug = show
	a.settings.SetShowDebug(show)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Warnf("[App] failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右留黑边，像素画用最近邻缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.gameConfig.Screen.Width, a.gameConfig.Screen.Height
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 保存当前一局并关闭分数库，可以重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.sceneManager.SaveCurrent()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Warnf("[App] failed to close score store: %v", err)
		}
	}
}
