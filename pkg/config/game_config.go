package config

import (
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfigPath 默认游戏配置文件路径（位于嵌入的 data 目录中）
const GameConfigPath = "data/farm.yaml"

// GameConfig 农场玩法配置
//
// 所有时间单位均为秒，速度单位为像素/秒，坐标单位为像素。
//
// 配置文件位置: data/farm.yaml
type GameConfig struct {
	Screen      ScreenConfig            `yaml:"screen"`
	Map         MapConfig               `yaml:"map"`
	Sheets      map[string]SheetConfig  `yaml:"sheets"`
	Player      PlayerConfig            `yaml:"player"`
	Animals     map[string]AnimalConfig `yaml:"animals"`
	Chest       ChestConfig             `yaml:"chest"`
	Spawn       SpawnConfig             `yaml:"spawn"`
	Camera      CameraConfig            `yaml:"camera"`
	HUD         HUDConfig               `yaml:"hud"`
	Celebration CelebrationConfig       `yaml:"celebration"`
}

// ScreenConfig 逻辑屏幕配置
type ScreenConfig struct {
	Title      string `yaml:"title"` // 窗口标题
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // 十六进制颜色，如 "#e9cfa7"
}

// MapConfig 瓦片地图配置
type MapConfig struct {
	Path      string                   `yaml:"path"` // Tiled JSON 地图路径
	Tilesets  map[string]TilesetConfig `yaml:"tilesets"`
	Layers    []LayerConfig            `yaml:"layers"`    // 需要创建的图层（按绘制顺序）
	Colliders []string                 `yaml:"colliders"` // 参与碰撞的图层，任何非空瓦片都会阻挡
}

// TilesetConfig 图块集图片
type TilesetConfig struct {
	Image       string `yaml:"image"`
	Placeholder string `yaml:"placeholder"` // 图片缺失时占位图的底色
}

// LayerConfig 图层与其使用的图块集
type LayerConfig struct {
	Name    string `yaml:"name"`
	Tileset string `yaml:"tileset"`
}

// LayerNames 返回按绘制顺序排列的图层名
func (m MapConfig) LayerNames() []string {
	names := make([]string, 0, len(m.Layers))
	for _, layer := range m.Layers {
		names = append(names, layer.Name)
	}
	return names
}

// SheetConfig 精灵表配置
type SheetConfig struct {
	Path        string `yaml:"path"`
	FrameWidth  int    `yaml:"frameWidth"`
	FrameHeight int    `yaml:"frameHeight"`
	Frames      int    `yaml:"frames"`      // 精灵表总帧数，图片缺失时用于生成占位图
	Placeholder string `yaml:"placeholder"` // 占位图底色
}

// BodyConfig 碰撞盒配置，偏移相对于精灵帧左上角
type BodyConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Sheet string     `yaml:"sheet"`
	Speed float64    `yaml:"speed"`
	Depth float64    `yaml:"depth"`
	Body  BodyConfig `yaml:"body"`
}

// IntRange 闭区间整数范围
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FloatRange 闭区间浮点范围
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// AnimalConfig 单种动物的配置
type AnimalConfig struct {
	Sheet         string     `yaml:"sheet"`
	Count         IntRange   `yaml:"count"`        // 开局数量范围
	SpawnStagger  float64    `yaml:"spawnStagger"` // 第 i 只在 i*SpawnStagger 秒后出现
	WanderDelay   FloatRange `yaml:"wanderDelay"`  // 闲逛计时器间隔范围（每只动物随机一次）
	IdleChance    float64    `yaml:"idleChance"`
	Speed         float64    `yaml:"speed"`
	RecoveryDelay float64    `yaml:"recoveryDelay"` // 撞墙后的恢复时间
	RespawnDelay  float64    `yaml:"respawnDelay"`  // 被收集后重新出现的延迟
	Points        int        `yaml:"points"`
	IdleAnim      string     `yaml:"idleAnim"`
	WalkAnim      string     `yaml:"walkAnim"`
	Body          BodyConfig `yaml:"body"`
}

// ChestConfig 宝箱配置
type ChestConfig struct {
	Sheet         string     `yaml:"sheet"`
	ScoreInterval int        `yaml:"scoreInterval"` // 分数为该值的倍数时生成新宝箱
	Bonus         int        `yaml:"bonus"`
	OpenDownAnim  string     `yaml:"openDownAnim"`
	OpenRightAnim string     `yaml:"openRightAnim"`
	Body          BodyConfig `yaml:"body"`
}

// SpawnConfig 随机出生点配置
type SpawnConfig struct {
	Margin int `yaml:"margin"` // 距屏幕边缘的最小距离
}

// CameraConfig 镜头跟随配置
type CameraConfig struct {
	Lerp           float64 `yaml:"lerp"`
	DeadzoneWidth  float64 `yaml:"deadzoneWidth"`
	DeadzoneHeight float64 `yaml:"deadzoneHeight"`
}

// HUDConfig 分数显示配置
type HUDConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	FontSize float64 `yaml:"fontSize"`
	Color    string  `yaml:"color"`
}

// CelebrationConfig 开箱庆祝特效配置
type CelebrationConfig struct {
	Text  CelebrationTextConfig `yaml:"text"`
	Stars StarBurstConfig       `yaml:"stars"`
	Trail TrailStarConfig       `yaml:"trail"`
	Glow  GlowConfig            `yaml:"glow"`
}

// CelebrationTextConfig 飘字配置
type CelebrationTextConfig struct {
	OffsetY     float64 `yaml:"offsetY"` // 初始位置相对宝箱的Y偏移
	RiseTo      float64 `yaml:"riseTo"`  // 结束位置相对宝箱的Y偏移
	Duration    float64 `yaml:"duration"`
	Ease        string  `yaml:"ease"`
	FontSize    float64 `yaml:"fontSize"`
	Color       string  `yaml:"color"`
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float64 `yaml:"strokeWidth"`
}

// StarBurstConfig 星星爆散配置
type StarBurstConfig struct {
	Count       int      `yaml:"count"`
	Distance    float64  `yaml:"distance"`
	Points      int      `yaml:"points"`
	InnerRadius float64  `yaml:"innerRadius"`
	OuterRadius float64  `yaml:"outerRadius"`
	Scale       float64  `yaml:"scale"`
	Spin        float64  `yaml:"spin"` // 结束角度（度）
	Duration    float64  `yaml:"duration"`
	Ease        string   `yaml:"ease"`
	Colors      []string `yaml:"colors"`
}

// TrailStarConfig 拖尾星星配置（颜色跟随主星）
type TrailStarConfig struct {
	InnerRadius float64 `yaml:"innerRadius"`
	OuterRadius float64 `yaml:"outerRadius"`
	Scale       float64 `yaml:"scale"`
	Spin        float64 `yaml:"spin"`
	Duration    float64 `yaml:"duration"`
	Delay       float64 `yaml:"delay"`
	Ease        string  `yaml:"ease"`
}

// GlowConfig 中心光晕配置
type GlowConfig struct {
	Radius   float64 `yaml:"radius"`
	Color    string  `yaml:"color"`
	Alpha    float64 `yaml:"alpha"`
	Scale    float64 `yaml:"scale"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

// LoadGameConfig 从文件系统加载游戏配置
//
// 参数:
//   - fsys: 配置所在的文件系统（嵌入资源或 os.DirFS）
//   - path: 配置文件路径（如 "data/farm.yaml"）
//
// 返回:
//   - *GameConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(fsys fs.FS, path string) (*GameConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 格式的游戏配置并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置有效性
func (c *GameConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if _, err := ParseHexColor(c.Screen.Background); err != nil {
		return fmt.Errorf("screen background: %w", err)
	}
	if c.Map.Path == "" {
		return fmt.Errorf("map path is empty")
	}
	for _, layer := range c.Map.Layers {
		if _, ok := c.Map.Tilesets[layer.Tileset]; !ok {
			return fmt.Errorf("map layer %q uses unknown tileset %q", layer.Name, layer.Tileset)
		}
	}
	for name, ts := range c.Map.Tilesets {
		if _, err := ParseHexColor(ts.Placeholder); err != nil {
			return fmt.Errorf("tileset %q placeholder: %w", name, err)
		}
	}
	for _, collider := range c.Map.Colliders {
		if !containsString(c.Map.LayerNames(), collider) {
			return fmt.Errorf("collider layer %q is not listed in map layers", collider)
		}
	}

	for name, sheet := range c.Sheets {
		if sheet.FrameWidth <= 0 || sheet.FrameHeight <= 0 {
			return fmt.Errorf("sheet %q: frame size must be positive", name)
		}
		if _, err := ParseHexColor(sheet.Placeholder); err != nil {
			return fmt.Errorf("sheet %q placeholder: %w", name, err)
		}
	}

	if err := c.requireSheet("player", c.Player.Sheet); err != nil {
		return err
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player speed must be positive, got %.1f", c.Player.Speed)
	}

	if len(c.Animals) == 0 {
		return fmt.Errorf("no animals configured")
	}
	for name, animal := range c.Animals {
		if err := c.requireSheet("animal "+name, animal.Sheet); err != nil {
			return err
		}
		if animal.Count.Min < 0 || animal.Count.Min > animal.Count.Max {
			return fmt.Errorf("animal %q: count range invalid: min(%d) > max(%d)", name, animal.Count.Min, animal.Count.Max)
		}
		if animal.WanderDelay.Min <= 0 || animal.WanderDelay.Min > animal.WanderDelay.Max {
			return fmt.Errorf("animal %q: wander delay range invalid: min(%.2f) max(%.2f)", name, animal.WanderDelay.Min, animal.WanderDelay.Max)
		}
		if animal.IdleChance < 0 || animal.IdleChance > 1 {
			return fmt.Errorf("animal %q: idle chance must be within [0, 1], got %.2f", name, animal.IdleChance)
		}
		if animal.IdleAnim == "" || animal.WalkAnim == "" {
			return fmt.Errorf("animal %q: idle and walk animations are required", name)
		}
	}

	if err := c.requireSheet("chest", c.Chest.Sheet); err != nil {
		return err
	}
	if c.Chest.ScoreInterval <= 0 {
		return fmt.Errorf("chest score interval must be positive, got %d", c.Chest.ScoreInterval)
	}

	if c.Spawn.Margin < 0 || 2*c.Spawn.Margin > c.Screen.Width || 2*c.Spawn.Margin > c.Screen.Height {
		return fmt.Errorf("spawn margin %d does not fit in a %dx%d screen", c.Spawn.Margin, c.Screen.Width, c.Screen.Height)
	}
	if c.Camera.Lerp <= 0 || c.Camera.Lerp > 1 {
		return fmt.Errorf("camera lerp must be within (0, 1], got %.2f", c.Camera.Lerp)
	}

	namedColors := []struct{ name, hex string }{
		{"hud color", c.HUD.Color},
		{"celebration text color", c.Celebration.Text.Color},
		{"celebration text stroke", c.Celebration.Text.Stroke},
		{"celebration glow color", c.Celebration.Glow.Color},
	}
	for _, nc := range namedColors {
		if _, err := ParseHexColor(nc.hex); err != nil {
			return fmt.Errorf("%s: %w", nc.name, err)
		}
	}
	for _, hex := range c.Celebration.Stars.Colors {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("celebration star color: %w", err)
		}
	}
	if len(c.Celebration.Stars.Colors) == 0 {
		return fmt.Errorf("celebration needs at least one star color")
	}

	return nil
}

// requireSheet 检查引用的精灵表是否已定义
func (c *GameConfig) requireSheet(owner, sheet string) error {
	if sheet == "" {
		return fmt.Errorf("%s: sheet is empty", owner)
	}
	if _, ok := c.Sheets[sheet]; !ok {
		return fmt.Errorf("%s: sheet %q is not defined", owner, sheet)
	}
	return nil
}

// Animal 返回指定动物的配置
func (c *GameConfig) Animal(name string) (AnimalConfig, bool) {
	animal, ok := c.Animals[name]
	return animal, ok
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 形式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{
			R: uint8(value >> 16),
			G: uint8(value >> 8),
			B: uint8(value),
			A: 0xff,
		}, nil
	}
	return color.RGBA{
		R: uint8(value >> 24),
		G: uint8(value >> 16),
		B: uint8(value >> 8),
		A: uint8(value),
	}, nil
}

// MustHexColor 解析颜色，失败时返回不透明黑色
// 仅用于已经过 Validate 的配置值
func MustHexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
