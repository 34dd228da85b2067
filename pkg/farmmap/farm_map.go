// Package farmmap 把 Tiled 地图装配成农场场景使用的图层
//
// 负责：按配置顺序创建图层、标记碰撞层、把地图居中放在屏幕上，
// 并给物理系统提供"某个矩形压到了哪些实心瓦片"的查询。
package farmmap

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/internal/tiled"
	"github.com/decker502/farm/pkg/config"
)

// TileLayer 一个可绘制的瓦片图层
type TileLayer struct {
	Name     string
	Tileset  *tiled.Tileset // 图层绑定的图块集
	Collides bool           // 非空瓦片是否阻挡移动

	data *tiled.Layer
}

// Tile 一个瓦片在世界坐标中的位置
type Tile struct {
	Layer  string
	TX, TY int     // 瓦片坐标
	X, Y   float64 // 左上角世界坐标
	W, H   float64
}

// FarmMap 居中放置后的地图
type FarmMap struct {
	source *tiled.Map
	Layers []*TileLayer // 绘制顺序

	OffsetX float64 // 地图左上角的世界坐标
	OffsetY float64

	TileWidth  float64
	TileHeight float64
}

// Load 读取地图文件并创建图层
func Load(fsys fs.FS, cfg config.MapConfig, screenWidth, screenHeight int) (*FarmMap, error) {
	m, err := tiled.ParseFile(fsys, cfg.Path)
	if err != nil {
		return nil, err
	}
	return New(m, cfg, screenWidth, screenHeight)
}

// New 根据配置创建图层并把地图居中
//
// 缺少任何配置中列出的图块集或图层都会返回错误，地图不完整时不应该开始游戏。
func New(m *tiled.Map, cfg config.MapConfig, screenWidth, screenHeight int) (*FarmMap, error) {
	fm := &FarmMap{
		source:     m,
		TileWidth:  float64(m.TileWidth),
		TileHeight: float64(m.TileHeight),
	}

	for _, lc := range cfg.Layers {
		ts, ok := m.Tileset(lc.Tileset)
		if !ok {
			return nil, fmt.Errorf("failed to load tileset %q for layer %q", lc.Tileset, lc.Name)
		}
		layer, ok := m.Layer(lc.Name)
		if !ok {
			return nil, fmt.Errorf("failed to create layer %q: not found in map", lc.Name)
		}
		fm.Layers = append(fm.Layers, &TileLayer{
			Name:     lc.Name,
			Tileset:  ts,
			Collides: containsString(cfg.Colliders, lc.Name),
			data:     layer,
		})
	}

	// 地图比屏幕大时偏移为负，镜头边界随之覆盖整张地图
	fm.OffsetX = float64(screenWidth-m.WidthInPixels()) / 2
	fm.OffsetY = float64(screenHeight-m.HeightInPixels()) / 2

	log.Debugf("[FarmMap] %dx%d tiles, %d layers, offset (%.0f, %.0f)",
		m.Width, m.Height, len(fm.Layers), fm.OffsetX, fm.OffsetY)
	return fm, nil
}

// WidthInPixels 地图像素宽度
func (fm *FarmMap) WidthInPixels() float64 {
	return float64(fm.source.WidthInPixels())
}

// HeightInPixels 地图像素高度
func (fm *FarmMap) HeightInPixels() float64 {
	return float64(fm.source.HeightInPixels())
}

// Bounds 返回地图在世界坐标中的矩形 (x, y, w, h)
// 镜头边界和物理世界边界都使用它
func (fm *FarmMap) Bounds() (float64, float64, float64, float64) {
	return fm.OffsetX, fm.OffsetY, fm.WidthInPixels(), fm.HeightInPixels()
}

// Layer 按名称查找图层
func (fm *FarmMap) Layer(name string) (*TileLayer, bool) {
	for _, l := range fm.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// WorldToTile 世界坐标转换为瓦片坐标（可能越界）
func (fm *FarmMap) WorldToTile(x, y float64) (int, int) {
	tx := int(math.Floor((x - fm.OffsetX) / fm.TileWidth))
	ty := int(math.Floor((y - fm.OffsetY) / fm.TileHeight))
	return tx, ty
}

// TileRect 瓦片在世界坐标中的矩形
func (fm *FarmMap) TileRect(tx, ty int) (x, y, w, h float64) {
	return fm.OffsetX + float64(tx)*fm.TileWidth,
		fm.OffsetY + float64(ty)*fm.TileHeight,
		fm.TileWidth, fm.TileHeight
}

// IsSolid 瓦片坐标处是否有任何碰撞层的瓦片
func (fm *FarmMap) IsSolid(tx, ty int) bool {
	for _, l := range fm.Layers {
		if l.Collides && l.data.GIDAt(tx, ty) != 0 {
			return true
		}
	}
	return false
}

// SolidTiles 返回与矩形 (left, top, right, bottom) 相交的所有实心瓦片
// 仅接触边缘不算相交
func (fm *FarmMap) SolidTiles(left, top, right, bottom float64) []Tile {
	if right <= left || bottom <= top {
		return nil
	}
	tx0, ty0 := fm.WorldToTile(left, top)
	// 右/下边界恰好落在瓦片边上时不包含下一格
	tx1 := int(math.Ceil((right-fm.OffsetX)/fm.TileWidth)) - 1
	ty1 := int(math.Ceil((bottom-fm.OffsetY)/fm.TileHeight)) - 1

	var tiles []Tile
	for _, l := range fm.Layers {
		if !l.Collides {
			continue
		}
		for ty := ty0; ty <= ty1; ty++ {
			for tx := tx0; tx <= tx1; tx++ {
				if l.data.GIDAt(tx, ty) == 0 {
					continue
				}
				x, y, w, h := fm.TileRect(tx, ty)
				tiles = append(tiles, Tile{Layer: l.Name, TX: tx, TY: ty, X: x, Y: y, W: w, H: h})
			}
		}
	}
	return tiles
}

// ForEachTile 遍历图层中属于该图层图块集的非空瓦片
// fn 收到瓦片坐标、图块集内的局部编号和水平翻转标记
func (fm *FarmMap) ForEachTile(l *TileLayer, fn func(tx, ty, local int, flipX bool)) {
	for ty := 0; ty < l.data.Height; ty++ {
		for tx := 0; tx < l.data.Width; tx++ {
			gid := l.data.GIDAt(tx, ty)
			if gid == 0 {
				continue
			}
			ts, local, ok := fm.source.Resolve(gid)
			if !ok || ts != l.Tileset {
				continue
			}
			fn(tx, ty, local, gid&tiled.FlippedHorizontally != 0)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
