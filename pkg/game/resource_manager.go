package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/internal/tiled"
	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads and caches sprite sheets, tileset images and font faces so every
// resource is decoded only once.
//
// Images come from the asset file system (usually the assets/ directory next to
// the binary). When an image is missing the manager generates a placeholder of
// the right size instead, so the game stays playable without art.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Load everything from the game loop
// goroutine, which is how the scene uses it.
//
// Usage:
//
//	rm := NewResourceManager(os.DirFS("."))
//	frames, err := rm.LoadSpriteSheet("rabbit", cfg.Sheets["rabbit"])
//	if err != nil {
//	    return err
//	}
type ResourceManager struct {
	assets fs.FS // may be nil: every image becomes a placeholder

	imageCache   map[string]*ebiten.Image   // path -> image
	sheetCache   map[string][]*ebiten.Image // sheet key -> frames
	tilesetCache map[string]*ebiten.Image   // tileset name -> image
	tileCache    map[tileKey]*ebiten.Image  // (tileset, local index) -> sub image
	tilesets     map[string]*tiled.Tileset  // tileset name -> layout

	fontSource    *text.GoTextFaceSource
	fontFaceCache map[float64]*text.GoTextFace

	placeholders int // number of generated placeholder images
}

type tileKey struct {
	tileset string
	local   int
}

// NewResourceManager creates a resource manager reading images from assets.
func NewResourceManager(assets fs.FS) *ResourceManager {
	return &ResourceManager{
		assets:        assets,
		imageCache:    make(map[string]*ebiten.Image),
		sheetCache:    make(map[string][]*ebiten.Image),
		tilesetCache:  make(map[string]*ebiten.Image),
		tileCache:     make(map[tileKey]*ebiten.Image),
		tilesets:      make(map[string]*tiled.Tileset),
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}
}

// LoadImage loads an image from the asset file system and caches it.
//
// Parameters:
//   - path: Slash-separated path inside the asset file system,
//     e.g. "assets/characters/rabbit.png".
//
// Returns:
//   - The loaded ebiten.Image.
//   - An error wrapping fs.ErrNotExist when the file is missing, or a decode error.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, ok := rm.imageCache[path]; ok {
		return cached, nil
	}
	if rm.assets == nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, fs.ErrNotExist)
	}

	file, err := rm.assets.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image, or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadSpriteSheet loads a sprite sheet and slices it into frames.
// A missing image is replaced by a placeholder sheet with sheet.Frames frames;
// decode errors are returned.
func (rm *ResourceManager) LoadSpriteSheet(key string, sheet config.SheetConfig) ([]*ebiten.Image, error) {
	if frames, ok := rm.sheetCache[key]; ok {
		return frames, nil
	}

	img, err := rm.LoadImage(sheet.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("[ResourceManager] sprite sheet %q not found at %s, using placeholder", key, sheet.Path)
		base := config.MustHexColor(sheet.Placeholder)
		img = ebiten.NewImageFromImage(utils.PlaceholderSheet(sheet.FrameWidth, sheet.FrameHeight, sheet.Frames, base))
		rm.placeholders++
	} else if err != nil {
		return nil, fmt.Errorf("failed to load sprite sheet %q: %w", key, err)
	}

	frames := utils.SliceSheet(img, sheet.FrameWidth, sheet.FrameHeight)
	if len(frames) == 0 {
		return nil, fmt.Errorf("sprite sheet %q is smaller than one %dx%d frame", key, sheet.FrameWidth, sheet.FrameHeight)
	}
	rm.sheetCache[key] = frames
	log.Debugf("[ResourceManager] sprite sheet %q: %d frames", key, len(frames))
	return frames, nil
}

// GetSpriteSheet retrieves the frames of a loaded sprite sheet, or nil.
func (rm *ResourceManager) GetSpriteSheet(key string) []*ebiten.Image {
	return rm.sheetCache[key]
}

// LoadTileset loads the image for a map tileset, falling back to a placeholder
// laid out like the tileset when the image is missing.
func (rm *ResourceManager) LoadTileset(ts *tiled.Tileset, cfg config.TilesetConfig) (*ebiten.Image, error) {
	if img, ok := rm.tilesetCache[ts.Name]; ok {
		return img, nil
	}

	img, err := rm.LoadImage(cfg.Image)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("[ResourceManager] tileset %q not found at %s, using placeholder", ts.Name, cfg.Image)
		base := config.MustHexColor(cfg.Placeholder)
		img = ebiten.NewImageFromImage(utils.PlaceholderTileset(ts.TileWidth, ts.TileHeight, ts.Columns, ts.TileCount, base))
		rm.placeholders++
		// 占位图没有边距和间隔
		layout := *ts
		layout.Margin, layout.Spacing = 0, 0
		ts = &layout
	} else if err != nil {
		return nil, fmt.Errorf("failed to load tileset %q: %w", ts.Name, err)
	}

	rm.tilesetCache[ts.Name] = img
	rm.tilesets[ts.Name] = ts
	return img, nil
}

// TileImage returns the sub image of one tile, or nil if the tileset is not loaded.
func (rm *ResourceManager) TileImage(tileset string, local int) *ebiten.Image {
	key := tileKey{tileset: tileset, local: local}
	if img, ok := rm.tileCache[key]; ok {
		return img
	}
	sheet, ok := rm.tilesetCache[tileset]
	if !ok {
		return nil
	}
	ts := rm.tilesets[tileset]
	x, y, w, h := ts.TileRect(local)
	rect := image.Rect(x, y, x+w, y+h).Add(sheet.Bounds().Min)
	if !rect.In(sheet.Bounds()) {
		return nil
	}
	img := sheet.SubImage(rect).(*ebiten.Image)
	rm.tileCache[key] = img
	return img
}

// PlaceholderCount reports how many images were generated instead of loaded.
func (rm *ResourceManager) PlaceholderCount() int {
	return rm.placeholders
}

// Font returns a bold Go font face of the given pixel size.
// The font is compiled into the binary, so this only fails on a corrupt font.
func (rm *ResourceManager) Font(size float64) (*text.GoTextFace, error) {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face, nil
	}
	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source: %w", err)
		}
		rm.fontSource = source
	}
	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face, nil
}
