package tiled

// Tiled stores flip/rotation flags in the top bits of every gid.
const (
	FlippedHorizontally uint32 = 0x80000000
	FlippedVertically   uint32 = 0x40000000
	FlippedDiagonally   uint32 = 0x20000000

	flagMask = FlippedHorizontally | FlippedVertically | FlippedDiagonally
)

// Map is the subset of a Tiled JSON map (orthogonal, finite, CSV tile data)
// that the farm uses.
type Map struct {
	Width       int       `json:"width"`      // Width in tiles
	Height      int       `json:"height"`     // Height in tiles
	TileWidth   int       `json:"tilewidth"`  // Tile width in pixels
	TileHeight  int       `json:"tileheight"` // Tile height in pixels
	Orientation string    `json:"orientation"`
	Infinite    bool      `json:"infinite"`
	Layers      []Layer   `json:"layers"`
	Tilesets    []Tileset `json:"tilesets"`
}

// Layer is a single Tiled layer. Only "tilelayer" layers carry Data.
type Layer struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Opacity float64  `json:"opacity"`
	Visible bool     `json:"visible"`
	Data    []uint32 `json:"data"` // Row-major gids, 0 = empty
}

// Tileset is an embedded (non-external) Tiled tileset.
type Tileset struct {
	FirstGID    uint32 `json:"firstgid"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`
	Columns     int    `json:"columns"`
	TileCount   int    `json:"tilecount"`
	TileWidth   int    `json:"tilewidth"`
	TileHeight  int    `json:"tileheight"`
	Margin      int    `json:"margin"`
	Spacing     int    `json:"spacing"`
	Source      string `json:"source"` // Set for external tilesets, which are not supported
}

// WidthInPixels returns the map width in pixels.
func (m *Map) WidthInPixels() int {
	return m.Width * m.TileWidth
}

// HeightInPixels returns the map height in pixels.
func (m *Map) HeightInPixels() int {
	return m.Height * m.TileHeight
}

// Contains reports whether gid belongs to this tileset.
func (ts *Tileset) Contains(gid uint32) bool {
	gid &^= flagMask
	return gid >= ts.FirstGID && gid < ts.FirstGID+uint32(ts.TileCount)
}

// TileRect returns the source rectangle of a local tile index inside the
// tileset image.
func (ts *Tileset) TileRect(local int) (x, y, w, h int) {
	cols := ts.Columns
	if cols <= 0 {
		cols = 1
	}
	col := local % cols
	row := local / cols
	x = ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y = ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return x, y, ts.TileWidth, ts.TileHeight
}
