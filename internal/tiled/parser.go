// Package tiled reads the Tiled map editor's JSON export format.
package tiled

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

// ParseFile reads and parses a Tiled JSON map from fsys.
//
// Parameters:
//   - fsys: File system holding the map (embedded data or os.DirFS)
//   - path: Path to the map, e.g., "data/maps/farm.json"
//
// Returns:
//   - *Map: The parsed and validated map
//   - error: Read, decode or validation error
//
// Example:
//
//	m, err := tiled.ParseFile(dataFS, "data/maps/farm.json")
//	if err != nil {
//	    return fmt.Errorf("load map: %w", err)
//	}
//	fmt.Printf("map is %dx%d px\n", m.WidthInPixels(), m.HeightInPixels())
func ParseFile(fsys fs.FS, path string) (*Map, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiled map '%s': %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tiled map '%s': %w", path, err)
	}
	return m, nil
}

// Parse decodes a Tiled JSON map and checks that it is something the game can
// render: orthogonal, finite, with embedded tilesets and consistent layer sizes.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	// Resolve walks tilesets from the highest firstgid down
	sort.Slice(m.Tilesets, func(i, j int) bool {
		return m.Tilesets[i].FirstGID < m.Tilesets[j].FirstGID
	})
	return &m, nil
}

func (m *Map) validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return fmt.Errorf("tile size must be positive, got %dx%d", m.TileWidth, m.TileHeight)
	}
	if m.Orientation != "" && m.Orientation != "orthogonal" {
		return fmt.Errorf("unsupported orientation %q", m.Orientation)
	}
	if m.Infinite {
		return fmt.Errorf("infinite maps are not supported")
	}
	for _, ts := range m.Tilesets {
		if ts.Source != "" {
			return fmt.Errorf("tileset %q: external tilesets are not supported", ts.Source)
		}
		if ts.FirstGID == 0 {
			return fmt.Errorf("tileset %q: firstgid must be >= 1", ts.Name)
		}
		if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
			return fmt.Errorf("tileset %q: tile size must be positive", ts.Name)
		}
	}
	for _, layer := range m.Layers {
		if layer.Type != "tilelayer" {
			continue
		}
		if len(layer.Data) != m.Width*m.Height {
			return fmt.Errorf("layer %q: expected %d tiles, got %d", layer.Name, m.Width*m.Height, len(layer.Data))
		}
	}
	return nil
}

// Layer returns the tile layer with the given name.
func (m *Map) Layer(name string) (*Layer, bool) {
	for i := range m.Layers {
		if m.Layers[i].Name == name && m.Layers[i].Type == "tilelayer" {
			return &m.Layers[i], true
		}
	}
	return nil, false
}

// Tileset returns the tileset with the given name.
func (m *Map) Tileset(name string) (*Tileset, bool) {
	for i := range m.Tilesets {
		if m.Tilesets[i].Name == name {
			return &m.Tilesets[i], true
		}
	}
	return nil, false
}

// Resolve maps a gid to its tileset and the tile's local index inside it.
// Flip flags are ignored. It returns ok=false for gid 0 (empty cell) and for
// gids no tileset covers.
func (m *Map) Resolve(gid uint32) (ts *Tileset, local int, ok bool) {
	gid &^= flagMask
	if gid == 0 {
		return nil, 0, false
	}
	for i := len(m.Tilesets) - 1; i >= 0; i-- {
		candidate := &m.Tilesets[i]
		if gid >= candidate.FirstGID {
			if !candidate.Contains(gid) {
				return nil, 0, false
			}
			return candidate, int(gid - candidate.FirstGID), true
		}
	}
	return nil, 0, false
}

// GIDAt returns the raw gid at tile (tx, ty), or 0 when out of range.
func (l *Layer) GIDAt(tx, ty int) uint32 {
	if tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return 0
	}
	return l.Data[ty*l.Width+tx]
}
