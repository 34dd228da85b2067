package tiled

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyMap = `{
 "width": 3, "height": 2, "tilewidth": 16, "tileheight": 16,
 "orientation": "orthogonal", "infinite": false,
 "layers": [
  {"id": 1, "name": "Ground", "type": "tilelayer", "width": 3, "height": 2, "visible": true, "opacity": 1,
   "data": [1, 2, 0, 5, 2147483653, 0]},
  {"id": 2, "name": "Spawns", "type": "objectgroup"}
 ],
 "tilesets": [
  {"firstgid": 5, "name": "Water", "image": "water.png", "columns": 4, "tilecount": 4, "tilewidth": 16, "tileheight": 16},
  {"firstgid": 1, "name": "Grass", "image": "grass.png", "columns": 2, "tilecount": 4, "tilewidth": 16, "tileheight": 16}
 ]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(tinyMap))
	require.NoError(t, err)

	assert.Equal(t, 48, m.WidthInPixels())
	assert.Equal(t, 32, m.HeightInPixels())

	// tilesets are ordered by firstgid after parsing
	require.Len(t, m.Tilesets, 2)
	assert.Equal(t, "Grass", m.Tilesets[0].Name)
	assert.Equal(t, "Water", m.Tilesets[1].Name)

	ground, ok := m.Layer("Ground")
	require.True(t, ok)
	assert.Equal(t, uint32(2), ground.GIDAt(1, 0))
	assert.Equal(t, uint32(0), ground.GIDAt(5, 5))

	_, ok = m.Layer("Spawns")
	assert.False(t, ok, "object layers are not tile layers")
}

func TestResolve(t *testing.T) {
	m, err := Parse([]byte(tinyMap))
	require.NoError(t, err)

	tests := []struct {
		name      string
		gid       uint32
		wantOK    bool
		wantSet   string
		wantLocal int
	}{
		{name: "empty", gid: 0, wantOK: false},
		{name: "first tile", gid: 1, wantOK: true, wantSet: "Grass", wantLocal: 0},
		{name: "last grass tile", gid: 4, wantOK: true, wantSet: "Grass", wantLocal: 3},
		{name: "second tileset", gid: 6, wantOK: true, wantSet: "Water", wantLocal: 1},
		{name: "flipped", gid: 5 | FlippedHorizontally, wantOK: true, wantSet: "Water", wantLocal: 0},
		{name: "beyond last tileset", gid: 9, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, local, ok := m.Resolve(tt.gid)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantSet, ts.Name)
			assert.Equal(t, tt.wantLocal, local)
		})
	}
}

func TestTileRect(t *testing.T) {
	ts := Tileset{Columns: 4, TileWidth: 16, TileHeight: 16, Margin: 1, Spacing: 2}
	x, y, w, h := ts.TileRect(5)
	assert.Equal(t, []int{1 + 16 + 2, 1 + 16 + 2, 16, 16}, []int{x, y, w, h})
}

func TestParseRejectsUnsupportedMaps(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "zero size", json: `{"width": 0, "height": 2, "tilewidth": 16, "tileheight": 16}`},
		{name: "isometric", json: `{"width": 1, "height": 1, "tilewidth": 16, "tileheight": 16, "orientation": "isometric"}`},
		{name: "infinite", json: `{"width": 1, "height": 1, "tilewidth": 16, "tileheight": 16, "infinite": true}`},
		{name: "external tileset", json: `{"width": 1, "height": 1, "tilewidth": 16, "tileheight": 16,
			"tilesets": [{"firstgid": 1, "source": "grass.tsx"}]}`},
		{name: "short layer", json: `{"width": 2, "height": 2, "tilewidth": 16, "tileheight": 16,
			"layers": [{"name": "A", "type": "tilelayer", "width": 2, "height": 2, "data": [1]}]}`},
		{name: "not json", json: `<map/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestParseFarmMap(t *testing.T) {
	m, err := ParseFile(os.DirFS("../.."), "data/maps/farm.json")
	require.NoError(t, err)

	assert.Equal(t, 640, m.WidthInPixels())
	assert.Equal(t, 640, m.HeightInPixels())

	for _, name := range []string{"Dirt", "Terrain", "GrassBase", "Water", "Grass", "Fences", "Tree", "Mushroom"} {
		_, ok := m.Layer(name)
		assert.True(t, ok, "missing layer %s", name)
	}
	for _, name := range []string{"Tilled_Dirt_Wide_v2", "Grass", "Fences", "Water", "Tree"} {
		_, ok := m.Tileset(name)
		assert.True(t, ok, "missing tileset %s", name)
	}
}
