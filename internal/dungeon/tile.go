// Package dungeon generates connected dungeon layouts on a fixed-size tile
// grid. A coarse sector lattice is overlaid on the grid, each sector hosts
// one room (a multi-tile "real" room or a single-tile "dummy" anchor), rooms
// are linked by randomly chosen corridors, and the connection graph is
// repaired until every real room is reachable from the spawn room. The whole
// generation is driven by a single seeded random source, so a seed plus a
// configuration fully determines the resulting map.
package dungeon

// Tile is the state of a single grid cell.
type Tile uint8

const (
	TileWall Tile = iota
	TileGround
)

// String returns the string representation of a Tile.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Location is an (x, y) tile coordinate.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a fixed height × width matrix of tiles, row-major by (y, x).
// A fresh grid is all wall. Once returned from a Generator it is treated as
// an immutable snapshot; nothing in this package mutates it afterwards.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid creates a grid of the given dimensions with every tile set to wall.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in tiles.
func (g *Grid) Height() int {
	return g.height
}

// At returns the tile at (x, y). The boolean is false when the coordinate
// lies outside the grid; callers rendering a viewport must treat that as its
// own "out of bounds" category, distinct from wall and ground.
func (g *Grid) At(x, y int) (Tile, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return TileWall, false
	}
	return g.tiles[y*g.width+x], true
}

// set writes a tile, ignoring out-of-range coordinates.
func (g *Grid) set(x, y int, t Tile) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.tiles[y*g.width+x] = t
}
