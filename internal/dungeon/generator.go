package dungeon

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var (
	ErrInvalidLattice  = errors.New("dungeon: sector lattice needs at least one row and one column")
	ErrInvalidRooms    = errors.New("dungeon: real room count must be at least 1")
	ErrSectorTooSmall  = errors.New("dungeon: sector too small for the minimum room footprint")
	ErrRepairExhausted = errors.New("dungeon: connectivity repair ran out of candidate edges")
)

const (
	minRoomWidth  = 5
	minRoomHeight = 4
	roomMargin    = 2

	// A sector must fit the minimum footprint plus its placement margin.
	minSectorWidth  = minRoomWidth + roomMargin
	minSectorHeight = minRoomHeight + roomMargin

	// DefaultDummySkipChance is the chance that a dummy room generates no
	// connections at all.
	DefaultDummySkipChance = 0.5

	// DefaultMergeChance is the chance that a connection between two
	// merge-eligible rooms is rasterized as one merged rectangle instead
	// of a corridor.
	DefaultMergeChance = 0.1
)

// Config contains parameters for a single map generation.
type Config struct {
	Width  int // grid width in tiles
	Height int // grid height in tiles

	Rows    int // sector lattice rows
	Columns int // sector lattice columns

	// RealRooms is the target number of multi-tile rooms. Values at or
	// above Rows*Columns make every sector real.
	RealRooms int

	Seed int64

	DummySkipChance float64
	MergeChance     float64
}

// DefaultConfig returns the layout parameters the original game shipped with.
func DefaultConfig() *Config {
	return &Config{
		Width:           56,
		Height:          32,
		Rows:            2,
		Columns:         3,
		RealRooms:       2,
		DummySkipChance: DefaultDummySkipChance,
		MergeChance:     DefaultMergeChance,
	}
}

// Validate checks that the configuration can host the minimum room footprint.
func (c *Config) Validate() error {
	if c.Rows < 1 || c.Columns < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidLattice, c.Rows, c.Columns)
	}
	if c.RealRooms < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRooms, c.RealRooms)
	}
	if sw := c.sectorWidth(); sw < minSectorWidth {
		return fmt.Errorf("%w: sector width %d, need %d", ErrSectorTooSmall, sw, minSectorWidth)
	}
	if sh := c.sectorHeight(); sh < minSectorHeight {
		return fmt.Errorf("%w: sector height %d, need %d", ErrSectorTooSmall, sh, minSectorHeight)
	}
	return nil
}

// sectorWidth is integer division; remainder tiles are absorbed by the last
// sector column's margin rather than redistributed.
func (c *Config) sectorWidth() int {
	return c.Width / c.Columns
}

func (c *Config) sectorHeight() int {
	return c.Height / c.Rows
}

func (c *Config) sectorCount() int {
	return c.Rows * c.Columns
}

// adjacentSectors returns the up-to-4 sector ids grid-adjacent to id,
// respecting the lattice edges. Diagonals are never adjacent. A malformed
// lattice has no adjacency at all, which the repair loop reports as an
// explicit failure rather than looping on.
func (c *Config) adjacentSectors(id int) []int {
	if c.Rows < 1 || c.Columns < 1 {
		return nil
	}
	adj := make([]int, 0, 4)
	if id%c.Columns != 0 {
		adj = append(adj, id-1)
	}
	if (id+1)%c.Columns != 0 {
		adj = append(adj, id+1)
	}
	if id >= c.Columns {
		adj = append(adj, id-c.Columns)
	}
	if id+c.Columns < c.sectorCount() {
		adj = append(adj, id+c.Columns)
	}
	return adj
}

// DungeonMap is the finished output of one generation: an immutable grid,
// the spawn and exit tiles, and the per-sector room list so the host can
// place sprites without re-deriving geometry.
type DungeonMap struct {
	Grid  *Grid
	Spawn Location
	Exit  Location
	Rooms []Room
}

// Generator runs the full generation pipeline for one map. A generator owns
// its random source exclusively; it is not safe for concurrent use, and a
// fresh one should be created per map.
type Generator struct {
	cfg *Config
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from cfg.Seed. A nil cfg uses
// DefaultConfig.
func NewGenerator(cfg *Config) *Generator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate runs the pipeline: partition the lattice into real and dummy
// sectors, place one room per sector, connect adjacent sectors, repair
// connectivity until every real room is reachable from the spawn sector,
// then carve the result into the grid. A failed generation returns no grid
// at all; a successful one is never partially connected.
func (g *Generator) Generate() (*DungeonMap, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	grid := NewGrid(g.cfg.Width, g.cfg.Height)

	realIDs := g.pickRealSectors()
	rooms, canMerge := g.placeRooms(realIDs)

	spawnID := realIDs[g.rng.Intn(len(realIDs))]
	exitID := realIDs[g.rng.Intn(len(realIDs))]

	conns := g.connectRooms(rooms)
	conns, cluster, err := g.repairConnectivity(conns, spawnID, realIDs)
	if err != nil {
		return nil, err
	}

	g.carve(grid, rooms, conns, cluster, canMerge)

	spawn, exit, err := g.spawnExitTiles(rooms, spawnID, exitID)
	if err != nil {
		return nil, err
	}

	return &DungeonMap{
		Grid:  grid,
		Spawn: spawn,
		Exit:  exit,
		Rooms: rooms,
	}, nil
}

// spawnExitTiles picks a uniform tile inside the spawn and exit rooms. A
// missing spawn room breaks the one-room-per-sector invariant and is
// reported as its own error rather than a repair failure.
func (g *Generator) spawnExitTiles(rooms []Room, spawnID, exitID int) (Location, Location, error) {
	spawnRoom, ok := roomByID(rooms, spawnID)
	if !ok {
		return Location{}, Location{}, fmt.Errorf("dungeon: spawn sector %d has no room", spawnID)
	}
	spawn := g.randomTile(spawnRoom)

	// Exit-room lookup cannot fail either, but if it ever does the exit
	// reuses the spawn tile.
	exit := spawn
	if exitRoom, ok := roomByID(rooms, exitID); ok {
		exit = g.randomTile(exitRoom)
	}
	return spawn, exit, nil
}

// randRange draws uniformly from the half-open range [lo, hi). A degenerate
// range (hi <= lo+1) collapses to lo, which keeps minimum-size sectors valid
// instead of producing an empty range.
func (g *Generator) randRange(lo, hi int) int {
	if hi <= lo+1 {
		return lo
	}
	return lo + g.rng.Intn(hi-lo)
}

// pickRealSectors selects which sector ids hold real rooms: exactly
// RealRooms distinct ids drawn without replacement, or every id when the
// target meets or exceeds the sector count. The result is sorted.
func (g *Generator) pickRealSectors() []int {
	total := g.cfg.sectorCount()
	if g.cfg.RealRooms >= total {
		ids := make([]int, total)
		for i := range ids {
			ids[i] = i
		}
		return ids
	}

	pool := make([]int, total)
	for i := range pool {
		pool[i] = i
	}
	real := make([]int, 0, g.cfg.RealRooms)
	for i := 0; i < g.cfg.RealRooms; i++ {
		pick := g.rng.Intn(len(pool))
		real = append(real, pool[pick])
		pool[pick] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	sort.Ints(real)
	return real
}

// placeRooms creates one room per sector, in sector id order. Real rooms get
// a randomized rectangle inside the sector with a 2-tile margin; dummy
// sectors get a single anchor tile at a random interior offset. The returned
// flags track merge eligibility: real rooms start eligible, dummies never are.
func (g *Generator) placeRooms(realIDs []int) ([]Room, []bool) {
	sw := g.cfg.sectorWidth()
	sh := g.cfg.sectorHeight()

	isReal := make([]bool, g.cfg.sectorCount())
	for _, id := range realIDs {
		isReal[id] = true
	}

	rooms := make([]Room, 0, g.cfg.sectorCount())
	canMerge := make([]bool, g.cfg.sectorCount())

	for row := 0; row < g.cfg.Rows; row++ {
		for col := 0; col < g.cfg.Columns; col++ {
			id := col + g.cfg.Columns*row
			if isReal[id] {
				width := g.randRange(minRoomWidth, sw-roomMargin)
				height := g.randRange(minRoomHeight, sh-roomMargin)
				left := g.randRange(roomMargin, sw-width)
				bottom := g.randRange(roomMargin, sh-height)
				rooms = append(rooms, Room{
					ID:     id,
					Left:   left + col*sw,
					Bottom: bottom + row*sh,
					Width:  width,
					Height: height,
				})
				canMerge[id] = true
			} else {
				left := g.randRange(roomMargin, sw-1)
				bottom := g.randRange(roomMargin, sh-1)
				rooms = append(rooms, Room{
					ID:     id,
					Dummy:  true,
					Left:   left + col*sw,
					Bottom: bottom + row*sh,
					Width:  1,
					Height: 1,
				})
			}
		}
	}
	return rooms, canMerge
}

// connectRooms builds the initial adjacency relation. Each room draws a
// random number of edges to randomly picked adjacent sectors; dummy rooms
// skip the whole step with DummySkipChance. Duplicate pairs are dropped.
// The result is undirected and possibly disconnected.
func (g *Generator) connectRooms(rooms []Room) []Connection {
	var conns []Connection
	for _, room := range rooms {
		if room.Dummy && g.rng.Float64() < g.cfg.DummySkipChance {
			continue
		}
		adj := g.cfg.adjacentSectors(room.ID)
		if len(adj) == 0 {
			continue
		}
		n := 1 + g.rng.Intn(len(adj))
		for i := 0; i < n; i++ {
			pick := g.rng.Intn(len(adj))
			id := adj[pick]
			adj[pick] = adj[len(adj)-1]
			adj = adj[:len(adj)-1]
			if !hasConnection(conns, room.ID, id) {
				conns = append(conns, newConnection(room.ID, id))
			}
		}
	}
	return conns
}

// computeCluster returns the set of sector ids transitively reachable from
// start through the connection set, by fixed-point iteration over all
// connections.
func computeCluster(conns []Connection, start int) map[int]bool {
	cluster := map[int]bool{start: true}
	for {
		grew := false
		for _, c := range conns {
			switch {
			case cluster[c.A] && !cluster[c.B]:
				cluster[c.B] = true
				grew = true
			case cluster[c.B] && !cluster[c.A]:
				cluster[c.A] = true
				grew = true
			}
		}
		if !grew {
			return cluster
		}
	}
}

// containsAll reports whether every id is in the cluster.
func containsAll(cluster map[int]bool, ids []int) bool {
	for _, id := range ids {
		if !cluster[id] {
			return false
		}
	}
	return true
}

// repairConnectivity grows the spawn cluster until it covers every real
// sector. Each round enumerates, in ascending sector id order for
// deterministic output, every missing edge between a cluster sector and an
// adjacent sector outside the cluster, adds one at random, and recomputes
// the cluster. Every added edge pulls at least one new sector in, so the
// loop is bounded by the sector count; running out of candidates while real
// sectors remain unreached means the lattice is too degenerate to repair.
func (g *Generator) repairConnectivity(conns []Connection, spawnID int, realIDs []int) ([]Connection, map[int]bool, error) {
	total := g.cfg.sectorCount()
	cluster := computeCluster(conns, spawnID)

	for rounds := 0; !containsAll(cluster, realIDs); rounds++ {
		if rounds > total {
			return nil, nil, fmt.Errorf("%w: no progress after %d rounds", ErrRepairExhausted, rounds)
		}

		var candidates []Connection
		for id := 0; id < total; id++ {
			if !cluster[id] {
				continue
			}
			for _, next := range g.cfg.adjacentSectors(id) {
				if cluster[next] || hasConnection(conns, id, next) {
					continue
				}
				candidates = append(candidates, newConnection(id, next))
			}
		}
		if len(candidates) == 0 {
			missing := 0
			for _, id := range realIDs {
				if !cluster[id] {
					missing++
				}
			}
			return nil, nil, fmt.Errorf("%w: %d real sectors unreachable", ErrRepairExhausted, missing)
		}

		conns = append(conns, candidates[g.rng.Intn(len(candidates))])
		cluster = computeCluster(conns, spawnID)
	}
	return conns, cluster, nil
}

// randomTile picks a uniform tile inside the room footprint.
func (g *Generator) randomTile(room Room) Location {
	return Location{
		X: room.Left + g.rng.Intn(room.Width),
		Y: room.Bottom + g.rng.Intn(room.Height),
	}
}
