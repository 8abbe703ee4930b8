package dungeon

// carve rasterizes the connected layout into the grid. Rooms whose sector is
// in the cluster are drawn; connections with at least one endpoint in the
// cluster become either a merged rectangle or an L/S-shaped corridor.
// Disconnected dummy anchors stay wall.
func (g *Generator) carve(grid *Grid, rooms []Room, conns []Connection, cluster map[int]bool, canMerge []bool) {
	for _, room := range rooms {
		if cluster[room.ID] {
			drawRoom(grid, room)
		}
	}

	for _, conn := range conns {
		if !cluster[conn.A] && !cluster[conn.B] {
			continue
		}
		// The smaller sector id is always room1, so corridor orientation is
		// deterministic given the same draws.
		room1, ok1 := roomByID(rooms, conn.A)
		room2, ok2 := roomByID(rooms, conn.B)
		if !ok1 || !ok2 {
			continue
		}

		if canMerge[conn.A] && canMerge[conn.B] && g.rng.Float64() < g.cfg.MergeChance {
			mergeRooms(grid, room1, room2)
			canMerge[conn.A] = false
			canMerge[conn.B] = false
			continue
		}

		if conn.A/g.cfg.Columns == conn.B/g.cfg.Columns {
			// Same sector row: bridge horizontally between the facing edges.
			// The id difference alone cannot tell the orientations apart on a
			// single-column lattice, where vertical neighbors also differ by 1.
			point1 := Location{
				X: room1.Left + room1.Width - 1,
				Y: room1.Bottom + g.rng.Intn(room1.Height),
			}
			point2 := Location{
				X: room2.Left,
				Y: room2.Bottom + g.rng.Intn(room2.Height),
			}
			bridge := g.randRange(point1.X+2, point2.X-1)
			carveHorizontal(grid, point1, point2, bridge)
		} else {
			// Different sector rows, same column: room1 sits in the lower row.
			point1 := Location{
				X: room1.Left + g.rng.Intn(room1.Width),
				Y: room1.Bottom + room1.Height - 1,
			}
			point2 := Location{
				X: room2.Left + g.rng.Intn(room2.Width),
				Y: room2.Bottom,
			}
			bridge := g.randRange(point1.Y+2, point2.Y-1)
			carveVertical(grid, point1, point2, bridge)
		}
	}
}

// drawRoom sets every tile of the room footprint to ground.
func drawRoom(grid *Grid, room Room) {
	for y := 0; y < room.Height; y++ {
		for x := 0; x < room.Width; x++ {
			grid.set(room.Left+x, room.Bottom+y, TileGround)
		}
	}
}

// mergeRooms rasterizes the union bounding rectangle of two rooms as ground,
// replacing corridor carving for that connection.
func mergeRooms(grid *Grid, room1, room2 Room) {
	left := min(room1.Left, room2.Left)
	bottom := min(room1.Bottom, room2.Bottom)
	right := max(room1.Left+room1.Width, room2.Left+room2.Width)
	top := max(room1.Bottom+room1.Height, room2.Bottom+room2.Height)
	for y := bottom; y < top; y++ {
		for x := left; x < right; x++ {
			grid.set(x, y, TileGround)
		}
	}
}

// carveHorizontal draws an S/Z corridor between point1 (left) and point2
// (right): along y=point1.Y up to bridgeX, along y=point2.Y from bridgeX,
// and a vertical span at x=bridgeX joining the two. All bounds inclusive.
func carveHorizontal(grid *Grid, point1, point2 Location, bridgeX int) {
	for x := point1.X; x <= bridgeX; x++ {
		grid.set(x, point1.Y, TileGround)
	}
	for x := bridgeX; x <= point2.X; x++ {
		grid.set(x, point2.Y, TileGround)
	}
	lo, hi := point1.Y, point2.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		grid.set(bridgeX, y, TileGround)
	}
}

// carveVertical is the symmetric construction between point1 (bottom) and
// point2 (top), bridging on y=bridgeY.
func carveVertical(grid *Grid, point1, point2 Location, bridgeY int) {
	for y := point1.Y; y <= bridgeY; y++ {
		grid.set(point1.X, y, TileGround)
	}
	for y := bridgeY; y <= point2.Y; y++ {
		grid.set(point2.X, y, TileGround)
	}
	lo, hi := point1.X, point2.X
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo; x <= hi; x++ {
		grid.set(x, bridgeY, TileGround)
	}
}
