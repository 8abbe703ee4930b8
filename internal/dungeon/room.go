package dungeon

// Room is one sector's occupant: either a multi-tile real room or a 1×1
// dummy anchor that only serves as a corridor waypoint. Coordinates are
// global tile coordinates; ID is the sector index, row-major from the
// bottom-left of the lattice.
type Room struct {
	ID     int  `json:"id"`
	Dummy  bool `json:"dummy"`
	Left   int  `json:"left"`
	Bottom int  `json:"bottom"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

// Contains reports whether the tile at (x, y) lies inside the room footprint.
func (r Room) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Bottom && y < r.Bottom+r.Height
}

// Connection is an unordered pair of grid-adjacent sector ids, stored
// canonically as (min, max) so membership tests are order-independent.
type Connection struct {
	A int `json:"a"`
	B int `json:"b"`
}

// newConnection builds a canonical connection from two sector ids.
func newConnection(id1, id2 int) Connection {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return Connection{A: id1, B: id2}
}

// hasConnection reports whether the pair (id1, id2) is already present,
// in either order.
func hasConnection(conns []Connection, id1, id2 int) bool {
	want := newConnection(id1, id2)
	for _, c := range conns {
		if c == want {
			return true
		}
	}
	return false
}

// roomByID finds the room occupying the given sector. Rooms are created one
// per sector in id order, so the direct index is tried first; the scan
// handles callers holding a filtered slice.
func roomByID(rooms []Room, id int) (Room, bool) {
	if id >= 0 && id < len(rooms) && rooms[id].ID == id {
		return rooms[id], true
	}
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}
