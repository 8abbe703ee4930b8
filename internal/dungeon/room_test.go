package dungeon

import "testing"

func TestNewConnectionCanonical(t *testing.T) {
	tests := []struct {
		id1, id2     int
		wantA, wantB int
	}{
		{0, 1, 0, 1},
		{1, 0, 0, 1},
		{7, 3, 3, 7},
		{5, 5, 5, 5},
	}

	for _, tc := range tests {
		conn := newConnection(tc.id1, tc.id2)
		if conn.A != tc.wantA || conn.B != tc.wantB {
			t.Errorf("newConnection(%d, %d) = (%d, %d), want (%d, %d)",
				tc.id1, tc.id2, conn.A, conn.B, tc.wantA, tc.wantB)
		}
	}
}

func TestHasConnectionOrderIndependent(t *testing.T) {
	conns := []Connection{
		newConnection(0, 1),
		newConnection(4, 2),
	}

	if !hasConnection(conns, 0, 1) {
		t.Error("hasConnection(0, 1) should be true")
	}
	if !hasConnection(conns, 1, 0) {
		t.Error("hasConnection(1, 0) should be true")
	}
	if !hasConnection(conns, 2, 4) {
		t.Error("hasConnection(2, 4) should be true")
	}
	if hasConnection(conns, 0, 2) {
		t.Error("hasConnection(0, 2) should be false")
	}
	if hasConnection(nil, 0, 1) {
		t.Error("hasConnection on empty set should be false")
	}
}

func TestRoomContains(t *testing.T) {
	room := Room{ID: 0, Left: 3, Bottom: 2, Width: 5, Height: 4}

	inside := []struct{ x, y int }{{3, 2}, {7, 5}, {5, 3}}
	for _, p := range inside {
		if !room.Contains(p.x, p.y) {
			t.Errorf("Contains(%d, %d) = false, want true", p.x, p.y)
		}
	}

	outside := []struct{ x, y int }{{2, 2}, {8, 2}, {3, 1}, {3, 6}, {0, 0}}
	for _, p := range outside {
		if room.Contains(p.x, p.y) {
			t.Errorf("Contains(%d, %d) = true, want false", p.x, p.y)
		}
	}
}

func TestRoomByID(t *testing.T) {
	rooms := []Room{
		{ID: 0, Width: 1, Height: 1},
		{ID: 1, Width: 5, Height: 4},
		{ID: 2, Width: 1, Height: 1},
	}

	room, ok := roomByID(rooms, 1)
	if !ok || room.ID != 1 {
		t.Errorf("roomByID(1) = (%v, %v), want room 1", room.ID, ok)
	}

	if _, ok := roomByID(rooms, 9); ok {
		t.Error("roomByID(9) should report not found")
	}

	// Filtered slice where the direct index no longer matches.
	filtered := []Room{{ID: 2, Width: 5, Height: 4}}
	room, ok = roomByID(filtered, 2)
	if !ok || room.ID != 2 {
		t.Errorf("roomByID on filtered slice = (%v, %v), want room 2", room.ID, ok)
	}
}
