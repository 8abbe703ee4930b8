// Package server exposes the dungeon generator over WebSocket: a client
// sends a JSON generation request and receives the finished map as JSON.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/roguefoundry/delvegen/internal/catalog"
	"github.com/roguefoundry/delvegen/internal/config"
	"github.com/roguefoundry/delvegen/internal/dungeon"
	"github.com/roguefoundry/delvegen/internal/logger"
)

// GenerateRequest is a client's generation request. A nil Seed rolls a fresh
// seed; Rows, Columns, and Rooms override the rolled lattice when positive.
type GenerateRequest struct {
	Seed    *int64 `json:"seed,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	Columns int    `json:"columns,omitempty"`
	Rooms   int    `json:"rooms,omitempty"`
}

// MapResponse is the finished dungeon serialized for the client. Tiles holds
// one string per grid row, bottom row first: '#' wall, '.' ground.
type MapResponse struct {
	Seed    int64            `json:"seed"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Rows    int              `json:"rows"`
	Columns int              `json:"columns"`
	Rooms   int              `json:"rooms"`
	Spawn   dungeon.Location `json:"spawn"`
	Exit    dungeon.Location `json:"exit"`
	Tiles   []string         `json:"tiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves generated maps over WebSocket.
type Server struct {
	cfg *config.Config
	cat *catalog.Catalog // optional; nil disables run recording
}

// New creates a server. cat may be nil to disable the run catalog.
func New(cfg *config.Config, cat *catalog.Catalog) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{cfg: cfg, cat: cat}
}

// Handler returns the HTTP handler exposing /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	return mux
}

// ListenAndServe starts the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	logger.Info("Map service listening", "addr", s.cfg.Server.Addr)
	return http.ListenAndServe(s.cfg.Server.Addr, s.Handler())
}

// handleUpgrade upgrades the connection and hands it to the request loop.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return s.cfg.Server.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warning("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	if s.cfg.Server.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.Server.MaxMessageSize)
	}
	go s.serveClient(conn)
}

// serveClient answers generation requests on one connection until it closes.
func (s *Server) serveClient(conn *websocket.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	logger.Info("Client connected", "remote", remote)

	for {
		var req GenerateRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warning("Client read failed", "remote", remote, "error", err)
			}
			return
		}

		resp, err := s.buildMap(&req)
		if err != nil {
			if writeErr := conn.WriteJSON(errorResponse{Error: err.Error()}); writeErr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warning("Client write failed", "remote", remote, "error", err)
			return
		}
	}
}

// buildMap rolls a generation config for the request, runs the generator,
// and serializes the result. Successful runs are recorded in the catalog.
func (s *Server) buildMap(req *GenerateRequest) (*MapResponse, error) {
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	dcfg := s.cfg.Map.Roll(seed)
	if req.Rows > 0 {
		dcfg.Rows = req.Rows
	}
	if req.Columns > 0 {
		dcfg.Columns = req.Columns
	}
	if req.Rooms > 0 {
		dcfg.RealRooms = req.Rooms
	}

	m, err := dungeon.NewGenerator(dcfg).Generate()
	if err != nil {
		if errors.Is(err, dungeon.ErrSectorTooSmall) || errors.Is(err, dungeon.ErrInvalidLattice) || errors.Is(err, dungeon.ErrInvalidRooms) {
			return nil, err
		}
		logger.Error("Generation failed", "seed", seed, "error", err)
		return nil, err
	}

	if s.cat != nil {
		if err := s.cat.Record(catalog.NewRun(dcfg, m)); err != nil {
			logger.Warning("Failed to record run", "seed", seed, "error", err)
		}
	}

	return &MapResponse{
		Seed:    seed,
		Width:   dcfg.Width,
		Height:  dcfg.Height,
		Rows:    dcfg.Rows,
		Columns: dcfg.Columns,
		Rooms:   dcfg.RealRooms,
		Spawn:   m.Spawn,
		Exit:    m.Exit,
		Tiles:   encodeTiles(m.Grid),
	}, nil
}

// encodeTiles renders the grid one row per string, bottom row first.
func encodeTiles(grid *dungeon.Grid) []string {
	tiles := make([]string, 0, grid.Height())
	var row strings.Builder
	for y := 0; y < grid.Height(); y++ {
		row.Reset()
		for x := 0; x < grid.Width(); x++ {
			tile, _ := grid.At(x, y)
			if tile == dungeon.TileGround {
				row.WriteByte('.')
			} else {
				row.WriteByte('#')
			}
		}
		tiles = append(tiles, row.String())
	}
	return tiles
}
