// Command mapgen generates a dungeon layout and renders it as ASCII.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/roguefoundry/delvegen/internal/catalog"
	"github.com/roguefoundry/delvegen/internal/config"
	"github.com/roguefoundry/delvegen/internal/dungeon"
)

func main() {
	configFile := flag.String("config", "data/delvegen.yaml", "Path to config YAML file")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	rows := flag.Int("rows", 0, "Override sector rows (0 rolls from the configured range)")
	columns := flag.Int("columns", 0, "Override sector columns (0 rolls from the configured range)")
	rooms := flag.Int("rooms", 0, "Override real room count (0 rolls from the configured range)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	dbFile := flag.String("db", "", "Record the run in this SQLite catalog (empty disables)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	mapSeed := *seed
	if mapSeed == 0 {
		mapSeed = time.Now().UnixNano()
	}

	dcfg := cfg.Map.Roll(mapSeed)
	if *rows > 0 {
		dcfg.Rows = *rows
	}
	if *columns > 0 {
		dcfg.Columns = *columns
	}
	if *rooms > 0 {
		dcfg.RealRooms = *rooms
	}

	m, err := dungeon.NewGenerator(dcfg).Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating map: %v\n", err)
		os.Exit(1)
	}

	if *dbFile != "" {
		cat, err := catalog.Open(*dbFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
			os.Exit(1)
		}
		defer cat.Close()
		if err := cat.Record(catalog.NewRun(dcfg, m)); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
			os.Exit(1)
		}
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Dungeon (Seed: %d, Lattice: %dx%d, Real rooms: %d)\n",
		mapSeed, dcfg.Rows, dcfg.Columns, dcfg.RealRooms))
	output.WriteString(strings.Repeat("=", dcfg.Width) + "\n")
	renderGrid(&output, m)
	if *showLegend {
		output.WriteString(getLegend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

// renderGrid prints the grid top row first so y grows upward on screen,
// matching the generator's bottom-left origin.
func renderGrid(output *strings.Builder, m *dungeon.DungeonMap) {
	for y := m.Grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < m.Grid.Width(); x++ {
			loc := dungeon.Location{X: x, Y: y}
			switch {
			case loc == m.Spawn:
				output.WriteByte('@')
			case loc == m.Exit:
				output.WriteByte('>')
			default:
				tile, _ := m.Grid.At(x, y)
				if tile == dungeon.TileGround {
					output.WriteByte('.')
				} else {
					output.WriteByte('#')
				}
			}
		}
		output.WriteByte('\n')
	}
}

func getLegend() string {
	return `
Legend:
  @  Spawn point
  >  Exit (stairs)
  .  Ground
  #  Wall
`
}
