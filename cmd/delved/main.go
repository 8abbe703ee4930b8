// Command delved runs the WebSocket map service.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/roguefoundry/delvegen/internal/catalog"
	"github.com/roguefoundry/delvegen/internal/config"
	"github.com/roguefoundry/delvegen/internal/logger"
	"github.com/roguefoundry/delvegen/internal/server"
)

func main() {
	configFile := flag.String("config", "data/delvegen.yaml", "Path to config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	dbFile := flag.String("db", "data/delvegen.db", "Path to the run catalog database (empty disables)")
	flag.Parse()

	logCfg, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logCfg)

	logger.Info("Starting delvegen map service")

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("Failed to load config", "path", *configFile, "error", err)
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	var cat *catalog.Catalog
	if *dbFile != "" {
		cat, err = catalog.Open(*dbFile)
		if err != nil {
			logger.Error("Failed to open run catalog", "path", *dbFile, "error", err)
			fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
			os.Exit(1)
		}
		defer cat.Close()
		logger.Info("Run catalog open", "path", *dbFile)
	}

	srv := server.New(cfg, cat)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
