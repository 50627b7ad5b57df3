// Command mapserverd runs the TCP map-serving collaborator standalone.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/dshills/dungeonwalk/pkg/config"
	"github.com/dshills/dungeonwalk/pkg/mapserver"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file (optional)")
	port       = flag.Int("port", 0, "TCP port to listen on (0 = use config/default)")
	verbose    = flag.Bool("verbose", false, "enable debug-level logging")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.WithError(err).Fatal("loading config")
		}
		cfg = *loaded
	}

	listenPort := cfg.Server.Port
	if *port != 0 {
		listenPort = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mapserver.NewServer(fmt.Sprintf(":%d", listenPort), logger)
	if err := srv.Start(ctx); err != nil {
		logger.WithError(err).Fatal("server exited with error")
	}
	logger.Info("server shut down cleanly")
}
