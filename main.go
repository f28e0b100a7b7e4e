package main

import (
	"Reelhouse/database"
	"Reelhouse/internal/server"
	"fmt"
	"github.com/sirupsen/logrus"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	srv, err := InitializeServer()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer database.CloseDatabase(srv.DB)
	cfg := srv.Configuration
	logger := srv.LogService.Log

	if projects, err := srv.ProjectService.DiscoverProjects(); err != nil {
		logger.WithField("error", err.Error()).Warn("Project discovery finished with errors")
	} else {
		logger.WithFields(logrus.Fields{
			"path":     cfg.Storage.Path,
			"projects": len(projects),
		}).Info("projects discovered")
	}

	if err := srv.JanitorService.StartCleanCycle(); err != nil {
		logger.Fatalf("Failed to schedule janitor: %v", err)
	}
	defer srv.JanitorService.StopClean()

	app := server.NewApp(srv, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
