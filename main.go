package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.thinkinpower.net/cardmeta/bdata"
	"git.thinkinpower.net/cardmeta/config"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/metadata"
	"git.thinkinpower.net/cardmeta/middleware"
	"git.thinkinpower.net/cardmeta/route"
	"git.thinkinpower.net/cardmeta/validator"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

func setMode(mode string) {
	switch mode {
	case data.RunModeDev:
		gin.SetMode(gin.DebugMode)
	case data.RunModeTest:
		gin.SetMode(gin.TestMode)
	case data.RunModeRelease:
		gin.SetMode(gin.ReleaseMode)
	}
}

// newFetcher picks where the validators' card metadata comes from: another
// bindb service when one is configured, this service's own database otherwise.
func newFetcher(cfg *config.Config, db bdata.BinDatabase) metadata.Fetcher {
	if cfg.UpstreamURL != "" {
		logger.Infof("card metadata from upstream %s", cfg.UpstreamURL)
		return metadata.NewHTTPFetcher(cfg.UpstreamURL, cfg.APIKey, cfg.FetchTimeout)
	}
	return bdata.NewLocalFetcher(db)
}

func main() {
	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logger.InfoLevel)

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logger.Fatalf("load config error: %s", err)
	}
	logger.SetLevel(cfg.Level())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := bdata.NewBinDatabase(cfg.DatabaseMode)
	if err != nil {
		logger.Fatal(err)
	}
	if err = db.Init(ctx, cfg.BinDataConfig()); err != nil {
		logger.Fatalf("init bin database error: %s", err)
	}
	defer db.Close()

	cache := metadata.New(newFetcher(cfg, db), metadata.WithContext(ctx))
	cards := validator.NewCardValidator(cache)

	logger.Info("starting http server...")
	setMode(cfg.Mode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Log())
	r.Use(middleware.Recovery())
	route.Register(r, route.NewHandler(db, cards, cfg.Lang))

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		logger.Infof("listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down Server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server Shutdown failure: %s", err)
	}
	logger.Info("Server exit.")
}
