package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/rating"
	"github.com/lgbarn/chessai-go/internal/resource"
	"github.com/lgbarn/chessai-go/internal/server"
	"github.com/lgbarn/chessai-go/internal/service"
)

// assetRoot is where the image files referenced by /api/assets live.
const assetRoot = "images"

// runServe serves games until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config) error {
	ratings := rating.NewService(rating.NewMemoryStore(cfg.Rating.InitialRating), *cfg.Rating)
	games, err := service.NewManager(cfg, ratings)
	if err != nil {
		return err
	}
	srv := server.New(cfg, games, resource.NewCatalog(assetRoot))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Listen)
	g.Go(func() error {
		<-gctx.Done()
		cfg.Logf(1, "shutting down")
		return srv.Shutdown()
	})
	return g.Wait()
}
