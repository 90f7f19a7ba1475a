package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"launchpad/pkg/mulearn"
	"launchpad/pkg/render"
)

// DigestConfig configures a leaderboard digest run.
type DigestConfig struct {
	Query    mulearn.LeaderboardQuery
	Upstream *mulearn.Client
	Now      func() time.Time
}

type digestData struct {
	GeneratedAt string
	Students    []mulearn.LeaderboardStudent
}

// LeaderboardDigest fetches a leaderboard page and renders it as plain text.
func LeaderboardDigest(ctx context.Context, cfg DigestConfig) (string, error) {
	if cfg.Upstream == nil {
		return "", errors.New("upstream client is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	board, err := cfg.Upstream.Leaderboard(ctx, cfg.Query)
	if err != nil {
		return "", fmt.Errorf("fetch leaderboard: %w", err)
	}

	engine, err := render.New()
	if err != nil {
		return "", err
	}

	return engine.Render("leaderboard_digest", digestData{
		GeneratedAt: cfg.Now().UTC().Format(time.RFC3339),
		Students:    board.Students,
	})
}
