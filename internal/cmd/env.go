package cmd

import (
	"context"
	"fmt"

	"github.com/runger/skillpick/internal/app"
	"github.com/runger/skillpick/internal/config"
)

// openEnv loads the config and the skill environment for a command. The
// caller must Close the result.
func openEnv(ctx context.Context) (*app.Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.Open(ctx, cfg, config.DefaultPaths())
}
