package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"
)

func (c *Cli) runCacheClear(ctx context.Context) error {
	keys, err := c.cache.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}
	if err := c.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	c.io.Printf("Removed %s.\n", english.Plural(len(keys), "cached response", ""))
	return nil
}
