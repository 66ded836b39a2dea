package cli

import (
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

var statusTmpl = template.Must(template.New("status").Parse(statusTemplate))

type statusView struct {
	APIBaseURL     string
	CachePath      string
	Entries        string
	Newest         string
	Debounce       time.Duration
	FilterDebounce time.Duration
	StaleTime      time.Duration
	Encrypted      bool
}

func (c *Cli) runStatus(ctx context.Context) error {
	keys, err := c.cache.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	var newest time.Time
	for _, key := range keys {
		at, ok, err := c.cache.UpdatedAt(ctx, key)
		if err != nil {
			// запись может быть нечитаемой после смены ключа, статус от этого не ломается
			c.logger.Debug().Err(err).Str("key", key).Msg("Skipping unreadable cache entry")
			continue
		}
		if ok && at.After(newest) {
			newest = at
		}
	}

	view := statusView{
		APIBaseURL:     c.cfg.APIBaseURL,
		CachePath:      c.cfg.CachePath,
		Entries:        humanize.Comma(int64(len(keys))),
		Debounce:       c.cfg.Debounce,
		FilterDebounce: c.cfg.FilterDebounce,
		StaleTime:      c.cfg.StaleTime,
		Encrypted:      c.cfg.Encrypted(),
	}
	if !newest.IsZero() {
		view.Newest = humanize.RelTime(newest, c.now(), "ago", "from now")
	}

	if err := statusTmpl.Execute(c.io, view); err != nil {
		return fmt.Errorf("failed to render status: %w", err)
	}
	return nil
}
