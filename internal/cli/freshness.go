package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/freshness"
	"github.com/dohsimpson/habittrove/internal/logger"
)

var ErrStale = errors.New("data has changed")

type HashCmd struct{}

func (c *HashCmd) Run(ctx *Context) error {
	state, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	hash, err := freshness.Hash(state)
	if err != nil {
		return err
	}
	ctx.println(hash)
	return nil
}

type CheckCmd struct {
	Hash string `arg:"" help:"Hash previously returned by the hash command."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	state, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	fresh, current, err := freshness.Check(state, c.Hash)
	if err != nil {
		return err
	}
	if fresh {
		ctx.println(doneStyle.Render("fresh"))
		return nil
	}

	ctx.println(overdueStyle.Render("stale"))
	ctx.printf("current: %s\n", current)
	return ErrStale
}

type WatchCmd struct {
	Interval time.Duration `help:"How often to re-hash the data files." default:"30s"`
	Backup   string        `help:"Cron spec for automatic backups while watching (e.g. \"@daily\" or \"0 3 * * *\")."`
}

func (c *WatchCmd) Run(ctx *Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = constants.DefaultWatchInterval
	}

	w := freshness.NewWatcher(ctx.Store.Load, interval)
	w.OnChange = func(prev, cur string) {
		ctx.printf("%s data changed: %s -> %s\n", ctx.Clock.Now().Format(time.RFC3339), short(prev), short(cur))
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	ctx.printf("Watching %s every %s (hash %s)\n", ctx.Store.DataDir(), interval, short(w.Last()))

	if c.Backup != "" {
		backups := cron.New()
		if _, err := backups.AddFunc(c.Backup, ctx.PerformAutomaticBackup); err != nil {
			return fmt.Errorf("invalid backup schedule %q: %w", c.Backup, err)
		}
		logger.Info("Scheduled automatic backups", "schedule", c.Backup)
		backups.Start()
		defer func() { <-backups.Stop().Done() }()
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	ctx.println("Stopped watching.")
	return nil
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
