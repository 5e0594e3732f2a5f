package main

import (
	"log/slog"
	"os"

	"recolor/batch"
	"recolor/parallel"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
)

const version = "0.2.0"

type cli struct {
	batch.CLICmd

	Workers int              `help:"Worker count for parallel processing (0 means one per CPU)" default:"0"`
	Verbose int              `short:"v" type:"counter" help:"Verbose mode (-v, -vv)"`
	Version kong.VersionFlag `help:"Print version and exit"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("recolor"),
		kong.Description("Recolor images so every pixel snaps to the perceptually closest color of a theme palette. One output is written per selected style variation of the theme, for every input image."),
		kong.Vars{"version": version},
	)

	level := slog.LevelWarn
	switch {
	case c.Verbose >= 2:
		level = slog.LevelDebug
	case c.Verbose == 1:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))

	pool := parallel.Start(c.Workers)
	if err := c.CLICmd.Run(pool.Do, pool.Wait); err != nil {
		slog.Error("run failed", "error", err)
		kctx.Exit(1)
	}
}
