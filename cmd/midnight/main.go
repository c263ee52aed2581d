package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/echoflaresat/midnightline/clock"
	"github.com/echoflaresat/midnightline/logger"
	"github.com/echoflaresat/midnightline/midnight"
	"go.uber.org/zap"
)

type options struct {
	timeStr  *string
	strategy *string
	watch    *time.Duration
	speed    *float64
	verbose  *bool
	showHelp *bool
}

func defineFlags() options {
	return options{
		timeStr:  flag.String("time", "", "Time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),
		strategy: flag.String("strategy", "apparent", "Strategy chain: apparent (falls back to mean) or mean"),
		watch:    flag.Duration("watch", 0, "Print again at this interval until interrupted"),
		speed:    flag.Float64("speed", 1, "Simulation speed multiplier while watching"),
		verbose:  flag.Bool("v", false, "Log strategy fallbacks"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Midnight - where is it midnight right now?

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Time", []string{"time", "watch", "speed"})
	printGroup("Model", []string{"strategy"})
	printGroup("Misc", []string{"v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-9s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	opts := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *opts.showHelp {
		printHelp()
		return
	}

	zlog := zap.NewNop()
	if *opts.verbose {
		zlog = logger.New("debug", "")
	}
	defer func() { _ = zlog.Sync() }()

	calc, err := midnight.NewFromName(zlog, *opts.strategy)
	if err != nil {
		log.Fatal(err)
	}

	start := parseTimeOrExit(*opts.timeStr)
	if *opts.watch <= 0 {
		printReport(os.Stdout, calc, start)
		return
	}

	clk := clock.New(start, *opts.speed)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	clk.Advance(time.Now())
	printReport(os.Stdout, calc, clk.Now())
	_ = clock.Run(ctx, *opts.watch, func(wall time.Time) {
		printReport(os.Stdout, calc, clk.Advance(wall))
	})
}

func parseTimeOrExit(timeStr string) time.Time {
	if timeStr == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		log.Fatalf("Invalid time format: %v", err)
	}
	return t
}

// printReport writes one line per strategy plus the chain's answer.
func printReport(w io.Writer, calc *midnight.Calculator, t time.Time) {
	lon, used := calc.Evaluate(t)
	fmt.Fprintf(w, "%s  midnight %9.4f° (%s)", t.UTC().Format(time.RFC3339), lon, used)

	mean, _ := midnight.MeanSolar{}.Longitude(t)
	fmt.Fprintf(w, "  mean %9.4f°", mean)
	if apparent, err := (midnight.ApparentSolar{}).Longitude(t); err == nil {
		fmt.Fprintf(w, "  apparent %9.4f°", apparent)
	} else {
		fmt.Fprint(w, "  apparent n/a")
	}

	eot := midnight.EquationOfTime(t)
	fmt.Fprintf(w, "  equation of time %+.1fs\n", eot.Seconds())
}
