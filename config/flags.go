package config

import (
	"flag"
	"time"
)

type flags struct {
	configPath string
	debug      bool
	addr       string
	strategy   string
	follow     bool
	multiplier float64
	tick       time.Duration
	logFile    string
	set        map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	fl := &flags{}
	fs := flag.NewFlagSet("midnightline", flag.ContinueOnError)
	fs.StringVar(&fl.configPath, "config", "", "Path to config file")
	fs.BoolVar(&fl.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&fl.addr, "addr", "", "HTTP listen address")
	fs.StringVar(&fl.strategy, "strategy", "", "Midnight strategy: apparent or mean")
	fs.BoolVar(&fl.follow, "follow", false, "Follow the midnight line at start")
	fs.Float64Var(&fl.multiplier, "speed", 0, "Simulation speed multiplier")
	fs.DurationVar(&fl.tick, "tick", 0, "Tick interval")
	fs.StringVar(&fl.logFile, "log-file", "", "Rotating log file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fl.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { fl.set[f.Name] = true })
	return fl, nil
}

// apply overrides cfg with the flags given on the command line.
func (fl *flags) apply(cfg *Config) {
	if fl.debug {
		cfg.Logging.Level = "debug"
	}
	if fl.addr != "" {
		cfg.Server.Addr = fl.addr
	}
	if fl.strategy != "" {
		cfg.Midnight.Strategy = fl.strategy
	}
	if fl.set["follow"] {
		cfg.Follow.Enabled = fl.follow
	}
	if fl.set["speed"] {
		cfg.Clock.Multiplier = fl.multiplier
	}
	if fl.set["tick"] {
		cfg.Clock.Tick = fl.tick
	}
	if fl.logFile != "" {
		cfg.Logging.LogFile = fl.logFile
	}
}
