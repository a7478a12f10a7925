package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagFrontend = flag.String("frontend", "", "Front end: tui, sdl or ebiten")
	flagLang     = flag.String("lang", "", "Message language")
	flagTPS      = flag.Int("tps", 0, "Simulation frames per second")
	flagMute     = flag.Bool("mute", false, "Disable sound effects")
	flagLogFile  = flag.String("log-file", "", "Write logs to this file")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
	flagPick     = flag.Bool("pick-config", false, "Choose the config file in a file dialog")
	flagResume   = flag.Bool("resume", false, "Restore the scene saved on the last exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SetConfigPath overrides the --config flag, e.g. with a path chosen in a dialog.
func SetConfigPath(path string) {
	*flagConfig = path
}

// PickRequested reports whether --pick-config was given.
func PickRequested() bool {
	return *flagPick
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrontend != "" {
		cfg.Frontend.Kind = *flagFrontend
	}
	if *flagLang != "" {
		cfg.Game.Language = *flagLang
	}
	if *flagTPS > 0 {
		cfg.Simulation.TPS = *flagTPS
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
	if *flagResume {
		cfg.Game.Resume = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
