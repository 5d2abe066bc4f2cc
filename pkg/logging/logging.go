// Package logging configures the zap logger shared by the sqlcat commands.
//
// sqlcat is an interactive tool, so its logs are diagnostics written to
// stderr next to the messages printed on stdout. Without --debug only
// warnings and errors appear, in console form without caller or stack
// information. With --debug every level is written together with the
// caller and the build version.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared logger. It discards everything until Setup runs.
var Logger = zap.NewNop()

// Setup replaces Logger and zap's globals with a logger for the given mode.
func Setup(debug bool, appVersion string) error {
	cfg := config(debug)
	if debug {
		cfg.InitialFields = map[string]interface{}{"version": appVersion}
	}

	l, err := cfg.Build()
	if err != nil {
		Logger = zap.NewNop()
		return err
	}

	Logger = l.Named("sqlcat")
	zap.ReplaceGlobals(Logger)
	return nil
}

func config(debug bool) zap.Config {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	return cfg
}
