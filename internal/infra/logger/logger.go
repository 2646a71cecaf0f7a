package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level      string
	Dir        string // when set, error.log and combined.log are written here
	Production bool
}

// New builds the process logger. JSON goes to the log files; outside
// production a console encoder is added on stdout.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonEnc := zapcore.NewJSONEncoder(encCfg)

	var cores []zapcore.Core

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		errFile, _, err := zap.Open(filepath.Join(opts.Dir, "error.log"))
		if err != nil {
			return nil, fmt.Errorf("open error.log: %w", err)
		}
		allFile, _, err := zap.Open(filepath.Join(opts.Dir, "combined.log"))
		if err != nil {
			return nil, fmt.Errorf("open combined.log: %w", err)
		}
		cores = append(cores,
			zapcore.NewCore(jsonEnc, errFile, zapcore.ErrorLevel),
			zapcore.NewCore(jsonEnc, allFile, level),
		)
	}

	switch {
	case !opts.Production:
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level))
	case len(cores) == 0:
		cores = append(cores, zapcore.NewCore(jsonEnc, zapcore.Lock(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
