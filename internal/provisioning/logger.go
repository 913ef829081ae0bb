package provisioning

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions configures the logger behind the observer.
type LogOptions struct {
	// Verbose enables V(1) messages.
	Verbose bool
	// JSON switches from console to JSON lines.
	JSON bool
	// Writer defaults to stderr so stdout stays free for command output.
	Writer io.Writer
}

// NewRunID returns a fresh identifier attached to every log line of a run.
func NewRunID() string {
	return uuid.NewString()
}

// NewLogger builds a zap-backed logr.Logger carrying runID.
func NewLogger(opts LogOptions, runID string) logr.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	return zapr.NewLogger(zap.New(core)).WithValues("run_id", runID)
}
