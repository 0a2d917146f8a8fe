// Package state carries program wide state of a single run through context.
package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repgen/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// RunID identifies single program run in logs, debug report and
	// document metadata.
	RunID uuid.UUID

	// used by generate subcommand
	Overwrite bool
	Title     string

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

// ContextWithEnv attaches fresh environment with new run id to ctx.
func ContextWithEnv(ctx context.Context) context.Context {
	id, err := uuid.NewV7()
	if err != nil {
		// time based generation failed, random is good enough
		id = uuid.New()
	}
	return context.WithValue(ctx, envKey{}, &LocalEnv{RunID: id, start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// AttachLogger makes log the program logger. Every entry carries run id and
// standard library log output goes to it until DetachLogger.
func (e *LocalEnv) AttachLogger(log *zap.Logger) {
	if log == nil {
		return
	}
	e.DetachLogger()
	e.Log = log.With(zap.Stringer("run", e.RunID))
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

// DetachLogger flushes the logger and restores standard library log. Logger
// stays usable.
func (e *LocalEnv) DetachLogger() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
