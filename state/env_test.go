package state

import (
	"context"
	stdlog "log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.RunID.Version() != 7 {
		t.Errorf("RunID version = %d, want 7", env.RunID.Version())
	}
	if env.Log != nil || env.Rpt != nil || env.Overwrite || len(env.Title) > 0 {
		t.Errorf("fresh environment is not empty: %+v", env)
	}
}

func TestContextWithEnv_UniqueRunID(t *testing.T) {
	first := EnvFromContext(ContextWithEnv(context.Background()))
	second := EnvFromContext(ContextWithEnv(context.Background()))
	if first.RunID == second.RunID {
		t.Errorf("two environments share run id %s", first.RunID)
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestEnvFromContext_Derived(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	derived, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if EnvFromContext(derived) != EnvFromContext(ctx) {
		t.Error("derived context has different environment")
	}
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond || uptime > time.Second {
		t.Errorf("Uptime() = %v", uptime)
	}
}

func TestLocalEnv_AttachLogger(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	core, logs := observer.New(zapcore.DebugLevel)

	env.AttachLogger(zap.New(core))
	env.Log.Info("Table loaded")
	stdlog.Print("from standard library")
	env.DetachLogger()

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.ContextMap()["run"] != env.RunID.String() {
			t.Errorf("entry %q has no run id: %v", e.Message, e.ContextMap())
		}
	}
	if entries[1].Message != "from standard library" {
		t.Errorf("standard log entry = %q", entries[1].Message)
	}
}

func TestLocalEnv_DetachLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	env := &LocalEnv{}

	// nothing attached
	env.DetachLogger()
	env.AttachLogger(nil)
	if env.Log != nil {
		t.Fatal("nil logger attached")
	}

	for range 2 {
		env.AttachLogger(zap.New(core))
		env.DetachLogger()
		if env.restoreStdLog != nil {
			t.Error("standard log was not restored")
		}
	}
	env.Log.Info("still usable")
	if logs.Len() != 1 {
		t.Errorf("got %d entries after detach", logs.Len())
	}
}
