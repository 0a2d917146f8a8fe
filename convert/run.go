// Package convert implements generate subcommand: it turns report
// specification into finished PDF document.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"repgen/content"
	"repgen/layout"
	"repgen/pdfdoc"
	"repgen/report"
	"repgen/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no report specification has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.Title = cmd.Bool("overwrite"), cmd.String("title")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("run", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	_, err = generate(ctx, src, dst, log)
	return err
}

// generate produces single report described by specification file "src" in
// directory "dst" and returns path of the written document. No document is
// written when generation fails.
func generate(ctx context.Context, src, dst string, log *zap.Logger) (outputName string, rerr error) {
	env := state.EnvFromContext(ctx)

	log.Info("Generation starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: image decoders and rasterizers could panic on malformed
		// input, we want it in the log with stack.
		if r := recover(); r != nil {
			log.Error("Generation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			outputName, rerr = "", fmt.Errorf("generation panic: %v", r)
		} else if rerr == nil {
			log.Info("Generation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	spec, err := report.Load(src)
	if err != nil {
		return "", fmt.Errorf("unable to load report specification: %w", err)
	}
	if err := env.Rpt.StoreCopy("spec/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store report specification in debug report", zap.Error(err))
	}

	c, err := content.Prepare(ctx, spec, src, log)
	if err != nil {
		return "", fmt.Errorf("unable to prepare report content: %w", err)
	}
	if env.Rpt == nil {
		// with debug report work directory goes into archive and is removed
		// when report is closed
		defer func() {
			if err := os.RemoveAll(c.WorkDir); err != nil {
				log.Warn("Unable to remove work directory", zap.String("dir", c.WorkDir), zap.Error(err))
			}
		}()
	}
	if len(env.Title) > 0 {
		c.Title = env.Title
	}

	// Determine output file name and path based on report and configuration.
	outputName = buildOutputPath(c, spec.OutputName, dst, env)

	// Check if output file already exists, it is replaced only when the new
	// document is completely written
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return "", fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return "", err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	cfg := &env.Cfg.Document
	cs, err := layout.NewCharset(cfg.Charset)
	if err != nil {
		return "", fmt.Errorf("bad document charset: %w", err)
	}
	opts, err := documentOptions(cfg, documentTitle(c, env), cs, env.RunID)
	if err != nil {
		return "", fmt.Errorf("bad document options: %w", err)
	}
	doc, err := pdfdoc.New(opts, log)
	if err != nil {
		return "", fmt.Errorf("unable to create document: %w", err)
	}
	eng, err := layout.New(doc, layoutOptions(cfg, doc.Page(), cs), log)
	if err != nil {
		return "", err
	}
	if err := eng.Compose(ctx, c.Chapters); err != nil {
		return "", fmt.Errorf("unable to compose report: %w", err)
	}
	if err := doc.Finalize(outputName); err != nil {
		return "", fmt.Errorf("unable to write report: %w", err)
	}

	// Store generation result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", env.RunID, filepath.Ext(outputName)), outputName)
	}
	return outputName, nil
}
