package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cargo-expand/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace flag")
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-level flag")
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-mode flag")
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-format flag")
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-ring-size flag")
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-heartbeat flag")
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace alone means phase-level tracing
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracer")
	}

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	stopHeartbeat := trace.StartHeartbeat(cmd.Context(), tracer, heartbeatInterval)

	cleanup := func() {
		stopHeartbeat()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
