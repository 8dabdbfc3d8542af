// Package log builds the slog loggers used by the anchorfix CLI.
//
// Verbose mode logs at Debug, which includes one record per rewritten
// anchor; otherwise only warnings and errors are written.
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
