// Package logging builds the zap loggers used by the client.
//
// New writes JSON, or colored console lines in development, to stderr or a
// configured writer. NewTrace builds the plain console logger behind the debug
// trace.
//
//	logger, _ := logging.New(logging.Config{Level: "info"})
//	logger.Info("request completed", zap.String("path", "users"))
//
//	trace, _ := logging.NewTrace(os.Stderr, "debug")
//	trace.Debug("Response", zap.String("raw", raw))
package logging
