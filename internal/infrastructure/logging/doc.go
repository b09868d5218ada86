// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output on stderr for the session journal
//   - Development: coloured console output
//
// Components never build their own zap logger; they receive one and name
// themselves:
//
//	logger := logging.NewDefault()
//	resolver := background.NewResolver(store, decoder, background.Options{
//	    Logger: logger.Component("background"),
//	})
//	logger.Warn("No active views. Make first view active", zap.String("session", id))
package logging
