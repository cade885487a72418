// Package logger provides structured logging for skeletons using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. The runtime logs stage lifecycle events at
// debug level under the "pipeline" and "channel" components.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.Debug("stage started", logger.Fields(logger.FieldStage, id))
package logger
