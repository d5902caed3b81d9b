// Package logging configures the process-wide logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures logrus to write to stderr and, when logPath is non-empty,
// to a size-rotated durable log file. Verbose enables debug-level output.
func Init(verbose bool, logPath string) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if logPath == "" {
		log.SetOutput(os.Stderr)
		return
	}

	fileLogger := &lumberjack.Logger{
		Filename:   filepath.ToSlash(logPath),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     90, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, fileLogger))
}
