package logger

import (
	"io"
	"os"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"

	"travel_planner/internal/config"
)

// Setup points logrus at a rotating file and returns the writer so the
// access log can share it.
func Setup(s *config.Settings) io.Writer {
	rotator := &lumberjack.Logger{
		Filename:   s.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	var out io.Writer = rotator
	if s.LogStdout {
		out = io.MultiWriter(rotator, os.Stdout)
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		level = logrus.DebugLevel
		logrus.WithError(err).Warn("unknown LOG_LEVEL, using debug")
	}
	logrus.SetLevel(level)
	return out
}

// AccessLog writes one line per request to w. Probe and scrape endpoints are
// left out.
func AccessLog(w io.Writer) gin.HandlerFunc {
	return ginlog.SetLogger(
		ginlog.WithWriter(w),
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/metrics", "/healthz"}),
	)
}
