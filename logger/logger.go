package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aunefyren/coverr/models"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

var logPath, _ = filepath.Abs("./config")
var logFile = filepath.Join(logPath, "coverr.log")

// InitLogger points the package logger at the log file and applies the level
// from the config. Before this is called the logger writes to stderr at the
// default level.
func InitLogger(configFile models.ConfigStruct) {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(configFile.CoverrLogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Log.Info("failed to open log file, logging to console only. error: " + err.Error())
		return
	}

	Log.SetOutput(io.MultiWriter(os.Stdout, file))
}
