// entry point to the queue-driven labeler
package main

import (
	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/appServer"
	"github.com/ds124wfegd/visionpipe/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(new(logrus.JSONFormatter))

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if err := appServer.NewServer(cfg); err != nil {
		logrus.Fatalf("Labeler stopped. Error: {%s}", err.Error())
	}
}
