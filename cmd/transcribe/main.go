// starts one transcription job
package main

import (
	"context"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/pkg/awsClient"
	"github.com/ds124wfegd/visionpipe/internal/pkg/logger"
	"github.com/ds124wfegd/visionpipe/internal/pkg/transcribe"
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

	ctx := context.Background()
	clients, err := awsClient.New(ctx, cfg.AWS)
	if err != nil {
		logrus.Fatalf("Cannot init AWS clients. Error: {%s}", err.Error())
	}

	job := transcribe.JobFromConfig(cfg.Transcribe)
	if _, err := transcribe.NewLauncher(clients.Transcribe).Start(ctx, job); err != nil {
		logrus.Fatalf("Cannot start transcription job. Error: {%s}", err.Error())
	}
}
