// labels one local image and stores the result
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/database"
	"github.com/ds124wfegd/visionpipe/internal/pkg/awsClient"
	"github.com/ds124wfegd/visionpipe/internal/pkg/inference"
	"github.com/ds124wfegd/visionpipe/internal/pkg/logger"
	"github.com/ds124wfegd/visionpipe/internal/pkg/rekognition"
	"github.com/ds124wfegd/visionpipe/internal/pkg/storage"
	"github.com/ds124wfegd/visionpipe/internal/service"
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

	if len(os.Args) < 2 {
		logrus.Fatalf("usage: %s <image>", filepath.Base(os.Args[0]))
	}
	imagePath := os.Args[1]
	imageID := filepath.Base(imagePath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	image, err := storage.NewFileStorage(filepath.Dir(imagePath)).Get(ctx, "", imageID)
	if err != nil {
		logrus.Fatalf("Cannot read image. Error: {%s}", err.Error())
	}
	// reject empty or undecodable files before calling Rekognition
	if _, err := inference.DecodeImage(image); err != nil {
		logrus.Fatalf("Cannot decode image %s. Error: {%s}", imageID, err.Error())
	}

	clients, err := awsClient.New(ctx, cfg.AWS)
	if err != nil {
		logrus.Fatalf("Cannot init AWS clients. Error: {%s}", err.Error())
	}

	repo, err := database.NewResultRepository(ctx, cfg.Store)
	if err != nil {
		logrus.Fatalf("Cannot open result store. Error: {%s}", err.Error())
	}
	defer repo.Close()

	labeler := rekognition.NewLabeler(clients.Rekognition, cfg.Rekognition.MaxLabels, cfg.Rekognition.MinConfidence)
	result, err := service.NewLabelService(labeler, repo).LabelImage(ctx, imageID, image)
	if err != nil {
		logrus.Fatalf("Cannot label %s. Error: {%s}", imageID, err.Error())
	}
	logrus.Infof("Label results saved for %s.", imageID)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logrus.Fatalf("Cannot encode result. Error: {%s}", err.Error())
	}
	fmt.Println(string(out))
}
