// runs one SSD forward pass and reports the output shape
package main

import (
	"os"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/pkg/inference"
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

	s := cfg.Inference.SSD
	imagePath := s.ImagePath
	if len(os.Args) > 1 {
		imagePath = os.Args[1]
	}
	if imagePath == "" {
		logrus.Fatal("no image given: pass a path or set inference.ssd.image_path")
	}

	session, err := inference.NewSession(cfg.Inference.LibraryPath, s.ModelPath)
	if err != nil {
		logrus.Fatalf("Cannot load model. Error: {%s}", err.Error())
	}
	defer session.Close()

	img, err := inference.LoadImage(imagePath)
	if err != nil {
		logrus.Fatalf("Cannot load image. Error: {%s}", err.Error())
	}

	shape, err := inference.NewSSD(session, s.Size).Forward(img)
	if err != nil {
		logrus.Fatalf("Detection failed. Error: {%s}", err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"image": imagePath,
		"shape": shape,
	}).Info("SSD forward pass finished")
}
