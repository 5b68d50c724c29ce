// detects objects in one image and prints them as JSON
package main

import (
	"encoding/json"
	"fmt"
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

	d := cfg.Inference.Detector
	imagePath := d.ImagePath
	if len(os.Args) > 1 {
		imagePath = os.Args[1]
	}
	if imagePath == "" {
		logrus.Fatal("no image given: pass a path or set inference.detector.image_path")
	}

	names, err := inference.LoadNames(d.NamesPath)
	if err != nil {
		logrus.Fatalf("Cannot load class names. Error: {%s}", err.Error())
	}

	session, err := inference.NewSession(cfg.Inference.LibraryPath, d.ModelPath)
	if err != nil {
		logrus.Fatalf("Cannot load model. Error: {%s}", err.Error())
	}
	defer session.Close()

	img, err := inference.LoadImage(imagePath)
	if err != nil {
		logrus.Fatalf("Cannot load image. Error: {%s}", err.Error())
	}

	detections, err := inference.NewDetector(session, names, d.Size, d.Confidence, d.IoU).Detect(img)
	if err != nil {
		logrus.Fatalf("Detection failed. Error: {%s}", err.Error())
	}
	logrus.Infof("Detected %d objects.", len(detections))

	out, err := json.MarshalIndent(detections, "", "  ")
	if err != nil {
		logrus.Fatalf("Cannot encode detections. Error: {%s}", err.Error())
	}
	fmt.Println(string(out))
}
