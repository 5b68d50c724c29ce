// prints the top scene classes for one image
package main

import (
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

	c := cfg.Inference.Classifier
	imagePath := c.ImagePath
	if len(os.Args) > 1 {
		imagePath = os.Args[1]
	}
	if imagePath == "" {
		logrus.Fatal("no image given: pass a path or set inference.classifier.image_path")
	}

	categories, err := inference.LoadCategories(c.CategoriesPath)
	if err != nil {
		logrus.Fatalf("Cannot load categories. Error: {%s}", err.Error())
	}

	session, err := inference.NewSession(cfg.Inference.LibraryPath, c.ModelPath)
	if err != nil {
		logrus.Fatalf("Cannot load model. Error: {%s}", err.Error())
	}
	defer session.Close()

	img, err := inference.LoadImage(imagePath)
	if err != nil {
		logrus.Fatalf("Cannot load image. Error: {%s}", err.Error())
	}

	predictions, err := inference.NewClassifier(session, categories, c.Size, c.TopK).Classify(img)
	if err != nil {
		logrus.Fatalf("Classification failed. Error: {%s}", err.Error())
	}

	for _, p := range predictions {
		fmt.Printf("Class: %s, Score: %.4f\n", p.Label, p.Score)
	}
}
