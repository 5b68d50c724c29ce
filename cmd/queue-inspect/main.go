// receives one queue message with all attributes and prints it
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/pkg/awsClient"
	"github.com/ds124wfegd/visionpipe/internal/pkg/logger"
	"github.com/ds124wfegd/visionpipe/internal/pkg/queue"
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

	resp, err := queue.InspectSQS(ctx, clients.SQS, cfg.Queue.URL)
	if err != nil {
		logrus.Fatalf("Cannot receive message. Error: {%s}", err.Error())
	}

	out, err := json.MarshalIndent(struct {
		Messages []types.Message `json:"Messages"`
	}{resp.Messages}, "", "  ")
	if err != nil {
		logrus.Fatalf("Cannot encode response. Error: {%s}", err.Error())
	}
	fmt.Println(string(out))
}
