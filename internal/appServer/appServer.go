// launching the label pipeline, result stores and the http server
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/database"
	"github.com/ds124wfegd/visionpipe/internal/pkg/awsClient"
	"github.com/ds124wfegd/visionpipe/internal/pkg/metrics"
	"github.com/ds124wfegd/visionpipe/internal/pkg/queue"
	"github.com/ds124wfegd/visionpipe/internal/pkg/rekognition"
	"github.com/ds124wfegd/visionpipe/internal/pkg/storage"
	"github.com/ds124wfegd/visionpipe/internal/service"
	"github.com/ds124wfegd/visionpipe/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

func NewHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}}
}

func (s *Server) Run() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer runs the labeler until SIGINT/SIGTERM or until the pipeline fails.
func NewServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ackMode, err := service.ParseAckMode(cfg.Pipeline.AckMode)
	if err != nil {
		return err
	}

	clients, err := awsClient.New(ctx, cfg.AWS)
	if err != nil {
		return err
	}

	repo, err := database.NewResultRepository(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("result store: %w", err)
	}
	defer repo.Close()

	objects, err := storage.New(cfg.ObjectStore, clients.S3)
	if err != nil {
		return fmt.Errorf("object store: %w", err)
	}

	q, err := queue.New(ctx, cfg.Queue, clients.SQS)
	if err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	defer q.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics := metrics.NewPipeline(registry)

	labeler := rekognition.NewLabeler(clients.Rekognition, cfg.Rekognition.MaxLabels, cfg.Rekognition.MinConfidence)
	labelService := service.NewLabelService(labeler, repo)
	pipeline := service.NewPipeline(q, objects, labelService, ackMode, pipelineMetrics)
	resultHandler := transport.NewResultHandler(labelService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := NewHTTPServer(cfg, transport.InitRoutes(resultHandler, registry, cfg.Server.Timeout))
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	pipelineErr := make(chan error, 1)
	go func() {
		pipelineErr <- pipeline.Run(ctx)
	}()

	logrus.Print("App Started")

	var runErr error
	pipelineDone := false
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("error occured while running http server: %w", err)
		}
	case err := <-pipelineErr:
		pipelineDone = true
		runErr = err
	}

	logrus.Print("App Shutting Down")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

	if !pipelineDone {
		select {
		case err := <-pipelineErr:
			if runErr == nil {
				runErr = err
			}
		case <-shutdownCtx.Done():
			logrus.Error("label pipeline did not stop in time")
		}
	}

	return runErr
}
