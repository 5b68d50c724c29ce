// Package transcribe starts asynchronous speech-to-text jobs.
package transcribe

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Client interface {
	StartTranscriptionJob(
		ctx context.Context,
		params *transcribe.StartTranscriptionJobInput,
		optFns ...func(*transcribe.Options),
	) (*transcribe.StartTranscriptionJobOutput, error)
}

type Launcher struct {
	client Client
}

func NewLauncher(client Client) *Launcher {
	return &Launcher{client: client}
}

// JobFromConfig fills the job name with transcribe-<uuid> when none is configured.
func JobFromConfig(cfg config.TranscribeConfig) entity.TranscriptionJob {
	name := cfg.JobName
	if name == "" {
		name = "transcribe-" + uuid.NewString()
	}
	return entity.TranscriptionJob{
		Name:         name,
		MediaURI:     cfg.MediaURI,
		MediaFormat:  cfg.MediaFormat,
		LanguageCode: cfg.LanguageCode,
		OutputBucket: cfg.OutputBucket,
	}
}

// Start submits the job and returns right away; completion is not awaited.
func (l *Launcher) Start(ctx context.Context, job entity.TranscriptionJob) (*entity.TranscriptionStatus, error) {
	if job.MediaURI == "" {
		return nil, entity.ErrMediaURIRequired
	}

	input := &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(job.Name),
		Media:                &types.Media{MediaFileUri: aws.String(job.MediaURI)},
		MediaFormat:          types.MediaFormat(job.MediaFormat),
		LanguageCode:         types.LanguageCode(job.LanguageCode),
	}
	if job.OutputBucket != "" {
		input.OutputBucketName = aws.String(job.OutputBucket)
	}

	out, err := l.client.StartTranscriptionJob(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("start transcription job %s: %w", job.Name, err)
	}

	status := &entity.TranscriptionStatus{Name: job.Name}
	if out.TranscriptionJob != nil {
		status.Name = aws.ToString(out.TranscriptionJob.TranscriptionJobName)
		status.Status = string(out.TranscriptionJob.TranscriptionJobStatus)
	}

	logrus.WithFields(logrus.Fields{
		"job":    status.Name,
		"media":  job.MediaURI,
		"status": status.Status,
	}).Info("Transcription job started")

	return status, nil
}
