package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader looks at; viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
	for _, name := range []string{"QUEUE_URL", "QUEUE_BACKEND", "STORE_BACKEND", "PIPELINE_ACK_MODE", "QUEUE_WAIT_TIME", "REKOGNITION_MAX_LABELS"} {
		t.Setenv(name, "")
	}
}

func load(t *testing.T, dir string) *Config {
	t.Helper()
	v, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)

	cfg := load(t, t.TempDir())

	assert.Equal(t, "sqs", cfg.Queue.Backend)
	assert.Equal(t, 10*time.Second, cfg.Queue.WaitTime)
	assert.Equal(t, "s3", cfg.ObjectStore.Backend)
	assert.Equal(t, "firestore", cfg.Store.Backend)
	assert.Equal(t, "rekognition_results", cfg.Store.Firestore.Collection)
	assert.Equal(t, int32(10), cfg.Rekognition.MaxLabels)
	assert.Equal(t, float32(50), cfg.Rekognition.MinConfidence)
	assert.Equal(t, "before", cfg.Pipeline.AckMode)
	assert.Equal(t, "mp4", cfg.Transcribe.MediaFormat)
	assert.Equal(t, "ja-JP", cfg.Transcribe.LanguageCode)
	assert.Equal(t, 224, cfg.Inference.Classifier.Size)
	assert.Equal(t, 5, cfg.Inference.Classifier.TopK)
	assert.Equal(t, 300, cfg.Inference.SSD.Size)
	assert.Equal(t, 320, cfg.Inference.Detector.Size)
	assert.InDelta(t, 0.5, cfg.Inference.Detector.Confidence, 1e-6)
	assert.Equal(t, []string{"localhost:9094"}, cfg.Queue.Kafka.Brokers)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yaml := `
queue:
  backend: kafka
  wait_time: 3s
  kafka:
    brokers: [broker-1:9092, broker-2:9092]
    topic: uploads
store:
  backend: redis
  redis:
    host: cache
    port: 6380
pipeline:
  ack_mode: after
rekognition:
  max_labels: 25
  min_confidence: 70.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg := load(t, dir)

	assert.Equal(t, "kafka", cfg.Queue.Backend)
	assert.Equal(t, 3*time.Second, cfg.Queue.WaitTime)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Queue.Kafka.Brokers)
	assert.Equal(t, "uploads", cfg.Queue.Kafka.Topic)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "cache", cfg.Store.Redis.Host)
	assert.Equal(t, 6380, cfg.Store.Redis.Port)
	assert.Equal(t, "after", cfg.Pipeline.AckMode)
	assert.Equal(t, int32(25), cfg.Rekognition.MaxLabels)
	assert.InDelta(t, 70.5, cfg.Rekognition.MinConfidence, 1e-6)
	// untouched keys keep their defaults
	assert.Equal(t, "s3", cfg.ObjectStore.Backend)
}

func TestLegacyEnvironmentNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("SQS_QUEUE_URL", "https://sqs.us-west-2.amazonaws.com/123456789012/images")
	t.Setenv("FIRESTORE_COLLECTION", "labels")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/secrets/firebase.json")

	cfg := load(t, t.TempDir())

	assert.Equal(t, "AKIDEXAMPLE", cfg.AWS.AccessKeyID)
	assert.Equal(t, "secret", cfg.AWS.SecretAccessKey)
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "https://sqs.us-west-2.amazonaws.com/123456789012/images", cfg.Queue.URL)
	assert.Equal(t, "labels", cfg.Store.Firestore.Collection)
	assert.Equal(t, "/secrets/firebase.json", cfg.Store.Firestore.CredentialsPath)
}

func TestEnvironmentBeatsConfigFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("pipeline:\n  ack_mode: before\nqueue:\n  wait_time: 5s\n"), 0o644))
	t.Setenv("PIPELINE_ACK_MODE", "after")
	t.Setenv("QUEUE_WAIT_TIME", "20s")
	t.Setenv("REKOGNITION_MAX_LABELS", "3")

	cfg := load(t, dir)

	assert.Equal(t, "after", cfg.Pipeline.AckMode)
	assert.Equal(t, 20*time.Second, cfg.Queue.WaitTime)
	assert.Equal(t, int32(3), cfg.Rekognition.MaxLabels)
}

func TestMalformedConfigFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("queue: [unclosed"), 0o644))

	_, err := LoadConfigFrom(dir)
	assert.Error(t, err)
}
