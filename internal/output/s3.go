package output

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vivek2589/bangalore-graph-package/internal/export"
	"github.com/vivek2589/bangalore-graph-package/internal/models"
)

const defaultObjectPath = "bangalore_graph_edges.csv"

// S3Sink uploads the edge list as a single CSV object.
type S3Sink struct {
	client     *s3.Client
	bucket     string
	objectPath string
}

func NewS3Sink(ctx context.Context, cfg models.CloudStorageConfig) (*S3Sink, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	objectPath := cfg.ObjectPath
	if objectPath == "" {
		objectPath = defaultObjectPath
	}
	return &S3Sink{
		client:     s3.NewFromConfig(awsCfg),
		bucket:     cfg.BucketName,
		objectPath: objectPath,
	}, nil
}

func (w *S3Sink) Publish(ctx context.Context, rows []export.EdgeRow) error {
	var buf bytes.Buffer
	if err := export.WriteEdgeCSV(&buf, rows); err != nil {
		return fmt.Errorf("encode edge list: %w", err)
	}

	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.objectPath),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("unable to upload edge list to S3: %w", err)
	}
	return nil
}

func (w *S3Sink) Close() error { return nil }
