package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PublicURL is the stable URL of a rendered clip under base.
func PublicURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/clips/" + name + ".mp4"
}

// LocalPublisher serves clips straight from the clips directory.
type LocalPublisher struct {
	baseURL string
}

func NewLocalPublisher(baseURL string) *LocalPublisher {
	return &LocalPublisher{baseURL: baseURL}
}

func (p *LocalPublisher) Publish(_ context.Context, _ string, name string) (string, error) {
	return PublicURL(p.baseURL, name), nil
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// S3Publisher mirrors rendered clips to an S3-compatible bucket.
type S3Publisher struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *slog.Logger
}

func NewS3Publisher(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3Publisher, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Publisher{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    logger.With("component", "s3_publisher"),
	}, nil
}

func (p *S3Publisher) Publish(ctx context.Context, localPath, name string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open rendered clip: %w", err)
	}
	defer f.Close()

	key := "clips/" + name + ".mp4"
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	p.logger.InfoContext(ctx, "clip uploaded", "key", key)
	return PublicURL(p.publicURL, name), nil
}
