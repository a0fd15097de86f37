package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store writes documents to an S3 bucket or an S3-compatible endpoint.
type Store struct {
	client  api
	bucket  string
	prefix  string
	baseURL string
	clock   *blobstore.Clock
	log     *slog.Logger
}

// New builds an S3 client from cfg. Static credentials are used when set;
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		baseURL: publicBaseURL(cfg),
		clock:   blobstore.NewClock(),
		log:     logger.With("adapter", "s3"),
	}, nil
}

// publicBaseURL is the URL prefix under which stored keys are reachable.
func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL
	case cfg.Endpoint != "" && cfg.UsePathStyle:
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	case cfg.Endpoint != "":
		return cfg.Endpoint
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Store uploads payload under namespace and returns its public URL.
func (s *Store) Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error) {
	key := s.clock.Key(joinPrefix(s.prefix, namespace), suggestedName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
		ContentType:   aws.String(blobstore.ContentType(payload, suggestedName)),
	})
	if err != nil {
		return "", fmt.Errorf("s3.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	s.log.DebugContext(ctx, "object stored", slog.String("key", key), slog.Int("bytes", len(payload)))

	return blobstore.JoinURL(s.baseURL, key), nil
}

func joinPrefix(prefix, namespace string) string {
	if prefix == "" {
		return namespace
	}
	return prefix + "/" + strings.Trim(namespace, "/")
}

// Ping checks that the bucket exists and is reachable with the configured
// credentials.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("s3.Ping %s: %w: %w", s.bucket, domain.ErrStoreUnavailable, err)
	}
	return nil
}
