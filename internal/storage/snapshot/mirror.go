// Package snapshot mirrors the stats table to S3-compatible object storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gosimple/slug"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// Config holds the bucket settings
type Config struct {
	Bucket string
	// Prefix is prepended to object keys
	Prefix string
	// Name identifies the snapshot; it is slugified into the object key
	Name            string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// DefaultConfig returns default snapshot settings
func DefaultConfig() Config {
	return Config{
		Prefix: "elitezero",
		Name:   "Stats Table",
		Region: "auto",
	}
}

// Key returns the object key of the snapshot
func (c Config) Key() string {
	return path.Join(c.Prefix, "snapshots", slug.Make(c.Name)+".json")
}

// Client is the part of the S3 API the mirror uses
type Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewClient builds an S3 client from static credentials
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}), nil
}

// Mirror wraps a primary stats store and copies every save to a bucket.
// The bucket copy restores an empty primary on load.
type Mirror struct {
	primary storage.StatsStore
	client  Client
	bucket  string
	key     string
	logger  *slog.Logger
}

// NewMirror creates a Mirror
func NewMirror(primary storage.StatsStore, client Client, cfg Config, logger *slog.Logger) *Mirror {
	return &Mirror{
		primary: primary,
		client:  client,
		bucket:  cfg.Bucket,
		key:     cfg.Key(),
		logger:  logger.With(slog.String("component", "snapshot-mirror")),
	}
}

// Ensure Mirror implements the interface
var _ storage.StatsStore = (*Mirror)(nil)

func (m *Mirror) LoadStats(ctx context.Context) (*model.StatsTable, error) {
	table, err := m.primary.LoadStats(ctx)
	if err != nil {
		return nil, err
	}
	if len(table.Users) > 0 {
		return table, nil
	}

	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(m.key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return table, nil
		}
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	restored := model.NewStatsTable()
	if err := json.Unmarshal(data, restored); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if restored.Users == nil {
		restored.Users = make(map[model.PlayerID]*model.UserStats)
	}

	m.logger.Info("stats restored from snapshot",
		slog.String("key", m.key),
		slog.Int("users", len(restored.Users)),
	)
	return restored, nil
}

// SaveStats writes the primary first. A failed upload is logged and does
// not fail the save.
func (m *Mirror) SaveStats(ctx context.Context, table *model.StatsTable) error {
	if err := m.primary.SaveStats(ctx, table); err != nil {
		return err
	}

	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(m.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		m.logger.Warn("snapshot upload failed",
			slog.String("key", m.key),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
