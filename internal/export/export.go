// Package export uploads action results to S3 as JSON snapshots.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/noelruault/lazyops/internal/logger"
)

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("export disabled: no bucket configured")

const timestampLayout = "20060102T150405Z"

// Snapshot is the document written for one action result.
type Snapshot struct {
	Panel      string    `json:"panel"`
	Action     string    `json:"action"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Path       string    `json:"path,omitempty"`
	Response   any       `json:"response,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
}

// Exporter writes snapshots to a bucket.
type Exporter struct {
	bucket   string
	prefix   string
	uploader Uploader
	now      func() time.Time
	log      *logger.Logger
}

// New creates an exporter. A nil uploader with a configured bucket is built
// from the AWS settings.
func New(ctx context.Context, s Settings, uploader Uploader, log *logger.Logger) (*Exporter, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if log == nil {
		log = logger.Nop()
	}
	if uploader == nil {
		u, err := NewUploader(ctx, s)
		if err != nil {
			return nil, err
		}
		uploader = u
	}
	return &Exporter{
		bucket:   s.Bucket,
		prefix:   strings.Trim(s.Prefix, "/"),
		uploader: uploader,
		now:      time.Now,
		log:      log.Named("export"),
	}, nil
}

// Key returns the object key for a snapshot taken at t.
func (e *Exporter) Key(panel, action string, t time.Time) string {
	name := t.UTC().Format(timestampLayout) + ".json"
	if e.prefix == "" {
		return path.Join(panel, action, name)
	}
	return path.Join(e.prefix, panel, action, name)
}

// Export uploads the snapshot and returns its s3:// location.
func (e *Exporter) Export(ctx context.Context, snap Snapshot) (string, error) {
	if snap.Panel == "" || snap.Action == "" {
		return "", errors.New("snapshot needs a panel and an action")
	}
	if snap.ExportedAt.IsZero() {
		snap.ExportedAt = e.now()
	}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := e.Key(snap.Panel, snap.Action, snap.ExportedAt)
	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		e.log.Warn("export failed", "bucket", e.bucket, "key", key, "error", err)
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	location := "s3://" + e.bucket + "/" + key
	e.log.Info("exported snapshot", "location", location)
	return location, nil
}
