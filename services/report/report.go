// Package report generates exports of Launchpad hiring data: hire-request
// CSV dumps shipped to object storage and plain-text leaderboard digests.
package report

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/zstd"

	"launchpad/pkg/db"
	"launchpad/pkg/mulearn"
	gos3 "launchpad/pkg/s3"
)

const presignTTL = 15 * time.Minute

// ExportConfig configures a hire-request export run.
type ExportConfig struct {
	Token    string
	Status   string
	Bucket   string
	Upstream *mulearn.Client
	S3       *gos3.Client

	// Pool is optional; when set, the export is recorded in report_exports.
	Pool *pgxpool.Pool

	Now    func() time.Time
	Stdout io.Writer
}

// ExportResult describes a completed export.
type ExportResult struct {
	Key    string
	URL    string
	Rows   int
	SHA256 string
}

var csvHeader = []string{
	"application_id", "status", "job_id", "job_title",
	"candidate_id", "candidate_name", "candidate_email",
	"invited_at", "applied_at", "interview_date", "interview_time",
}

// HireRequestRows flattens the listing into CSV records, header first.
func HireRequestRows(requests []mulearn.HireRequest) [][]string {
	rows := make([][]string, 0, len(requests)+1)
	rows = append(rows, csvHeader)
	for _, req := range requests {
		var interviewDate, interviewTime string
		if req.Interview != nil {
			interviewDate = req.Interview.Date
			interviewTime = req.Interview.Time
		}
		rows = append(rows, []string{
			req.ApplicationID,
			req.Status,
			req.Job.ID,
			req.Job.Title,
			req.Student.ID,
			req.Student.FullName,
			req.Student.Email,
			req.Timeline.InvitedAt,
			req.Timeline.AppliedAt,
			interviewDate,
			interviewTime,
		})
	}
	return rows
}

// ExportHireRequests fetches the hire-request listing, writes it as a
// zstd-compressed CSV to object storage, and returns a presigned download URL.
func ExportHireRequests(ctx context.Context, cfg ExportConfig) (*ExportResult, error) {
	if cfg.Upstream == nil {
		return nil, errors.New("upstream client is required")
	}
	if cfg.S3 == nil {
		return nil, errors.New("s3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if cfg.Token == "" {
		return nil, errors.New("token is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	requests, err := cfg.Upstream.ListHireRequests(ctx, cfg.Token, cfg.Status)
	if err != nil {
		return nil, fmt.Errorf("list hire requests: %w", err)
	}

	var buf bytes.Buffer
	encoder, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	writer := csv.NewWriter(encoder)
	rows := HireRequestRows(requests)
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close zstd writer: %w", err)
	}

	digest := sha256.Sum256(buf.Bytes())
	sha := hex.EncodeToString(digest[:])

	key := fmt.Sprintf("reports/hire-requests-%s.csv.zst", cfg.Now().UTC().Format("20060102-150405"))
	size := int64(buf.Len())
	if err := cfg.S3.PutObject(ctx, cfg.Bucket, key, "application/zstd", bytes.NewReader(buf.Bytes()), size, sha); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := cfg.S3.PresignGet(ctx, cfg.Bucket, key, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	if cfg.Pool != nil {
		if err := recordExport(ctx, cfg.Pool, key, sha, len(requests), cfg.Status); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(cfg.Stdout, "exported %d hire requests to s3://%s/%s\n", len(requests), cfg.Bucket, key)
	return &ExportResult{Key: key, URL: url, Rows: len(requests), SHA256: sha}, nil
}

func recordExport(ctx context.Context, pool *pgxpool.Pool, key, sha string, rows int, status string) error {
	const query = `
		INSERT INTO report_exports (id, kind, object_key, sha256, meta)
		VALUES ($1, 'hire-requests', $2, $3, jsonb_build_object('rows', $4::int, 'status_filter', $5::text))`

	if _, err := db.Exec(ctx, pool, query, uuid.New(), key, sha, rows, status); err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}
