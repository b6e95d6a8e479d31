package spendwise

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spendwise/spendwise-e2e/internal/errs"
)

// Exporter writes transaction CSV snapshots to an S3 bucket.
type Exporter struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewExporter builds an exporter against an S3-compatible endpoint
// (gofakes3 in tests). publicURL is the bucket's browsable base URL.
func NewExporter(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string) (*Exporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "load aws config", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &Exporter{
		client:    client,
		bucket:    bucket,
		publicURL: endpoint + "/" + bucket,
	}, nil
}

// NewExporterFromClient wraps an existing S3 client (test seams).
func NewExporterFromClient(client *s3.Client, bucket, publicURL string) *Exporter {
	return &Exporter{client: client, bucket: bucket, publicURL: publicURL}
}

// ExportCSV uploads a CSV of all transactions and returns the object URL.
func (e *Exporter) ExportCSV(ctx context.Context, txns []Transaction) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "wallet", "category", "amount", "note", "created_at"}); err != nil {
		return "", errs.Wrap(errs.Internal, "write csv header", err)
	}
	for _, txn := range txns {
		record := []string{
			txn.ID,
			txn.WalletName,
			txn.CategoryName,
			strconv.FormatInt(txn.AmountCents, 10),
			txn.Note,
			txn.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", errs.Wrap(errs.Internal, "write csv record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errs.Wrap(errs.Internal, "flush csv", err)
	}

	key := fmt.Sprintf("exports/transactions-%s.csv", time.Now().UTC().Format("20060102-150405.000"))
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", errs.Wrap(errs.Internal, "upload csv export", err)
	}
	return e.publicURL + "/" + key, nil
}
