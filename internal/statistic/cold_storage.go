package statistic

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"credd/internal/providers"
	"credd/internal/structures"
)

const (
	DefaultSnapshotKeep = 7
	snapshotSuffix      = ".snap.zst"
)

// SnapshotUploader ships a finished snapshot off the host.
type SnapshotUploader interface {
	Upload(ctx context.Context, data []byte) error
}

type objectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ColdStorage keeps the newest snapshots in an S3 bucket under a common prefix.
// Older objects beyond keep are deleted after every upload.
type ColdStorage struct {
	client objectStore
	bucket string
	prefix string
	keep   int
	logger providers.Logger
	now    func() time.Time
}

type noopUploader struct{}

func (noopUploader) Upload(context.Context, []byte) error { return nil }

// NewSnapshotUploader returns the S3 uploader when it is enabled and a no-op
// otherwise.
func NewSnapshotUploader(conf *structures.Config, logger providers.Logger) (SnapshotUploader, error) {
	s3conf := conf.Persistence.S3
	if !conf.Persistence.Enabled || !s3conf.Enabled {
		return noopUploader{}, nil
	}
	if s3conf.Bucket == "" {
		return nil, fmt.Errorf("persistence.s3.bucket is required when s3 upload is enabled")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s3conf.Region)}
	if s3conf.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3conf.AccessKey, s3conf.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3conf.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newColdStorage(client, s3conf, logger), nil
}

func newColdStorage(client objectStore, conf structures.S3Config, logger providers.Logger) *ColdStorage {
	keep := conf.Keep
	if keep <= 0 {
		keep = DefaultSnapshotKeep
	}
	return &ColdStorage{
		client: client,
		bucket: conf.Bucket,
		prefix: conf.Prefix,
		keep:   keep,
		logger: logger,
		now:    time.Now,
	}
}

func (cs *ColdStorage) Upload(ctx context.Context, data []byte) error {
	key := cs.objectKey(cs.now())
	_, err := cs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cs.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/zstd"),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot %s: %w", key, err)
	}
	cs.logger.Infof(providers.TypeApp, "Uploaded snapshot s3://%s/%s (%d bytes)", cs.bucket, key, len(data))

	return cs.rotate(ctx)
}

// rotate deletes every snapshot under the prefix except the newest keep.
func (cs *ColdStorage) rotate(ctx context.Context) error {
	var objects []types.Object
	paginator := s3.NewListObjectsV2Paginator(cs.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(cs.bucket),
		Prefix: aws.String(cs.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}
		for _, obj := range page.Contents {
			if strings.HasSuffix(aws.ToString(obj.Key), snapshotSuffix) {
				objects = append(objects, obj)
			}
		}
	}

	if len(objects) <= cs.keep {
		return nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return aws.ToString(objects[i].Key) > aws.ToString(objects[j].Key)
	})

	for _, obj := range objects[cs.keep:] {
		_, err := cs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cs.bucket),
			Key:    obj.Key,
		})
		if err != nil {
			return fmt.Errorf("delete snapshot %s: %w", aws.ToString(obj.Key), err)
		}
		cs.logger.Debugf(providers.TypeApp, "Rotated out snapshot %s", aws.ToString(obj.Key))
	}
	return nil
}

// objectKey sorts lexically in time order.
func (cs *ColdStorage) objectKey(t time.Time) string {
	return cs.prefix + "credd-" + t.UTC().Format("20060102T150405.000Z") + snapshotSuffix
}
