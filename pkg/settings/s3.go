package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"chime-frame/pkg/logger"
)

// S3Mirror uploads each saved snapshot to s3://bucket/prefix/<device id>.json
// so a fleet of devices can be inspected from one place.
type S3Mirror struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Mirror builds a mirror with credentials from AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY. An empty region falls back to AWS_DEFAULT_REGION.
func NewS3Mirror(bucket, prefix, region string) (*S3Mirror, error) {
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, errors.New("missing one or more required settings: bucket, AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	return NewS3MirrorWithClient(s3.New(sess), bucket, prefix), nil
}

// NewS3MirrorWithClient uses an existing S3 client.
func NewS3MirrorWithClient(client s3iface.S3API, bucket, prefix string) *S3Mirror {
	return &S3Mirror{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key used for a device.
func (m *S3Mirror) Key(deviceID string) string {
	return path.Join(m.prefix, deviceID+".json")
}

func (m *S3Mirror) Push(ctx context.Context, s Settings) error {
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	key := m.Key(s.DeviceID)
	_, err = m.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return err
	}

	logger.Debug("Settings mirrored", "bucket", m.bucket, "key", key)
	return nil
}
