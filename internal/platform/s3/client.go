package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// createWaitTimeout bounds the bucket-exists waiter after CreateBucket.
const createWaitTimeout = 2 * time.Minute

// Client wraps the AWS S3 client.
type Client struct {
	s3 *s3.Client
}

// ObjectVersion is one entry from a ListObjectVersions response.
type ObjectVersion struct {
	VersionID    string
	LastModified time.Time
	IsLatest     bool
}

// NewClient creates an S3 client in the given region. When accessKey is
// non-empty the static credential triple is used; otherwise the SDK's
// default credential chain applies.
func NewClient(ctx context.Context, region, accessKey, secretKey, sessionToken string) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{s3: s3.NewFromConfig(cfg)}, nil
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	return true, nil
}

// ObjectExists checks if an object exists in a bucket.
func (c *Client) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// PutObject uploads an object with a public-read ACL.
func (c *Client) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucket, err)
	}
	return nil
}

// CreateBucket creates a bucket in the given region. The location
// constraint must be omitted in the partition's home region; elsewhere it
// names the target region. In the home region the call waits until the
// bucket is visible before returning.
func (c *Client) CreateBucket(ctx context.Context, bucket, region, homeRegion string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if region != homeRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	_, err := c.s3.CreateBucket(ctx, input)
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	if region == homeRegion {
		waiter := s3.NewBucketExistsWaiter(c.s3)
		if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}, createWaitTimeout); err != nil {
			return fmt.Errorf("failed waiting for bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// EnableVersioning turns on object versioning for a bucket.
func (c *Client) EnableVersioning(ctx context.Context, bucket string) error {
	_, err := c.s3.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(bucket),
		VersioningConfiguration: &types.VersioningConfiguration{
			Status: types.BucketVersioningStatusEnabled,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enable versioning on bucket %s: %w", bucket, err)
	}
	return nil
}

// ListVersions returns up to max versions of the given key, most recent
// first, as S3 reports them.
func (c *Client) ListVersions(ctx context.Context, bucket, key string, max int32) ([]ObjectVersion, error) {
	result, err := c.s3.ListObjectVersions(ctx, &s3.ListObjectVersionsInput{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(key),
		MaxKeys: aws.Int32(max),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of %s/%s: %w", bucket, key, err)
	}

	versions := make([]ObjectVersion, 0, len(result.Versions))
	for _, v := range result.Versions {
		versions = append(versions, ObjectVersion{
			VersionID:    aws.ToString(v.VersionId),
			LastModified: aws.ToTime(v.LastModified),
			IsLatest:     aws.ToBool(v.IsLatest),
		})
	}
	return versions, nil
}

// GetObjectVersion downloads a specific version of an object.
func (c *Client) GetObjectVersion(ctx context.Context, bucket, key, versionID string) ([]byte, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket:    aws.String(bucket),
		Key:       aws.String(key),
		VersionId: aws.String(versionID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s version %s: %w", bucket, key, versionID, err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return buf.Bytes(), nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket
// exists and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
	}

	return false
}

// IsNotFound checks if the error is a not-found error from a head
// request. Not-found is expected control flow for existence checks, not
// a failure.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	if IsNoSuchBucket(err) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey" || code == "404"
	}

	return false
}

// IsNoSuchBucket checks if the error reports a missing bucket. Upload
// surfaces this case with a distinct message.
func IsNoSuchBucket(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchBucket"
	}

	return false
}
