// Package ec2 provides region enumeration for an AWS partition.
//
// The uploader only needs one EC2 operation: DescribeRegions, issued
// against the partition's home region to expand the "all" region
// selector.
package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// Client wraps the AWS EC2 client for region enumeration.
type Client struct {
	ec2 *ec2.Client
}

// NewClient creates an EC2 client in the given region. When accessKey is
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

	return &Client{ec2: ec2.NewFromConfig(cfg)}, nil
}

// Regions returns the names of the regions enabled for the account in
// the client's partition.
func (c *Client) Regions(ctx context.Context) ([]string, error) {
	result, err := c.ec2.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]string, 0, len(result.Regions))
	for _, r := range result.Regions {
		regions = append(regions, aws.ToString(r.RegionName))
	}
	return regions, nil
}
