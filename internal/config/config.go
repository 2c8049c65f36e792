package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnknownPartition is returned when the configured partition is not one
// of the known AWS partitions.
var ErrUnknownPartition = errors.New("unknown partition")

// Partition identifies an AWS account realm with its own region set and
// home region.
type Partition string

// Known AWS partitions.
const (
	PartitionCommercial Partition = "commercial"
	PartitionGovCloud   Partition = "govcloud"
	PartitionChina      Partition = "china"
)

// homeRegions maps each partition to the region used for account-level
// operations such as region enumeration.
var homeRegions = map[Partition]string{
	PartitionCommercial: "us-east-1",
	PartitionGovCloud:   "us-gov-west-1",
	PartitionChina:      "cn-north-1",
}

// HomeRegion returns the partition's main region.
func (p Partition) HomeRegion() (string, error) {
	region, ok := homeRegions[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPartition, string(p))
	}
	return region, nil
}

// Credentials is an optional static AWS credential triple. When unset the
// SDK's default credential chain applies.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// CredentialEndpoint is one parsed --credential flag value. The CLI
// accepts these for compatibility but the upload and rollback paths do
// not consume them.
type CredentialEndpoint struct {
	Region     string
	Endpoint   string
	ARN        string
	ExternalID string
}

// ParseCredentialEndpoint parses a --credential value in the form
// <region>,<endpoint>,<ARN>,<externalId>.
func ParseCredentialEndpoint(s string) (CredentialEndpoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return CredentialEndpoint{}, fmt.Errorf("invalid credential %q: want <region>,<endpoint>,<ARN>,<externalId>", s)
	}
	for _, part := range parts {
		if part == "" {
			return CredentialEndpoint{}, fmt.Errorf("invalid credential %q: empty field", s)
		}
	}
	return CredentialEndpoint{
		Region:     parts[0],
		Endpoint:   parts[1],
		ARN:        parts[2],
		ExternalID: parts[3],
	}, nil
}

// Config describes one scriptup run. All fields are fixed for the
// lifetime of the invocation.
type Config struct {
	// Script is the path of the local file to upload.
	Script string

	// KeyPrefix is the object key prefix; the final key is
	// <KeyPrefix>/<basename of Script>.
	KeyPrefix string

	// Bucket overrides the per-region default bucket name
	// <region>-aws-parallelcluster when non-empty.
	Bucket string

	Partition Partition

	// RegionSpec is either the literal "all" or a comma-separated list
	// of region names.
	RegionSpec string

	// UnsupportedRegions are removed from the region set when RegionSpec
	// is "all". An explicit region list is taken verbatim.
	UnsupportedRegions []string

	DryRun          bool
	Override        bool
	Rollback        bool
	VersionID       string
	CreateIfMissing bool

	Credentials         *Credentials
	CredentialEndpoints []CredentialEndpoint
}

// Validate checks the configuration and returns a detailed error if it is
// unusable. It is called once, before any client is constructed.
func (c *Config) Validate() error {
	if c.Script == "" {
		return fmt.Errorf("script is required")
	}
	if c.RegionSpec == "" {
		return fmt.Errorf("regions is required")
	}
	if _, err := c.Partition.HomeRegion(); err != nil {
		return err
	}
	info, err := os.Stat(c.Script)
	if err != nil {
		return fmt.Errorf("script %s: %w", c.Script, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("script %s is not a regular file", c.Script)
	}
	return nil
}
