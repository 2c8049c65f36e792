// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hpctools/scriptup/internal/config"
	"github.com/hpctools/scriptup/internal/platform/ec2"
	"github.com/hpctools/scriptup/internal/platform/s3"
	"github.com/hpctools/scriptup/internal/uploader"
)

// keyPrefix is the fixed object key prefix for uploaded scripts.
const keyPrefix = "scripts"

// Options carries the raw CLI flag values for one run.
type Options struct {
	Partition          string
	Regions            string
	Credentials        []string
	Script             string
	Bucket             string
	DryRun             bool
	Override           bool
	Rollback           bool
	VersionID          string
	CreateIfMissing    bool
	UnsupportedRegions string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newStorageClient creates the S3 client in the partition home region.
	newStorageClient = func(ctx context.Context, region string, creds *config.Credentials) (uploader.StorageClient, error) {
		var accessKey, secretKey, token string
		if creds != nil {
			accessKey, secretKey, token = creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken
		}
		return s3.NewClient(ctx, region, accessKey, secretKey, token)
	}

	// newRegionLister creates the EC2 client used to expand "all".
	newRegionLister = func(ctx context.Context, region string, creds *config.Credentials) (uploader.RegionLister, error) {
		var accessKey, secretKey, token string
		if creds != nil {
			accessKey, secretKey, token = creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken
		}
		return ec2.NewClient(ctx, region, accessKey, secretKey, token)
	}
)

// buildConfig turns raw flag values into a validated run configuration.
func buildConfig(opts Options) (*config.Config, error) {
	endpoints := make([]config.CredentialEndpoint, 0, len(opts.Credentials))
	for _, raw := range opts.Credentials {
		ep, err := config.ParseCredentialEndpoint(raw)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}

	cfg := &config.Config{
		Script:              opts.Script,
		KeyPrefix:           keyPrefix,
		Bucket:              opts.Bucket,
		Partition:           config.Partition(opts.Partition),
		RegionSpec:          opts.Regions,
		UnsupportedRegions:  strings.Split(opts.UnsupportedRegions, ","),
		DryRun:              opts.DryRun,
		Override:            opts.Override,
		Rollback:            opts.Rollback,
		VersionID:           opts.VersionID,
		CreateIfMissing:     opts.CreateIfMissing,
		CredentialEndpoints: endpoints,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes one upload or rollback invocation.
//
// The region set is resolved once, then each region is processed
// sequentially. A failure in one region is logged and does not stop the
// remaining regions; any failure makes the run exit non-zero.
func Run(ctx context.Context, opts Options) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	if len(cfg.CredentialEndpoints) > 0 {
		log.Printf("Note: %d credential endpoint(s) accepted but not used by upload or rollback",
			len(cfg.CredentialEndpoints))
	}

	// Partition is valid after buildConfig.
	homeRegion, _ := cfg.Partition.HomeRegion()

	storage, err := newStorageClient(ctx, homeRegion, cfg.Credentials)
	if err != nil {
		return err
	}
	lister, err := newRegionLister(ctx, homeRegion, cfg.Credentials)
	if err != nil {
		return err
	}

	up, err := uploader.New(storage, lister, cfg)
	if err != nil {
		return err
	}

	regions, err := up.Regions(ctx)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		log.Println("No regions to process")
		return nil
	}

	var failed []string
	for _, region := range regions {
		var err error
		if cfg.Rollback {
			err = up.Rollback(ctx, region, cfg.VersionID)
		} else {
			_, err = up.Upload(ctx, region)
		}
		if err != nil {
			log.Printf("Region %s failed: %v", region, err)
			failed = append(failed, region)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed in %d of %d region(s): %s", len(failed), len(regions), strings.Join(failed, ", "))
	}
	return nil
}
