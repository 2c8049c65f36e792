// Package uploader implements the per-region upload and rollback logic.
//
// The Uploader resolves the target bucket for each region, optionally
// creating it with versioning enabled, and either pushes the configured
// script or restores a previous object version. It talks to the object
// store through small interfaces so tests can substitute fakes.
package uploader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hpctools/scriptup/internal/config"
	"github.com/hpctools/scriptup/internal/platform/s3"
)

const (
	// allRegions is the region selector that expands to every region in
	// the partition.
	allRegions = "all"

	// bucketSuffix forms the default per-region bucket name.
	bucketSuffix = "-aws-parallelcluster"

	// rollbackVersionWindow is how many versions are requested when
	// looking up the rollback target.
	rollbackVersionWindow = 3
)

// StorageClient is the object-store capability set the uploader needs.
// *s3.Client satisfies it.
type StorageClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	CreateBucket(ctx context.Context, bucket, region, homeRegion string) error
	EnableVersioning(ctx context.Context, bucket string) error
	ListVersions(ctx context.Context, bucket, key string, max int32) ([]s3.ObjectVersion, error)
	GetObjectVersion(ctx context.Context, bucket, key, versionID string) ([]byte, error)
}

// RegionLister enumerates the regions of a partition.
type RegionLister interface {
	Regions(ctx context.Context) ([]string, error)
}

// Outcome reports what an upload did for one region.
type Outcome int

const (
	// OutcomeUploaded means the object was written.
	OutcomeUploaded Outcome = iota
	// OutcomeSkipped means dry-run suppressed the write.
	OutcomeSkipped
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeUploaded:
		return "uploaded"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Uploader performs bucket resolution, uploads, and rollbacks for one
// run configuration.
type Uploader struct {
	storage    StorageClient
	regions    RegionLister
	cfg        *config.Config
	homeRegion string
}

// New constructs an Uploader. The configuration must already be
// validated; the partition lookup is repeated here so a misconfigured
// caller fails at construction rather than mid-run.
func New(storage StorageClient, regions RegionLister, cfg *config.Config) (*Uploader, error) {
	home, err := cfg.Partition.HomeRegion()
	if err != nil {
		return nil, err
	}
	return &Uploader{
		storage:    storage,
		regions:    regions,
		cfg:        cfg,
		homeRegion: home,
	}, nil
}

// Key returns the object key for the configured script.
func (u *Uploader) Key() string {
	return u.cfg.KeyPrefix + "/" + filepath.Base(u.cfg.Script)
}

// Regions resolves the region set for this run. The "all" selector
// expands to the partition's regions minus the unsupported list; an
// explicit comma-separated list is taken verbatim, without subtraction.
// The result is deduplicated and sorted for stable output.
func (u *Uploader) Regions(ctx context.Context) ([]string, error) {
	var candidates []string
	unsupported := make(map[string]struct{})

	if u.cfg.RegionSpec == allRegions {
		all, err := u.regions.Regions(ctx)
		if err != nil {
			return nil, err
		}
		candidates = all
		for _, r := range u.cfg.UnsupportedRegions {
			if r != "" {
				unsupported[r] = struct{}{}
			}
		}
	} else {
		candidates = strings.Split(u.cfg.RegionSpec, ",")
	}

	seen := make(map[string]struct{}, len(candidates))
	var resolved []string
	for _, r := range candidates {
		if r == "" {
			continue
		}
		if _, skip := unsupported[r]; skip {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		resolved = append(resolved, r)
	}
	sort.Strings(resolved)
	return resolved, nil
}

// ResolveBucket returns the bucket name for a region: the configured
// override if set, else <region>-aws-parallelcluster. A missing bucket
// is created (with versioning) when creation is enabled and this is not
// a dry run; otherwise the name is returned as-is and a later upload
// will fail against it.
func (u *Uploader) ResolveBucket(ctx context.Context, region string) (string, error) {
	bucket := u.cfg.Bucket
	if bucket == "" {
		bucket = region + bucketSuffix
	}

	exists, err := u.storage.BucketExists(ctx, bucket)
	if err != nil {
		return "", err
	}
	if exists || !u.cfg.CreateIfMissing {
		return bucket, nil
	}

	if u.cfg.DryRun {
		log.Printf("Dry run, would create bucket s3://%s in %s", bucket, region)
		return bucket, nil
	}

	log.Printf("No bucket, creating s3://%s in %s", bucket, region)
	if err := u.storage.CreateBucket(ctx, bucket, region, u.homeRegion); err != nil {
		return "", err
	}
	if err := u.storage.EnableVersioning(ctx, bucket); err != nil {
		return "", err
	}
	log.Printf("Created bucket %s. Bucket versioning is enabled, please enable bucket logging manually.", bucket)
	return bucket, nil
}

// Upload pushes the configured script to the region's bucket. The write
// happens only when the object is absent, or present with override
// enabled; dry-run suppresses the write either way and reports what
// would have happened.
func (u *Uploader) Upload(ctx context.Context, region string) (Outcome, error) {
	key := u.Key()
	bucket, err := u.ResolveBucket(ctx, region)
	if err != nil {
		return OutcomeSkipped, err
	}

	exists, err := u.storage.ObjectExists(ctx, bucket, key)
	if err != nil {
		return OutcomeSkipped, err
	}
	if exists {
		log.Printf("Warning: %s already exists in bucket %s", key, bucket)
	}

	if u.cfg.DryRun {
		log.Printf("Dry run, not uploading %s to s3://%s/%s (object exists: %t, override: %t)",
			u.cfg.Script, bucket, key, exists, u.cfg.Override)
		return OutcomeSkipped, nil
	}
	if exists && !u.cfg.Override {
		return OutcomeSkipped, fmt.Errorf("not uploading %s to bucket %s: %w", u.cfg.Script, bucket, ErrObjectExists)
	}

	data, err := os.ReadFile(u.cfg.Script)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("failed to read script %s: %w", u.cfg.Script, err)
	}

	if err := u.storage.PutObject(ctx, bucket, key, data); err != nil {
		if s3.IsNoSuchBucket(err) {
			return OutcomeSkipped, fmt.Errorf("bucket s3://%s is not present: %w", bucket, err)
		}
		return OutcomeSkipped, fmt.Errorf("couldn't upload %s to s3://%s/%s: %w", u.cfg.Script, bucket, key, err)
	}

	log.Printf("Successfully uploaded %s to s3://%s/%s", u.cfg.Script, bucket, key)
	return OutcomeUploaded, nil
}

// Rollback restores a previous version of the script object as the
// current version. When versionID is empty the second-most-recent
// version is selected; fewer than two versions is a failure.
func (u *Uploader) Rollback(ctx context.Context, region, versionID string) error {
	key := u.Key()
	bucket, err := u.ResolveBucket(ctx, region)
	if err != nil {
		return err
	}

	if versionID == "" {
		log.Printf("Getting previous version of s3://%s/%s", bucket, key)
		exists, err := u.storage.ObjectExists(ctx, bucket, key)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrNoSuchObject)
		}

		versions, err := u.storage.ListVersions(ctx, bucket, key, rollbackVersionWindow)
		if err != nil {
			return err
		}
		if len(versions) < 2 {
			return fmt.Errorf("object s3://%s/%s has %d version(s): %w", bucket, key, len(versions), ErrNotEnoughVersions)
		}
		versionID = versions[1].VersionID
		log.Printf("Found version %s from %s", versionID, versions[1].LastModified)
	}

	source := fmt.Sprintf("s3://%s/%s#%s", bucket, key, versionID)
	log.Printf("Getting object %s", source)
	data, err := u.storage.GetObjectVersion(ctx, bucket, key, versionID)
	if err != nil {
		if s3.IsNotFound(err) {
			return fmt.Errorf("%s: %w", source, ErrNoSuchObject)
		}
		return err
	}

	if u.cfg.DryRun {
		log.Printf("Dry run, not restoring %s with content:\n%s", source, data)
		return nil
	}

	log.Printf("Uploading object %s", source)
	if err := u.storage.PutObject(ctx, bucket, key, data); err != nil {
		return fmt.Errorf("couldn't restore %s: %w", source, err)
	}
	log.Printf("Successfully restored s3://%s/%s from version %s", bucket, key, versionID)
	return nil
}
