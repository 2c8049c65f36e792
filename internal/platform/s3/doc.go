// Package s3 provides the Amazon S3 client used by the uploader.
//
// It wraps the AWS SDK with the small operation set the tool needs:
// bucket and object existence checks, public-read uploads, versioned
// bucket creation, object-version listing, and fetching a specific
// object version for rollback.
package s3
