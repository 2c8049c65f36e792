// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/hpctools/scriptup/cmd/scriptup/handlers"
)

// Root returns the root command for the scriptup CLI.
//
// Required flags:
//
//	--partition: commercial | govcloud | china
//	--regions:   comma-separated region list, or "all"
//	--script:    local script file to upload
//
// Examples:
//
//	# Upload to two regions
//	scriptup --partition commercial --regions us-east-1,us-west-2 --script foo.sh
//
//	# Upload everywhere, creating missing buckets
//	scriptup --partition commercial --regions all --script foo.sh --createifnobucket
//
//	# Roll back to the previous version
//	scriptup --partition commercial --regions us-east-1 --script foo.sh --rollback
func Root() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "scriptup",
		Short: "Upload cluster scripts to per-region S3 buckets",
		Long: `Upload a local script to S3 buckets across a set of AWS regions.

The target bucket defaults to <region>-aws-parallelcluster and the object
key is scripts/<script basename>. Existing objects are only overwritten
with --override. With --rollback the previous object version is restored
as the current version instead of uploading.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Partition, "partition", "", "Partition to upload into: commercial | govcloud | china")
	cmd.Flags().StringVar(&opts.Regions, "regions", "", `Comma-separated list of regions, or "all"`)
	cmd.Flags().StringArrayVar(&opts.Credentials, "credential", nil,
		"STS credential endpoint as <region>,<endpoint>,<ARN>,<externalId>; may be repeated")
	cmd.Flags().StringVar(&opts.Script, "script", "", "Script to upload")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "",
		"Bucket to upload to, defaults to <region>-aws-parallelcluster")
	cmd.Flags().BoolVar(&opts.DryRun, "dryrun", false, "Don't push anything to S3, just report")
	cmd.Flags().BoolVar(&opts.Override, "override", false, "Overwrite an existing S3 object")
	cmd.Flags().BoolVar(&opts.Rollback, "rollback", false, "Roll back to the previous version")
	cmd.Flags().StringVar(&opts.VersionID, "versionid", "", "Version id to roll back to (optional)")
	cmd.Flags().BoolVar(&opts.CreateIfMissing, "createifnobucket", false, "Create the S3 bucket if it does not exist")
	cmd.Flags().StringVar(&opts.UnsupportedRegions, "unsupportedregions", "",
		`Regions excluded from the "all" selector, comma-separated`)

	_ = cmd.MarkFlagRequired("partition")
	_ = cmd.MarkFlagRequired("regions")
	_ = cmd.MarkFlagRequired("script")

	cmd.AddCommand(Version())

	return cmd
}
