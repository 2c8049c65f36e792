package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeRegion(t *testing.T) {
	tests := []struct {
		partition Partition
		want      string
		wantErr   bool
	}{
		{PartitionCommercial, "us-east-1", false},
		{PartitionGovCloud, "us-gov-west-1", false},
		{PartitionChina, "cn-north-1", false},
		{Partition("sovereign"), "", true},
		{Partition(""), "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.partition), func(t *testing.T) {
			got, err := tt.partition.HomeRegion()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownPartition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCredentialEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CredentialEndpoint
		wantErr bool
	}{
		{
			name:  "valid",
			input: "us-east-1,https://sts.example.com,arn:aws:iam::123456789012:role/upload,external-1",
			want: CredentialEndpoint{
				Region:     "us-east-1",
				Endpoint:   "https://sts.example.com",
				ARN:        "arn:aws:iam::123456789012:role/upload",
				ExternalID: "external-1",
			},
		},
		{name: "too few fields", input: "us-east-1,endpoint,arn", wantErr: true},
		{name: "too many fields", input: "a,b,c,d,e", wantErr: true},
		{name: "empty field", input: "us-east-1,,arn,ext", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCredentialEndpoint(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	script := filepath.Join(t.TempDir(), "setup.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o600))

	valid := func() Config {
		return Config{
			Script:     script,
			KeyPrefix:  "scripts",
			Partition:  PartitionCommercial,
			RegionSpec: "us-east-1,us-west-2",
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing script", func(t *testing.T) {
		cfg := valid()
		cfg.Script = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("script does not exist", func(t *testing.T) {
		cfg := valid()
		cfg.Script = filepath.Join(t.TempDir(), "missing.sh")
		assert.Error(t, cfg.Validate())
	})

	t.Run("script is a directory", func(t *testing.T) {
		cfg := valid()
		cfg.Script = t.TempDir()
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing regions", func(t *testing.T) {
		cfg := valid()
		cfg.RegionSpec = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown partition", func(t *testing.T) {
		cfg := valid()
		cfg.Partition = "onprem"
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownPartition)
	})
}
