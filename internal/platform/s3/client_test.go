package s3

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"typed NotFound", &types.NotFound{}, true},
		{"typed NoSuchKey", &types.NoSuchKey{}, true},
		{"typed NoSuchBucket", &types.NoSuchBucket{}, true},
		{"api error NotFound", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"api error NoSuchKey", &smithy.GenericAPIError{Code: "NoSuchKey"}, true},
		{"api error 404", &smithy.GenericAPIError{Code: "404"}, true},
		{"api error AccessDenied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"wrapped typed NotFound", fmt.Errorf("head: %w", &types.NotFound{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNoSuchBucket(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"typed NoSuchBucket", &types.NoSuchBucket{}, true},
		{"api error NoSuchBucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, true},
		{"api error NotFound", &smithy.GenericAPIError{Code: "NotFound"}, false},
		{"wrapped typed NoSuchBucket", fmt.Errorf("put: %w", &types.NoSuchBucket{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNoSuchBucket(tt.err); got != tt.want {
				t.Errorf("IsNoSuchBucket() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBucketAlreadyOwnedByYou(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"typed BucketAlreadyOwnedByYou", &types.BucketAlreadyOwnedByYou{}, true},
		{"api error BucketAlreadyOwnedByYou", &smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou"}, true},
		{"api error BucketAlreadyExists", &smithy.GenericAPIError{Code: "BucketAlreadyExists"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBucketAlreadyOwnedByYou(tt.err); got != tt.want {
				t.Errorf("isBucketAlreadyOwnedByYou() = %v, want %v", got, tt.want)
			}
		})
	}
}
