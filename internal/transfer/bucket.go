package transfer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// OpenBucket opens the download destination. A value containing "://" is
// treated as a gocloud bucket URL (file://, mem://, s3://, gs://); anything
// else is a local directory that is created when missing.
func OpenBucket(ctx context.Context, dest string) (*blob.Bucket, error) {
	if strings.Contains(dest, "://") {
		bucket, err := blob.OpenBucket(ctx, dest)
		if err != nil {
			return nil, fmt.Errorf("open bucket %s: %w", dest, err)
		}
		return bucket, nil
	}

	dir, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %s: %w", dest, err)
	}
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", dir, err)
	}
	return bucket, nil
}
