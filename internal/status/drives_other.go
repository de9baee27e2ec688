//go:build !windows

package status

import "context"

func listDrives(ctx context.Context) ([]drive, error) {
	return partitionDrives(ctx)
}
