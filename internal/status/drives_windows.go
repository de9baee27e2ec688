package status

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

// win32LogicalDisk mirrors the Win32_LogicalDisk properties we select.
type win32LogicalDisk struct {
	DeviceID   string
	VolumeName string
}

// listDrives returns local fixed disks (DriveType 3) through WMI, falling
// back to partition enumeration when WMI is unavailable.
func listDrives(ctx context.Context) ([]drive, error) {
	var disks []win32LogicalDisk
	err := wmi.Query("SELECT DeviceID, VolumeName FROM Win32_LogicalDisk WHERE DriveType = 3", &disks)
	if err != nil || len(disks) == 0 {
		return partitionDrives(ctx)
	}

	drives := make([]drive, 0, len(disks))
	for _, d := range disks {
		drives = append(drives, drive{path: d.DeviceID + `\`, label: d.VolumeName})
	}
	return drives, nil
}
