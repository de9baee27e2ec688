package status

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
)

// DriveUsage is the capacity of one mounted volume.
type DriveUsage struct {
	Path        string
	Label       string
	FSType      string
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// HostInfo identifies the machine.
type HostInfo struct {
	Hostname string
	OS       string
	Arch     string
	Uptime   time.Duration
}

// Report is one snapshot of host and drive information.
type Report struct {
	Host      HostInfo
	Drives    []DriveUsage
	Collected time.Time
}

// drive is a volume discovered before its usage is queried.
type drive struct {
	path  string
	label string
}

// Collect gathers host info and the usage of every fixed drive. A drive
// whose usage cannot be read is left out.
func Collect(ctx context.Context) (*Report, error) {
	r := &Report{Collected: time.Now()}

	if info, err := host.InfoWithContext(ctx); err == nil {
		r.Host = HostInfo{
			Hostname: info.Hostname,
			OS:       osLabel(info),
			Arch:     info.KernelArch,
			Uptime:   time.Duration(info.Uptime) * time.Second,
		}
	}

	drives, err := listDrives(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drives: %w", err)
	}
	for _, d := range drives {
		u, err := Usage(ctx, d.path)
		if err != nil || u.Total == 0 {
			continue
		}
		u.Label = d.label
		r.Drives = append(r.Drives, u)
	}
	sort.Slice(r.Drives, func(i, j int) bool {
		return strings.ToLower(r.Drives[i].Path) < strings.ToLower(r.Drives[j].Path)
	})
	return r, nil
}

// Usage returns the capacity of the volume holding path.
func Usage(ctx context.Context, path string) (DriveUsage, error) {
	st, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DriveUsage{}, err
	}
	return DriveUsage{
		Path:        st.Path,
		FSType:      st.Fstype,
		Total:       st.Total,
		Used:        st.Used,
		Free:        st.Free,
		UsedPercent: st.UsedPercent,
	}, nil
}

// partitionDrives lists physical partitions through gopsutil, deduplicated
// by mount point.
func partitionDrives(ctx context.Context) ([]drive, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var drives []drive
	for _, p := range parts {
		if seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true
		drives = append(drives, drive{path: p.Mountpoint, label: p.Device})
	}
	return drives, nil
}

func osLabel(info *host.InfoStat) string {
	if runtime.GOOS == "windows" {
		return core.WindowsVersionString()
	}
	return strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
}
