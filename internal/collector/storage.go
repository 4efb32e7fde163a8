package collector

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// storageCollector inspects one mounted filesystem via statvfs-style
// counters. free is the superuser figure (f_bfree), available the
// unprivileged one (f_bavail).
type storageCollector struct {
	readUsage func(path string) (*disk.UsageStat, error)

	path    string
	total   uint64
	used    uint64
	free    uint64
	avail   uint64
	usedPct float64
	hasData bool
}

func newStorage(cfg *config.Store, section string) (Collector, error) {
	path, ok := cfg.Get(section, "path")
	if !ok || path == "" {
		path = "/"
	}
	return &storageCollector{path: path, readUsage: disk.Usage}, nil
}

func (c *storageCollector) Name() string { return "storage" }

func (c *storageCollector) Poll(_ int64, refresh bool, b *snapshot.Builder) error {
	if refresh || !c.hasData {
		u, err := c.readUsage(c.path)
		if err != nil {
			return fmt.Errorf("statvfs %s: %w", c.path, err)
		}

		// gopsutil reports Free as the f_bavail figure and Used as
		// total minus f_bfree blocks.
		c.total = u.Total
		c.avail = u.Free
		c.used = u.Used
		if c.used > c.total {
			c.used = c.total
		}
		c.free = c.total - c.used
		if c.total > 0 {
			c.usedPct = float64(c.used) * 100.0 / float64(c.total)
		}
		c.hasData = true
	}

	b.AddString("storage.path", "", c.path)
	b.AddUint("storage.total_bytes", "B", c.total)
	b.AddUint("storage.used_bytes", "B", c.used)
	b.AddUint("storage.free_bytes", "B", c.free)
	b.AddUint("storage.available_bytes", "B", c.avail)
	b.AddFloat("storage.used_percent", "%", c.usedPct)
	return nil
}
