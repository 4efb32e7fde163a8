package collector

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// ramCollector reports physical memory usage. Total is read once at
// creation; used and free are refreshed per cycle.
type ramCollector struct {
	readMem func() (*mem.VirtualMemoryStat, error)

	total   uint64
	used    uint64
	free    uint64
	usedPct float64
	hasData bool
}

func newRAM(_ *config.Store, _ string) (Collector, error) {
	c := &ramCollector{readMem: mem.VirtualMemory}
	vm, err := c.readMem()
	if err != nil {
		return nil, NotSupportedf("read total memory: %v", err)
	}
	c.total = vm.Total
	return c, nil
}

func (c *ramCollector) Name() string { return "ram" }

func (c *ramCollector) Poll(_ int64, refresh bool, b *snapshot.Builder) error {
	if refresh || !c.hasData {
		vm, err := c.readMem()
		if err != nil {
			return fmt.Errorf("read memory usage: %w", err)
		}

		free := freeBytes(vm)
		if free > c.total {
			free = 0
		}
		c.free = free
		c.used = c.total - free
		if c.total > 0 {
			c.usedPct = float64(c.used) * 100.0 / float64(c.total)
		}
		c.hasData = true
	}

	b.AddUint("ram.total_bytes", "B", c.total)
	b.AddUint("ram.used_bytes", "B", c.used)
	b.AddUint("ram.free_bytes", "B", c.free)
	if c.total > 0 {
		b.AddFloat("ram.used_percent", "%", c.usedPct)
	}
	return nil
}

// freeBytes prefers MemAvailable on Linux (falling back to MemFree); other
// platforms use the plain free-page figure.
func freeBytes(vm *mem.VirtualMemoryStat) uint64 {
	if runtime.GOOS == "linux" && vm.Available > 0 {
		return vm.Available
	}
	return vm.Free
}
