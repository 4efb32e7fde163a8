package collector

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// cpuTicks is one reading of the cumulative (total, idle) tick counters.
type cpuTicks struct {
	total float64
	idle  float64
}

// cpuCollector derives a usage percentage from deltas of cumulative tick
// counters. The first refresh only captures a baseline and reports 0%;
// degenerate deltas (no elapsed ticks, idle running backwards or past
// total) do not overwrite the previous percentage.
type cpuCollector struct {
	readTicks func() (cpuTicks, error)

	cores   uint64
	prev    cpuTicks
	hasPrev bool
	usage   float64
}

func newCPU(_ *config.Store, _ string) (Collector, error) {
	c := &cpuCollector{readTicks: readCPUTicks}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		c.cores = uint64(n)
	}
	return c, nil
}

func (c *cpuCollector) Name() string { return "cpu" }

func (c *cpuCollector) Poll(_ int64, refresh bool, b *snapshot.Builder) error {
	if refresh || !c.hasPrev {
		t, err := c.readTicks()
		if err != nil {
			return fmt.Errorf("read cpu ticks: %w", err)
		}

		if c.hasPrev {
			totalDelta := t.total - c.prev.total
			idleDelta := t.idle - c.prev.idle
			if totalDelta > 0 && idleDelta >= 0 && idleDelta <= totalDelta {
				c.usage = (totalDelta - idleDelta) * 100.0 / totalDelta
			}
		} else {
			c.hasPrev = true
		}
		c.prev = t
	}

	b.AddFloat("cpu.usage_percent", "%", c.usage)
	if c.cores > 0 {
		b.AddUint("cpu.core_count", "", c.cores)
	}
	return nil
}

// readCPUTicks reads the host-wide cumulative CPU times. idle includes
// iowait; total is the sum of all accounted states, matching the first line
// of /proc/stat on Linux and host_statistics on Darwin.
func readCPUTicks() (cpuTicks, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return cpuTicks{}, err
	}
	if len(times) == 0 {
		return cpuTicks{}, errors.New("no cpu times reported")
	}
	t := times[0]
	return cpuTicks{
		total: t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal,
		idle:  t.Idle + t.Iowait,
	}, nil
}
