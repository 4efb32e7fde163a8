package collector

import (
	"fmt"

	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// batteryReading is one observation of the primary battery.
type batteryReading struct {
	percent  float64
	charging int64
	status   string
}

// batteryCollector caches the last reading between refreshes. The platform
// reader is resolved at creation; a host without a battery reports
// ErrNotSupported there and the module is disabled silently.
type batteryCollector struct {
	read func() (batteryReading, error)

	last    batteryReading
	hasData bool
}

func newBattery(_ *config.Store, _ string) (Collector, error) {
	read, err := newBatteryReader()
	if err != nil {
		return nil, err
	}
	return &batteryCollector{
		read: read,
		last: batteryReading{status: "unknown"},
	}, nil
}

func (c *batteryCollector) Name() string { return "battery" }

func (c *batteryCollector) Poll(_ int64, refresh bool, b *snapshot.Builder) error {
	if refresh || !c.hasData {
		r, err := c.read()
		if err != nil {
			return fmt.Errorf("read battery: %w", err)
		}
		c.last = r
		c.hasData = true
	}

	b.AddFloat("battery.percent", "%", c.last.percent)
	b.AddInt("battery.is_charging", "", c.last.charging)
	b.AddString("battery.status", "", c.last.status)
	return nil
}
