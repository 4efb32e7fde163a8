package collector

import (
	"fmt"

	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// ifaceCounters is one reading of an interface's cumulative byte counters.
type ifaceCounters struct {
	rx uint64
	tx uint64
}

// networkCollector tracks one interface and derives byte rates from
// successive counter readings. The first refresh caches counters and
// reports 0 B/s; a counter that decreases (interface reset, 32-bit wrap on
// older kernels) is treated as a zero delta rather than a negative one,
// which under-reports during a wrap but never goes negative.
type networkCollector struct {
	readCounters func(name string) (ifaceCounters, error)

	iface   string
	lastRx  uint64
	lastTx  uint64
	lastTs  int64
	rxRate  float64
	txRate  float64
	hasData bool
}

func newNetwork(cfg *config.Store, section string) (Collector, error) {
	requested, _ := cfg.Get(section, "interface")
	includeLoopback := cfg.GetBool(section, "include_loopback", false)

	name, err := selectInterface(requested, includeLoopback)
	if err != nil {
		return nil, err
	}
	return &networkCollector{iface: name, readCounters: readInterfaceCounters}, nil
}

func (c *networkCollector) Name() string { return "network" }

func (c *networkCollector) Poll(now int64, refresh bool, b *snapshot.Builder) error {
	if refresh || !c.hasData {
		cur, err := c.readCounters(c.iface)
		if err != nil {
			return fmt.Errorf("read network counters: %w", err)
		}

		if c.hasData && c.lastTs > 0 && now > c.lastTs {
			seconds := float64(now-c.lastTs) / 1000.0
			var rxDelta, txDelta uint64
			if cur.rx >= c.lastRx {
				rxDelta = cur.rx - c.lastRx
			}
			if cur.tx >= c.lastTx {
				txDelta = cur.tx - c.lastTx
			}
			c.rxRate = float64(rxDelta) / seconds
			c.txRate = float64(txDelta) / seconds
		} else {
			c.rxRate = 0
			c.txRate = 0
		}

		c.lastRx = cur.rx
		c.lastTx = cur.tx
		c.lastTs = now
		c.hasData = true
	}

	b.AddString("network.interface", "", c.iface)
	b.AddUint("network.rx_bytes", "B", c.lastRx)
	b.AddUint("network.tx_bytes", "B", c.lastTx)
	b.AddFloat("network.rx_bytes_per_sec", "B/s", c.rxRate)
	b.AddFloat("network.tx_bytes_per_sec", "B/s", c.txRate)
	return nil
}

// selectInterface resolves the configured interface name. With an explicit
// name the match is exact and a miss means the module is unsupported on
// this host. Without one, the first interface that is up and not loopback
// wins (loopback is eligible when includeLoopback is set).
func selectInterface(requested string, includeLoopback bool) (string, error) {
	ifs, err := gnet.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}

	if requested != "" {
		for i := range ifs {
			if ifs[i].Name == requested {
				return requested, nil
			}
		}
		return "", NotSupportedf("interface %q not found", requested)
	}

	for i := range ifs {
		up, loopback := interfaceFlags(ifs[i])
		if !up {
			continue
		}
		if loopback && !includeLoopback {
			continue
		}
		return ifs[i].Name, nil
	}
	return "", NotSupportedf("no usable network interface found")
}

func interfaceFlags(it gnet.InterfaceStat) (up, loopback bool) {
	for _, f := range it.Flags {
		switch f {
		case "up":
			up = true
		case "loopback":
			loopback = true
		}
	}
	return up, loopback
}

func readInterfaceCounters(name string) (ifaceCounters, error) {
	stats, err := gnet.IOCounters(true)
	if err != nil {
		return ifaceCounters{}, err
	}
	for i := range stats {
		if stats[i].Name == name {
			return ifaceCounters{rx: stats[i].BytesRecv, tx: stats[i].BytesSent}, nil
		}
	}
	return ifaceCounters{}, fmt.Errorf("interface %q not present in counters", name)
}
