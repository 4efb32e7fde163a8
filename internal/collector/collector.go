// Package collector defines the uniform module contract and the built-in
// cpu, ram, battery, network and storage collectors.
package collector

import (
	"errors"
	"fmt"

	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// ErrNotSupported marks a feature that is absent on this host (no battery,
// missing interface, unsupported platform) as opposed to a transient read
// failure. The monitor disables such a module silently.
var ErrNotSupported = errors.New("not supported")

// NotSupportedf wraps ErrNotSupported with a human-readable reason.
func NotSupportedf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotSupported)
}

// Collector is one metric module instance. Poll is invoked once per monitor
// cycle; when refresh is false it must still append the cached sample set so
// every snapshot is a complete picture. A collector may append zero samples
// only when it returns an error.
//
// Collectors are single-threaded: the monitor never calls Poll concurrently.
type Collector interface {
	Name() string
	Poll(nowMillis int64, refresh bool, b *snapshot.Builder) error
}

// Factory creates a collector instance from its config section. New may
// return ErrNotSupported to have the module disabled without failing
// monitor construction.
type Factory struct {
	Name string
	New  func(cfg *config.Store, section string) (Collector, error)
}

// Builtins returns the fixed, ordered list of built-in collectors. Samples
// appear in snapshots in this registration order.
func Builtins() []Factory {
	return []Factory{
		{Name: "cpu", New: newCPU},
		{Name: "ram", New: newRAM},
		{Name: "battery", New: newBattery},
		{Name: "network", New: newNetwork},
		{Name: "storage", New: newStorage},
	}
}
