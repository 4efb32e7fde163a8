//go:build linux

package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultPowerSupplyRoot = "/sys/class/power_supply"

// newBatteryReader scans the power-supply class for the first BAT* entry
// that exposes a capacity file and binds the reader to that directory.
func newBatteryReader() (func() (batteryReading, error), error) {
	return newSysfsBatteryReader(defaultPowerSupplyRoot)
}

func newSysfsBatteryReader(root string) (func() (batteryReading, error), error) {
	dir, err := detectBatteryDir(root)
	if err != nil {
		return nil, err
	}
	return func() (batteryReading, error) {
		return readSysfsBattery(dir)
	}, nil
}

func detectBatteryDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", NotSupportedf("open %s: %v", root, err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "BAT") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "capacity")); err == nil {
			return dir, nil
		}
	}
	return "", NotSupportedf("no battery found under %s", root)
}

func readSysfsBattery(dir string) (batteryReading, error) {
	capData, err := os.ReadFile(filepath.Join(dir, "capacity"))
	if err != nil {
		return batteryReading{}, fmt.Errorf("read battery capacity: %w", err)
	}
	capacity, err := strconv.ParseUint(strings.TrimSpace(string(capData)), 10, 32)
	if err != nil {
		return batteryReading{}, fmt.Errorf("parse battery capacity: %w", err)
	}

	r := batteryReading{percent: float64(capacity), status: "unknown"}
	if statusData, err := os.ReadFile(filepath.Join(dir, "status")); err == nil {
		if status := strings.TrimSpace(string(statusData)); status != "" {
			r.status = status
		}
	}
	if strings.EqualFold(r.status, "Charging") {
		r.charging = 1
	}
	return r, nil
}
