//go:build !linux && !(darwin && cgo)

package collector

func newBatteryReader() (func() (batteryReading, error), error) {
	return nil, NotSupportedf("battery module not supported on this platform")
}
