//go:build darwin && cgo

package collector

import "errors"

/*
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit

#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/ps/IOPowerSources.h>
#include <IOKit/ps/IOPSKeys.h>

// Copies the first usable power source's figures while the sources array
// and info object are still retained, then releases both.
// Returns 0 on success, -1 when the power-source APIs fail, -2 when no
// source carries capacity information.
static int sysmonCopyBattery(double *percent, int *isCharging, char *status, int statusLen) {
	CFTypeRef info = IOPSCopyPowerSourcesInfo();
	if (!info) return -1;
	CFArrayRef sources = IOPSCopyPowerSourcesList(info);
	if (!sources) {
		CFRelease(info);
		return -1;
	}

	int found = 0;
	for (CFIndex i = 0; i < CFArrayGetCount(sources) && !found; i++) {
		CFTypeRef ps = CFArrayGetValueAtIndex(sources, i);
		CFDictionaryRef desc = IOPSGetPowerSourceDescription(info, ps);
		if (!desc) continue;

		CFNumberRef cur = (CFNumberRef)CFDictionaryGetValue(desc, CFSTR(kIOPSCurrentCapacityKey));
		CFNumberRef max = (CFNumberRef)CFDictionaryGetValue(desc, CFSTR(kIOPSMaxCapacityKey));
		CFBooleanRef charging = (CFBooleanRef)CFDictionaryGetValue(desc, CFSTR(kIOPSIsChargingKey));
		CFStringRef state = (CFStringRef)CFDictionaryGetValue(desc, CFSTR(kIOPSPowerSourceStateKey));

		int curVal = 0, maxVal = 0;
		if (!cur || !max) continue;
		if (!CFNumberGetValue(cur, kCFNumberIntType, &curVal)) continue;
		if (!CFNumberGetValue(max, kCFNumberIntType, &maxVal) || maxVal <= 0) continue;

		*percent = (double)curVal * 100.0 / (double)maxVal;
		*isCharging = (charging && CFBooleanGetValue(charging)) ? 1 : 0;
		status[0] = '\0';
		if (state && CFGetTypeID(state) == CFStringGetTypeID()) {
			CFStringGetCString(state, status, statusLen, kCFStringEncodingUTF8);
		}
		found = 1;
	}

	CFRelease(sources);
	CFRelease(info);
	return found ? 0 : -2;
}
*/
import "C"

// newBatteryReader probes the IOKit power sources once so a host without a
// battery disables the module at construction.
func newBatteryReader() (func() (batteryReading, error), error) {
	if _, err := readPowerSource(); err != nil {
		return nil, NotSupportedf("%v", err)
	}
	return readPowerSource, nil
}

func readPowerSource() (batteryReading, error) {
	var (
		percent  C.double
		charging C.int
		status   [64]C.char
	)
	switch C.sysmonCopyBattery(&percent, &charging, &status[0], C.int(len(status))) {
	case 0:
	case -2:
		return batteryReading{}, errors.New("no battery power source available")
	default:
		return batteryReading{}, errors.New("power source query failed")
	}

	r := batteryReading{
		percent:  float64(percent),
		charging: int64(charging),
		status:   C.GoString(&status[0]),
	}
	if r.status == "" {
		r.status = "unknown"
	}
	return r, nil
}
