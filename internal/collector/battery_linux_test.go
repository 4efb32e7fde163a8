//go:build linux

package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBattery(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	}
}

func TestSysfsBatteryReading(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", map[string]string{
		"capacity": "73\n",
		"status":   "Charging\n",
	})

	read, err := newSysfsBatteryReader(root)
	require.NoError(t, err)

	r, err := read()
	require.NoError(t, err)
	assert.Equal(t, 73.0, r.percent)
	assert.Equal(t, int64(1), r.charging)
	assert.Equal(t, "Charging", r.status)
}

func TestSysfsBatteryChargingIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT1", map[string]string{
		"capacity": "50",
		"status":   "charging\n",
	})

	read, err := newSysfsBatteryReader(root)
	require.NoError(t, err)
	r, err := read()
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.charging)
}

func TestSysfsBatteryDischarging(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", map[string]string{
		"capacity": "41",
		"status":   "Discharging\n",
	})

	read, err := newSysfsBatteryReader(root)
	require.NoError(t, err)
	r, err := read()
	require.NoError(t, err)
	assert.Equal(t, 41.0, r.percent)
	assert.Equal(t, int64(0), r.charging)
	assert.Equal(t, "Discharging", r.status)
}

func TestSysfsBatteryMissingStatusDefaultsUnknown(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", map[string]string{"capacity": "12"})

	read, err := newSysfsBatteryReader(root)
	require.NoError(t, err)
	r, err := read()
	require.NoError(t, err)
	assert.Equal(t, "unknown", r.status)
	assert.Equal(t, int64(0), r.charging)
}

func TestSysfsBatteryAbsent(t *testing.T) {
	_, err := newSysfsBatteryReader(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestSysfsBatterySkipsEntriesWithoutCapacity(t *testing.T) {
	root := t.TempDir()
	// AC adapters and batteries without a capacity file are not candidates.
	writeBattery(t, root, "AC", map[string]string{"online": "1"})
	writeBattery(t, root, "BAT0", map[string]string{"status": "Full\n"})
	writeBattery(t, root, "BAT1", map[string]string{"capacity": "88", "status": "Full\n"})

	read, err := newSysfsBatteryReader(root)
	require.NoError(t, err)
	r, err := read()
	require.NoError(t, err)
	assert.Equal(t, 88.0, r.percent)
	assert.Equal(t, "Full", r.status)
}

func TestSysfsBatteryMalformedCapacity(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", map[string]string{"capacity": "garbage\n"})

	read, err := newSysfsBatteryReader(root)
	require.NoError(t, err)
	_, err = read()
	require.Error(t, err)
}
