package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysmon.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBasicForms(t *testing.T) {
	st, err := Load(writeFile(t, `
; leading comment
# another comment

[sysmon]
interval_ms = 500

[module.network]
  interface =   eth0
include_loopback=true
`))
	require.NoError(t, err)

	v, ok := st.Get("sysmon", "interval_ms")
	require.True(t, ok)
	assert.Equal(t, "500", v)

	v, ok = st.Get("module.network", "interface")
	require.True(t, ok)
	assert.Equal(t, "eth0", v, "values are trimmed of surrounding whitespace")

	assert.True(t, st.GetBool("module.network", "include_loopback", false))

	_, ok = st.Get("module.network", "missing")
	assert.False(t, ok)
	_, ok = st.Get("Sysmon", "interval_ms")
	assert.False(t, ok, "section lookup is case-sensitive")
}

func TestLoadLastOccurrenceWins(t *testing.T) {
	st, err := Load(writeFile(t, "[sysmon]\ninterval_ms = 100\ninterval_ms = 200\n"))
	require.NoError(t, err)

	v, ok := st.Get("sysmon", "interval_ms")
	require.True(t, ok)
	assert.Equal(t, "200", v)
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"unterminated section", "[sysmon]\ninterval_ms = 1\n[broken\n", 3},
		{"no equals sign", "[sysmon]\njust a bare line\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestGetBool(t *testing.T) {
	st, err := Load(writeFile(t, `
[flags]
a = 1
b = 0
c = TRUE
d = False
e = yes
f = NO
g = on
h = Off
bad = maybe
empty =
`))
	require.NoError(t, err)

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"a", false, true},
		{"b", true, false},
		{"c", false, true},
		{"d", true, false},
		{"e", false, true},
		{"f", true, false},
		{"g", false, true},
		{"h", true, false},
		{"bad", true, true},
		{"bad", false, false},
		{"empty", true, true},
		{"missing", true, true},
		{"missing", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, st.GetBool("flags", tt.key, tt.def), "key %q default %v", tt.key, tt.def)
	}
}

func TestGetUint32(t *testing.T) {
	st, err := Load(writeFile(t, `
[nums]
zero = 0
small = 42
max = 4294967295
over = 4294967296
neg = -1
plus = +1
junk = 12x
float = 1.5
empty =
`))
	require.NoError(t, err)

	tests := []struct {
		key    string
		want   uint32
		wantOK bool
	}{
		{"zero", 0, true},
		{"small", 42, true},
		{"max", 4294967295, true},
		{"over", 7, false},
		{"neg", 7, false},
		{"plus", 7, false},
		{"junk", 7, false},
		{"float", 7, false},
		{"empty", 7, true},
		{"missing", 7, true},
	}
	for _, tt := range tests {
		got, ok := st.GetUint32("nums", tt.key, 7)
		assert.Equal(t, tt.wantOK, ok, "key %q ok", tt.key)
		assert.Equal(t, tt.want, got, "key %q value", tt.key)
	}
}

func TestReloadRoundTrip(t *testing.T) {
	st, err := Load(writeFile(t, `
[sysmon]
interval_ms = 250

[module.cpu]
enabled = false
refresh_ms = 10000

[module.storage]
path = /var
`))
	require.NoError(t, err)

	// Re-serialize every known key and reload; queries must be identical.
	queries := []struct{ section, key string }{
		{"sysmon", "interval_ms"},
		{"module.cpu", "enabled"},
		{"module.cpu", "refresh_ms"},
		{"module.storage", "path"},
	}

	out := ""
	section := ""
	for _, q := range queries {
		if q.section != section {
			out += fmt.Sprintf("[%s]\n", q.section)
			section = q.section
		}
		v, ok := st.Get(q.section, q.key)
		require.True(t, ok)
		out += fmt.Sprintf("%s = %s\n", q.key, v)
	}

	reloaded, err := Load(writeFile(t, out))
	require.NoError(t, err)
	for _, q := range queries {
		want, _ := st.Get(q.section, q.key)
		got, ok := reloaded.Get(q.section, q.key)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
