// Package config loads the sysmon ini file and answers typed
// (section, key) queries with defaults.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// entry is one key assignment, kept in file order.
type entry struct {
	section string
	key     string
	value   string
}

// Store holds the parsed configuration. Lookups are case-sensitive and the
// most recent occurrence of a (section, key) pair wins.
type Store struct {
	entries []entry
}

// ParseError reports a malformed line, keeping the 1-based line number.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Load reads and parses an ini file. A missing or unreadable file is
// returned as the underlying I/O error; malformed content as *ParseError.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ini file: %w", err)
	}
	return parse(path, string(data))
}

func parse(path, data string) (*Store, error) {
	st := &Store{}
	section := ""

	for i, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if line[0] == '[' {
			end := strings.IndexByte(line, ']')
			if end < 0 {
				return nil, &ParseError{Path: path, Line: i + 1, Msg: "missing ']' in section header"}
			}
			section = strings.TrimSpace(line[1:end])
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, &ParseError{Path: path, Line: i + 1, Msg: "expected key = value"}
		}
		st.entries = append(st.entries, entry{
			section: section,
			key:     strings.TrimSpace(line[:eq]),
			value:   strings.TrimSpace(line[eq+1:]),
		})
	}

	return st, nil
}

// Get returns the value for (section, key). The last assignment in the file
// wins when a key is repeated.
func (s *Store) Get(section, key string) (string, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := &s.entries[i]
		if e.section == section && e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// GetBool interprets 1/0, true/false, yes/no and on/off (the words are
// case-insensitive). Missing or unrecognized values yield def.
func (s *Store) GetBool(section, key string, def bool) bool {
	v, ok := s.Get(section, key)
	if !ok {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	return def
}

// GetUint32 parses an unsigned decimal value. A missing or empty value
// returns (def, true); a value that is signed, non-numeric, partially
// numeric or larger than 32 bits returns (def, false).
func (s *Store) GetUint32(section, key string, def uint32) (uint32, bool) {
	v, ok := s.Get(section, key)
	if !ok || v == "" {
		return def, true
	}
	if v[0] == '+' || v[0] == '-' {
		return def, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n > math.MaxUint32 {
		return def, false
	}
	return uint32(n), true
}
