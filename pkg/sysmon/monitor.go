// Package sysmon is an embeddable host-metrics library. A Monitor owns a
// set of built-in collectors (cpu, ram, battery, network, storage) and, on
// each Poll, produces an immutable snapshot of named, typed samples.
//
// The library is strictly synchronous: it spawns no goroutines and keeps no
// internal cadence. The host decides when to poll; IntervalMs is only a
// hint read from the config file. A Monitor must not be used from multiple
// goroutines concurrently, but a returned Snapshot may be shared freely.
package sysmon

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sysmon-labs/sysmon/internal/clock"
	"github.com/sysmon-labs/sysmon/internal/collector"
	"github.com/sysmon-labs/sysmon/internal/config"
	"github.com/sysmon-labs/sysmon/pkg/snapshot"
)

// DefaultConfigPath is used when Options.ConfigPath is empty.
const DefaultConfigPath = "sysmon.ini"

const defaultIntervalMs = 1000

// Options configures monitor construction.
type Options struct {
	// ConfigPath is the ini file to load. The file must exist; a missing
	// file is an io error.
	ConfigPath string

	// Logger receives construction and poll diagnostics. nil means a
	// default logger at warn level.
	Logger *logrus.Logger
}

// module is one collector instance plus its throttle state.
type module struct {
	name        string
	collector   collector.Collector
	enabled     bool
	refreshMs   uint32
	lastRefresh int64
}

// Monitor owns the config store and the ordered collector instances.
type Monitor struct {
	cfg        *config.Store
	intervalMs uint32
	modules    []*module
	clk        clock.Clock
	log        *logrus.Logger
	lastErr    string
	closed     bool
}

// New loads the config file, derives the effective settings and constructs
// every enabled built-in collector. A collector that reports not-supported
// is disabled silently; any other collector failure aborts construction.
func New(opts Options) (*Monitor, error) {
	return newMonitor(opts, clock.NewMonotonic(), collector.Builtins())
}

func newMonitor(opts Options, clk clock.Clock, builtins []collector.Factory) (*Monitor, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}

	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		var perr *config.ParseError
		if errors.As(err, &perr) {
			return nil, &Error{Code: CodeParse, Err: err}
		}
		return nil, &Error{Code: CodeIO, Err: err}
	}

	interval, ok := cfg.GetUint32("sysmon", "interval_ms", defaultIntervalMs)
	if !ok || interval == 0 {
		return nil, newError(CodeParse, "invalid sysmon.interval_ms (must be an integer > 0)")
	}

	m := &Monitor{cfg: cfg, intervalMs: interval, clk: clk, log: log}

	for _, f := range builtins {
		section := "module." + f.Name
		inst := &module{name: f.Name}

		inst.enabled = cfg.GetBool(section, "enabled", true)
		refresh, ok := cfg.GetUint32(section, "refresh_ms", 0)
		if !ok {
			m.close()
			return nil, newError(CodeParse, "invalid %s.refresh_ms (must be uint32)", section)
		}
		inst.refreshMs = refresh

		if !inst.enabled {
			log.WithField("module", f.Name).Debug("module disabled by config")
			m.modules = append(m.modules, inst)
			continue
		}

		c, err := f.New(cfg, section)
		if err != nil {
			if errors.Is(err, collector.ErrNotSupported) {
				log.WithFields(logrus.Fields{"module": f.Name, "reason": err}).Info("module not supported on this host, disabled")
				inst.enabled = false
				m.modules = append(m.modules, inst)
				continue
			}
			m.close()
			return nil, &Error{Code: CodeIO, Err: fmt.Errorf("module %s: %w", f.Name, err)}
		}
		inst.collector = c
		m.modules = append(m.modules, inst)
	}

	return m, nil
}

// Poll runs one collection cycle and finalizes the samples into a
// Snapshot. A collector failure does not fail the poll: the message is
// recorded as a module.<name>.error string sample and the remaining
// collectors still run.
func (m *Monitor) Poll() (*snapshot.Snapshot, error) {
	if m == nil {
		return nil, newError(CodeInvalidArgument, "nil monitor")
	}
	if m.closed {
		err := newError(CodeInvalidArgument, "poll on closed monitor")
		m.lastErr = err.Error()
		return nil, err
	}

	now := m.clk.NowMillis()
	b := snapshot.NewBuilder()

	for _, inst := range m.modules {
		if !inst.enabled || inst.collector == nil {
			continue
		}

		refreshNow := inst.refreshMs == 0 || inst.lastRefresh == 0 ||
			now-inst.lastRefresh >= int64(inst.refreshMs)

		if err := inst.collector.Poll(now, refreshNow, b); err != nil {
			m.log.WithFields(logrus.Fields{"module": inst.name, "error": err}).Warn("module poll failed")
			b.AddString("module."+inst.name+".error", "", err.Error())
			continue
		}
		if refreshNow {
			inst.lastRefresh = now
		}
	}

	return b.Finalize(), nil
}

// IntervalMs returns the configured global polling hint. The library never
// sleeps on it; the host does.
func (m *Monitor) IntervalMs() uint32 {
	if m == nil {
		return 0
	}
	return m.intervalMs
}

// LastError returns the most recent fatal failure message, or "" when none
// occurred. It is overwritten only by subsequent error-setting operations.
func (m *Monitor) LastError() string {
	if m == nil {
		return ""
	}
	return m.lastErr
}

// Close releases collector resources in reverse registration order. The
// monitor must not be used afterwards.
func (m *Monitor) Close() error {
	if m == nil {
		return nil
	}
	return m.close()
}

func (m *Monitor) close() error {
	m.closed = true
	var errs []error
	for i := len(m.modules) - 1; i >= 0; i-- {
		if closer, ok := m.modules[i].collector.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("module %s: %w", m.modules[i].name, err))
			}
		}
	}
	return errors.Join(errs...)
}
