// Command sysmon polls host metrics at the configured interval and prints
// one snapshot per line.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sysmon-labs/sysmon/pkg/snapshot"
	"github.com/sysmon-labs/sysmon/pkg/sysmon"
)

// Injected at build time via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:           "sysmon",
		Short:         "Host metrics monitor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		iterations int
		format     string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll metrics and print one snapshot per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			render, err := newRenderer(format)
			if err != nil {
				return err
			}

			log := logrus.New()
			log.SetOutput(os.Stderr)
			if debug {
				log.SetLevel(logrus.DebugLevel)
			}

			m, err := sysmon.New(sysmon.Options{ConfigPath: configPath, Logger: log})
			if err != nil {
				return fmt.Errorf("create monitor: %w", err)
			}
			defer m.Close()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			interval := time.Duration(m.IntervalMs()) * time.Millisecond

			for i := 0; iterations < 0 || i < iterations; i++ {
				if i > 0 {
					select {
					case <-sigChan:
						return nil
					case <-time.After(interval):
					}
				}

				s, err := m.Poll()
				if err != nil {
					if last := m.LastError(); last != "" {
						fmt.Fprintf(os.Stderr, "last error: %s\n", last)
					}
					return fmt.Errorf("poll: %w", err)
				}
				out, err := render(s)
				if err != nil {
					return err
				}
				fmt.Println(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", sysmon.DefaultConfigPath, "path to ini config")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", -1, "number of polls (-1 = infinite)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("sysmon %s (commit %s, built %s)\n", version, commit, buildDate)
		},
	}
}

type renderFunc func(*snapshot.Snapshot) (string, error)

func newRenderer(format string) (renderFunc, error) {
	switch format {
	case "text":
		return renderText, nil
	case "json":
		return func(s *snapshot.Snapshot) (string, error) {
			out, err := json.Marshal(s)
			return string(out), err
		}, nil
	case "yaml":
		return func(s *snapshot.Snapshot) (string, error) {
			out, err := yaml.Marshal(s)
			return strings.TrimRight(string(out), "\n"), err
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// renderText prints name=value pairs with the unit appended, two spaces
// apart, matching `name=12.50%  other=42B` style output.
func renderText(s *snapshot.Snapshot) (string, error) {
	var sb strings.Builder
	for i := 0; i < s.Len(); i++ {
		m, _ := s.At(i)
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(m.Name)
		sb.WriteByte('=')
		switch m.Type {
		case snapshot.TypeFloat:
			fmt.Fprintf(&sb, "%.2f", m.Float)
		case snapshot.TypeInt:
			fmt.Fprintf(&sb, "%d", m.Int)
		case snapshot.TypeUint:
			fmt.Fprintf(&sb, "%d", m.Uint)
		case snapshot.TypeString:
			sb.WriteString(m.Str)
		}
		sb.WriteString(m.Unit)
	}
	return sb.String(), nil
}
