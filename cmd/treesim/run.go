//go:build !avr

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"blinkytree-go/services/sim"
)

var (
	wavOut  string
	wavRate int
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a microphone stimulus script",
	Long: `Run executes a stimulus script against a fresh simulated tree and prints
a summary. Reads the script from stdin when the path is "-" or omitted.

Script commands, one per line:
  level <raw> [ms]        hold a raw 10-bit microphone reading
  quiet [ms]              hold a level below the baseline
  breath light|strong [ms]
  wait <ms>
  effect <name>
  play <song>
  next`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		script, err := sim.ParseScript(r)
		if err != nil {
			return err
		}
		s, err := sim.New(cfg, lib)
		if err != nil {
			return err
		}
		slog.Info("running script", "actions", len(script))
		rep := s.Run(script)
		printReport(cmd.OutOrStdout(), rep)
		return writeWAV(s)
	},
}

func init() {
	for _, c := range []*cobra.Command{runCmd, playCmd} {
		c.Flags().StringVarP(&wavOut, "wav", "w", "", "render buzzer output to this WAV file")
		c.Flags().IntVar(&wavRate, "rate", int(sim.DefaultSampleRate), "WAV sample rate")
	}
}

func writeWAV(s *sim.Sim) error {
	if wavOut == "" {
		return nil
	}
	f, err := os.Create(wavOut)
	if err != nil {
		return err
	}
	if err := s.WriteWAV(f, beep.SampleRate(wavRate)); err != nil {
		f.Close()
		return err
	}
	slog.Info("wrote wav", "path", wavOut)
	return f.Close()
}

func printReport(w io.Writer, r sim.Report) {
	fmt.Fprintf(w, "virtual time:  %d ms (%d loop steps)\n", r.DurationMs, r.Steps)
	fmt.Fprintf(w, "led duty:      tip=%d upper=%d middle=%d base=%d\n",
		r.LEDDuty[0], r.LEDDuty[1], r.LEDDuty[2], r.LEDDuty[3])
	fmt.Fprintf(w, "adc:           %d conversions, %d on a driven pin\n", r.Conversions, r.HotReads)
	fmt.Fprintf(w, "boost:         %d\n", r.Boost)
	fmt.Fprintf(w, "buzzer edges:  %d\n", r.BuzzerEdges)
	fmt.Fprintf(w, "songs played:  %d (rotation index %d)\n", len(r.Songs), r.RotationIndex)
	for _, s := range r.Songs {
		fmt.Fprintf(w, "  %-18s ended at %d ms\n", s.Song, s.EndMs)
	}
}
