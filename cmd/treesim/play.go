//go:build !avr

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"blinkytree-go/services/sim"
	"blinkytree-go/types"
)

var (
	playDuty      int
	playSpeed     int
	playTranspose int
)

var playCmd = &cobra.Command{
	Use:   "play <song>",
	Short: "Play one song on the simulated buzzer",
	Long: `Play a single song with its configured tuning. --duty, --speed and
--transpose override the tuning for this run; out-of-range values are
clamped the same way the firmware clamps them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := types.ParseMelody(args[0])
		if !ok {
			return fmt.Errorf("unknown song %q", args[0])
		}
		if !cfg.Audio {
			return fmt.Errorf("audio is disabled in the config")
		}
		s, err := sim.New(cfg, lib)
		if err != nil {
			return err
		}
		p := s.Device().Player()
		c := p.SongConfig(id)
		if cmd.Flags().Changed("duty") {
			c.DutyCyclePct = uint8(min(max(playDuty, 0), 255))
		}
		if cmd.Flags().Changed("speed") {
			c.SpeedPct = uint16(min(max(playSpeed, 0), 65535))
		}
		if cmd.Flags().Changed("transpose") {
			c.TransposeSemitones = int8(min(max(playTranspose, -128), 127))
		}
		start := s.Device().HAL().Millis()
		p.PlayMelody(id, c.DutyCyclePct, c.SpeedPct, c.TransposeSemitones)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: duty %d%%, speed %d%%, transpose %+d\n",
			id, c.DutyCyclePct, c.SpeedPct, c.TransposeSemitones)
		fmt.Fprintf(out, "duration %d ms, %d buzzer edges\n",
			p.SongEnd()-start, len(s.Recorder().BuzzerEdges()))
		return writeWAV(s)
	},
}

func init() {
	playCmd.Flags().IntVar(&playDuty, "duty", 0, "duty cycle percent (10..100)")
	playCmd.Flags().IntVar(&playSpeed, "speed", 0, "speed percent (25..10000)")
	playCmd.Flags().IntVar(&playTranspose, "transpose", 0, "semitones (-12..12)")
}
