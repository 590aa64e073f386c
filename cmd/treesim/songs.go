//go:build !avr

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"blinkytree-go/services/songs"
	"blinkytree-go/types"
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List songs and their tuning",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		pos := make(map[types.MelodyID]int)
		for i, id := range lib.Enabled() {
			pos[id] = i
		}
		for id := types.MelodyNone + 1; id < types.MelodyCount; id++ {
			m, ok := lib.Lookup(id)
			if !ok {
				continue
			}
			c := lib.Config(id)
			slot := "  -"
			if i, ok := pos[id]; ok {
				slot = fmt.Sprintf("%3d", i)
			}
			fmt.Fprintf(out, "%s  %-18s %3d notes  duty %3d%%  speed %4d%%  transpose %+d\n",
				slot, id, len(m.Notes), c.DutyCyclePct, c.SpeedPct, c.TransposeSemitones)
		}
		return nil
	},
}

var songsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the current song table as a song file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return songs.MarshalConfig(cmd.OutOrStdout(), lib)
	},
}

func init() {
	songsCmd.AddCommand(songsExportCmd)
}
