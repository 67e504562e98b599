package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/soypat/slab"
	"github.com/spf13/cobra"
)

var (
	newShape    string
	newNoIsland bool
	newCombined bool
	newForce    bool
)

var newCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Write a new layout snapshot",
	Long: `Write a snapshot of the default layout: a 2000x600 mm main part with
a sink and a hob cutout and a separate 1200x800 mm island.
Without a file argument the snapshot is written to standard output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := slab.DefaultSheet()
		s.Main.Shape = slab.ParseShapeKind(newShape)
		if s.Main.Shape.String() != newShape {
			return fmt.Errorf("unknown shape %q, want rect, L or U", newShape)
		}
		if newNoIsland {
			s.Island = nil
		} else if newCombined {
			s.Island.Separate = false
		}
		if len(args) == 0 {
			return slab.Save(cmd.OutOrStdout(), s)
		}
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if newForce {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		fp, err := os.OpenFile(args[0], flags, 0o644)
		if err != nil {
			return err
		}
		if err := slab.Save(fp, s); err != nil {
			fp.Close()
			return err
		}
		log.Info().Str("file", args[0]).Stringer("shape", s.Main.Shape).Msg("layout created")
		return fp.Close()
	},
}

func init() {
	newCmd.Flags().StringVar(&newShape, "shape", "rect", "main part shape: rect, L or U")
	newCmd.Flags().BoolVar(&newNoIsland, "no-island", false, "omit the island")
	newCmd.Flags().BoolVar(&newCombined, "combined", false, "export the island on the main part's sheet")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}
