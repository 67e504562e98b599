package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/soypat/slab"
	"github.com/spf13/cobra"
)

var areasJSON bool

var areasCmd = &cobra.Command{
	Use:   "areas <file>",
	Short: "Report net areas of a layout",
	Long: `Report the net area of the main part and the island, that is the
bounding area minus the shape opening and cutouts. A total is reported
only when the island shares a sheet with the main part.

Overlapping cutouts are not detected and are subtracted twice.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSheet(args[0])
		if err != nil {
			return err
		}
		rep := s.Areas()
		if areasJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(areasOutput(s, rep))
		}
		printAreas(cmd.OutOrStdout(), s, rep)
		return nil
	},
}

func init() {
	areasCmd.Flags().BoolVar(&areasJSON, "json", false, "output JSON")
	rootCmd.AddCommand(areasCmd)
}

type areaJSON struct {
	Main   float64  `json:"main_mm2"`
	Island *float64 `json:"island_mm2,omitempty"`
	Total  *float64 `json:"total_mm2,omitempty"`
}

func areasOutput(s slab.Sheet, rep slab.AreaReport) areaJSON {
	out := areaJSON{Main: rep.Main}
	if s.Island != nil {
		out.Island = &rep.Island
	}
	if rep.HasTotal {
		out.Total = &rep.Total
	}
	return out
}

func printAreas(w io.Writer, s slab.Sheet, rep slab.AreaReport) {
	fmt.Fprintf(w, "Main:   %.3f m² (%.0f mm²)\n", rep.Main/1e6, rep.Main)
	if s.Island != nil {
		fmt.Fprintf(w, "Island: %.3f m² (%.0f mm²)\n", rep.Island/1e6, rep.Island)
	}
	if rep.HasTotal {
		fmt.Fprintf(w, "Total:  %.3f m² (%.0f mm²)\n", rep.Total/1e6, rep.Total)
	} else {
		fmt.Fprintln(w, "Total:  n/a (island is a separate part)")
	}
}

func loadSheet(path string) (slab.Sheet, error) {
	fp, err := os.Open(path)
	if err != nil {
		return slab.Sheet{}, err
	}
	defer fp.Close()
	return slab.Load(fp)
}
