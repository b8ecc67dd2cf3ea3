package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DaniruKun/multitracker/record"
)

var statsCmd = &cobra.Command{
	Use:   "stats <record>",
	Short: "Print per-object movement statistics of a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, err := record.Load(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "duration\t%v\tsamples\t%d\n", tl.Duration(), tl.Len())
		fmt.Fprintln(w, "OBJECT\tSAMPLES\tPATH(px)\tMEAN px/s\tMAX px/s\tMEAN SIZE")
		for _, s := range record.Summarize(tl) {
			fmt.Fprintf(w, "%d\t%d\t%.1f\t%.1f\t%.1f\t%.0fx%.0f\n",
				s.Object, s.Samples, s.PathLength, s.MeanSpeed, s.MaxSpeed, s.MeanWidth, s.MeanHeight)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
