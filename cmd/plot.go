package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DaniruKun/multitracker/logger"
	"github.com/DaniruKun/multitracker/plot"
	"github.com/DaniruKun/multitracker/record"
)

var plotCmd = &cobra.Command{
	Use:   "plot <record>",
	Short: "Render the trajectories of a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		tl, err := record.Load(args[0])
		if err != nil {
			return err
		}

		title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		out, _ := cmd.Flags().GetString("out")
		html, _ := cmd.Flags().GetString("html")
		if out == "" && html == "" {
			out = title + "_tracks.png"
		}

		if out != "" {
			if err := plot.RenderPNG(tl, out, title); err != nil {
				return fmt.Errorf("render %s: %w", out, err)
			}
			logger.Log().Info("Wrote plot", zap.String("file", out))
		}
		if html != "" {
			f, err := os.Create(html)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := plot.RenderHTML(tl, f, title); err != nil {
				return fmt.Errorf("render %s: %w", html, err)
			}
			logger.Log().Info("Wrote chart", zap.String("file", html))
		}
		return nil
	},
}

func init() {
	plotCmd.Flags().String("out", "", "Image file to write (default <record>_tracks.png)")
	plotCmd.Flags().String("html", "", "Also write an interactive HTML chart")
	rootCmd.AddCommand(plotCmd)
}
