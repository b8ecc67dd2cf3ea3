/*
Copyright © 2022 Daniils Petrovs <thedanpetrov@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/DaniruKun/multitracker/imgproc"
	"github.com/DaniruKun/multitracker/logger"
	"github.com/DaniruKun/multitracker/record"
	"github.com/DaniruKun/multitracker/store"
	"github.com/DaniruKun/multitracker/tracking"
	"github.com/DaniruKun/multitracker/utils"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "multitracker",
	Short: "MultiTracker",
	Long: `Select objects on the first frame of a video and follow them with OpenCV trackers.

Draw a box around each object, press any key to select the next one and q to
start tracking. Press ESC in the preview window to stop early. The annotated
video and a record of every box position are written when tracking ends.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		return logger.Init(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		config, err := configFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return err
		}
		if err := logger.Init(config.Debug); err != nil {
			return err
		}

		// Ctrl-C is only trapped once tracking starts, see imgproc.RunTrackingFromFile.
		return runTracking(context.Background(), config)
	},
}

// configFromFlags loads the optional config file and applies the flags the user set on top of it.
func configFromFlags(cmd *cobra.Command) (imgproc.Config, error) {
	config := imgproc.DefaultConfig()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if config, err = imgproc.LoadConfig(path); err != nil {
			return config, err
		}
	}

	if flags.Changed("file") {
		config.VideoPath, _ = flags.GetString("file")
	}
	if flags.Changed("output") {
		config.OutputPath, _ = flags.GetString("output")
	}
	if flags.Changed("record") {
		config.RecordPath, _ = flags.GetString("record")
	}
	if flags.Changed("tracker") {
		config.Tracker, _ = flags.GetString("tracker")
	}
	if flags.Changed("codec") {
		config.Codec, _ = flags.GetString("codec")
	}
	if flags.Changed("db") {
		config.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("snapshot") {
		config.SnapshotPath, _ = flags.GetString("snapshot")
	}
	if flags.Changed("snapshot-width") {
		config.SnapshotWidth, _ = flags.GetUint("snapshot-width")
	}
	if flags.Changed("thickness") {
		config.Thickness, _ = flags.GetInt("thickness")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("gui") {
		config.ShowGUI, _ = flags.GetBool("gui")
	}
	if flags.Changed("debug") {
		config.Debug, _ = flags.GetBool("debug")
	}

	t, err := tracking.ParseType(config.Tracker)
	if err != nil {
		return config, err
	}
	config.Tracker = t.String()

	if config.VideoPath != "" && (config.OutputPath == "" || config.RecordPath == "") {
		video, rec, err := utils.GetOutputPaths(config.VideoPath, config.Tracker)
		if err != nil {
			return config, err
		}
		if config.OutputPath == "" {
			config.OutputPath = video
		}
		if config.RecordPath == "" {
			config.RecordPath = rec
		}
	}
	return config, nil
}

func runTracking(ctx context.Context, config imgproc.Config) error {
	log := logger.Log()
	log.Info("Running MultiTracker", zap.String("file", config.VideoPath), zap.String("tracker", config.Tracker))

	res, err := imgproc.RunTrackingFromFile(ctx, config)
	if err != nil {
		return err
	}

	if err := record.Save(config.RecordPath, res.Timeline); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	log.Info("Saved record", zap.String("file", config.RecordPath), zap.Int("samples", res.Timeline.Len()))

	if config.DBPath != "" {
		db, err := store.Open(config.DBPath)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		defer db.Close()

		// the session is stored even if tracking was interrupted
		id, err := db.SaveSession(context.Background(), config.VideoPath, config.Tracker, res.Timeline)
		if err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		log.Info("Stored session", zap.String("db", config.DBPath), zap.String("session", id))
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// addRunFlags registers the flags of a tracking run.
func addRunFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "YAML config file, flags override its values")
	flags.StringP("file", "f", "", "Video file to track objects in")
	flags.StringP("output", "o", "", "Annotated output video (default <video>_<TRACKER>.mp4)")
	flags.StringP("record", "r", "", "Position record, .yaml/.yml or text (default <video>_<TRACKER>.txt)")
	flags.StringP("tracker", "t", string(tracking.DefaultType), "Tracker type, see `multitracker trackers`")
	flags.String("codec", imgproc.DefaultCodec, "FourCC codec of the output video")
	flags.String("db", "", "Also store the session in this SQLite database")
	flags.String("snapshot", "", "Save the first frame with the selected boxes as PNG")
	flags.Uint("snapshot-width", imgproc.DefaultSnapshotWidth, "Snapshot width in pixels")
	flags.Int("thickness", imgproc.DefaultThickness, "Box outline thickness")
	flags.Int64("seed", 0, "Seed for box colors (0 = random)")
	flags.BoolP("gui", "g", true, "Show GUI with preview while tracking")
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Verbose development logging")
	addRunFlags(rootCmd.Flags())
}
