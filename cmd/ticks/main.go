// Command ticks prints readable tick positions for an axis range.
//
//	ticks --min 0 --max 1000 --length 400 --font-size 10
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ticks "github.com/kofi-q/ticks-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Place readable ticks on an axis",
		Long: `ticks picks nice tick values inside [min, max] whose labels fit an axis of
the given length without overlapping each other or the axis ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Float64("min", 0, "Lower bound of the axis range")
	flags.Float64("max", 1, "Upper bound of the axis range")
	flags.Float64("length", 400, "Axis length in pixels")
	flags.Float64("font-size", 10, "Tick label font size in points")
	flags.Float64("rotation", 0, "Tick label rotation in degrees")
	flags.Float64("dpi", 72, "Device resolution")
	flags.Bool("vertical", false, "Place ticks on a y axis")
	flags.Int("max-ticks", 0, "Maximum number of ticks (0 is automatic)")
	flags.Bool("keep-edges", false, "Keep ticks whose labels overhang the axis ends")
	flags.String("steps", "", `Step families, e.g. "1,2,5,10;2.5" (default families if empty)`)
	flags.String("format", "scalar", "Label format: scalar or si")
	flags.String("unit", "", "Unit appended to si labels")
	flags.String("font", "", `Measure labels with a TrueType font file, or "go" for Go Regular`)
	flags.Bool("baseline", false, "Also print loose ticks that ignore label sizes")
	flags.Bool("verbose", false, "Print detailed execution info")
	flags.String("config", "", "Configuration file")

	v.BindPFlags(flags)
	v.SetEnvPrefix("TICKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}
	opts := loadOptions(v)

	logger := log.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if opts.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if file := v.ConfigFileUsed(); file != "" {
		logger.WithFields(log.Fields{
			"file": file,
		}).Debug("Using config file")
	}

	cfg, err := opts.locatorConfig(logger)
	if err != nil {
		return err
	}
	l, err := ticks.NewLocator(ticks.Fixed(opts.renderContext()), cfg)
	if err != nil {
		return err
	}

	locs := l.Ticks(opts.Min, opts.Max)
	if locs == nil {
		logger.WithFields(log.Fields{
			"min": opts.Min,
			"max": opts.Max,
		}).Warn("No tick fits the axis")
	}

	out := cmd.OutOrStdout()
	for i, label := range l.Labels(locs) {
		fmt.Fprintf(out, "%s\t%s\n", strconv.FormatFloat(locs[i], 'g', -1, 64), label)
	}

	if opts.Baseline {
		list, precision := ticks.Tickmarks(opts.Min, opts.Max)
		labels := make([]string, len(list))
		for i, x := range list {
			labels[i] = strconv.FormatFloat(x, 'f', precision, 64)
		}
		fmt.Fprintf(out, "baseline\t%s\n", strings.Join(labels, " "))
	}

	return nil
}
