package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	ticks "github.com/kofi-q/ticks-go"
	"github.com/kofi-q/ticks-go/ttf"
)

var errUnknownFormat = errors.New("unknown label format")

// options holds the settings of one run, merged from flags, TICKS_*
// environment variables and the config file.
type options struct {
	Min, Max float64

	Length   float64
	FontSize float64
	Rotation float64
	DPI      float64
	Vertical bool

	MaxTicks  int
	KeepEdges bool
	Steps     string

	Format string
	Unit   string
	Font   string

	Baseline bool
	Verbose  bool
}

func loadOptions(v *viper.Viper) options {
	return options{
		Min:       v.GetFloat64("min"),
		Max:       v.GetFloat64("max"),
		Length:    v.GetFloat64("length"),
		FontSize:  v.GetFloat64("font-size"),
		Rotation:  v.GetFloat64("rotation"),
		DPI:       v.GetFloat64("dpi"),
		Vertical:  v.GetBool("vertical"),
		MaxTicks:  v.GetInt("max-ticks"),
		KeepEdges: v.GetBool("keep-edges"),
		Steps:     v.GetString("steps"),
		Format:    v.GetString("format"),
		Unit:      v.GetString("unit"),
		Font:      v.GetString("font"),
		Baseline:  v.GetBool("baseline"),
		Verbose:   v.GetBool("verbose"),
	}
}

func (o options) renderContext() ticks.RenderContext {
	return ticks.RenderContext{
		PixelLength: o.Length,
		FontSize:    o.FontSize,
		Rotation:    o.Rotation,
		DPI:         o.DPI,
		Vertical:    o.Vertical,
	}
}

func (o options) locatorConfig(logger log.FieldLogger) (ticks.Config, error) {
	families, err := parseSteps(o.Steps)
	if err != nil {
		return ticks.Config{}, err
	}

	formatter, err := formatterFor(o.Format, o.Unit)
	if err != nil {
		return ticks.Config{}, err
	}

	measurer, err := measurerFor(o.Font)
	if err != nil {
		return ticks.Config{}, err
	}

	return ticks.Config{
		MaxTicks:     o.MaxTicks,
		KeepEdges:    o.KeepEdges,
		StepFamilies: families,
		Formatter:    formatter,
		Measurer:     measurer,
		Logger:       logger,
	}, nil
}

// parseSteps reads step families written as "1,2,5,10;2.5". An empty string
// selects the default families.
func parseSteps(s string) ([][]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var families [][]float64
	for _, group := range strings.Split(s, ";") {
		var family []float64
		for _, field := range strings.Split(group, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			step, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid step %q: %w", field, err)
			}
			family = append(family, step)
		}
		families = append(families, family)
	}
	return families, nil
}

func formatterFor(name, unit string) (ticks.Formatter, error) {
	switch name {
	case "", "scalar":
		return ticks.ScalarFormatter{}, nil
	case "si":
		return ticks.SIFormatter{Unit: unit}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownFormat, name)
}

// measurerFor returns nil, counting characters, for an empty name, the Go
// Regular face for "go", and the TrueType font at path otherwise.
func measurerFor(font string) (ticks.Measurer, error) {
	switch font {
	case "":
		return nil, nil
	case "go":
		return ticks.NewGoFaceMeasurer()
	}

	bytes, err := os.ReadFile(font)
	if err != nil {
		return nil, fmt.Errorf("unable to read font file: %w", err)
	}
	return ttf.NewMeasurer(bytes)
}
