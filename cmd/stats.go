/*
Copyright © 2019 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/mmuldo/colorlab/image"
	"github.com/mmuldo/colorlab/report"
	"github.com/mmuldo/colorlab/session"
)

var (
	numColors    int
	templatePath string
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats TARGET SOURCE",
	Short: "Prints the Lab statistics a LUT would be built from",
	Long: `Prints the per-channel Lab mean and standard deviation of TARGET
(resized to SOURCE's dimensions) and SOURCE, the gain the transfer applies to
each channel and the dominant colours of both images.

The report is rendered with a pongo2 template; --template replaces the
built-in one. The template receives a single variable, report.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return stats(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVarP(&numColors, "colors", "c", 6, "number of dominant colours to list per image (0 disables)")
	statsCmd.Flags().StringVarP(&templatePath, "template", "t", "", "pongo2 template for the report")
}

func stats(w io.Writer, target, source string) error {
	var e error
	if target, e = expand(target); e != nil {
		return e
	}
	if source, e = expand(source); e != nil {
		return e
	}

	tf, e := image.Load(target)
	if e != nil {
		return fmt.Errorf("target: %w", e)
	}
	sf, e := image.Load(source)
	if e != nil {
		return fmt.Errorf("source: %w", e)
	}
	if tf, e = image.Resize(tf, sf.Width, sf.Height); e != nil {
		return e
	}

	ts, e := session.Measure(tf)
	if e != nil {
		return fmt.Errorf("target: %w", e)
	}
	ss, e := session.Measure(sf)
	if e != nil {
		return fmt.Errorf("source: %w", e)
	}

	r := report.New(target, source, ts, ss)
	if numColors > 0 {
		if r.TargetColors, e = swatches(tf); e != nil {
			return fmt.Errorf("target: %w", e)
		}
		if r.SourceColors, e = swatches(sf); e != nil {
			return fmt.Errorf("source: %w", e)
		}
	}

	var o string
	if templatePath != "" {
		p, e := expand(templatePath)
		if e != nil {
			return e
		}
		o, e = report.RenderFile(r, p)
		if e != nil {
			return e
		}
	} else if o, e = report.Render(r, ""); e != nil {
		return e
	}
	fmt.Fprint(w, o)

	if numColors > 0 {
		out := termenv.NewOutput(w)
		fmt.Fprintf(w, "\ntarget %s\nsource %s\n", strip(out, r.TargetColors), strip(out, r.SourceColors))
	}
	return nil
}

func swatches(f *image.Frame) ([]report.Swatch, error) {
	ccl, e := image.Dominant(f, numColors)
	if e != nil {
		return nil, e
	}
	return report.Swatches(ccl, len(f.Pix)), nil
}

// strip renders swatches as a row of coloured blocks.
func strip(out *termenv.Output, ss []report.Swatch) string {
	var s string
	for _, sw := range ss {
		s += out.String("    ").Background(out.Color(sw.Hex)).String()
	}
	return s
}
