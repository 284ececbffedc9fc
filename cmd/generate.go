/*
Copyright © 2019 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmuldo/colorlab/image"
	"github.com/mmuldo/colorlab/lut"
	"github.com/mmuldo/colorlab/session"
)

var previewPath string

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate TARGET SOURCE",
	Short: "Generates a LUT that grades SOURCE toward the look of TARGET",
	Long: `Generates a LUT that grades SOURCE toward the look of TARGET.

The Lab statistics of TARGET (resized to SOURCE's dimensions) and SOURCE are
matched channel by channel, sampled on a size x size x size grid and written
to the output folder as a .cube file. With --preview, SOURCE graded through
the new LUT is written as an image as well.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", ".", "output folder for the .cube file")
	generateCmd.Flags().StringP("name", "n", session.DefaultName, "output file name (.cube is appended when missing)")
	generateCmd.Flags().IntP("size", "s", lut.DefaultSize, "LUT grid size")
	generateCmd.Flags().Int("preview-width", session.DefaultPreviewWidth, "preview width (0 keeps the source size)")
	generateCmd.Flags().Int("preview-height", session.DefaultPreviewHeight, "preview height (0 keeps the source size)")
	generateCmd.Flags().StringVarP(&previewPath, "preview", "p", "", "write the graded preview to this .png, .jpg or .gif file")

	mustBind(keyOutput, generateCmd, "output")
	mustBind(keyName, generateCmd, "name")
	mustBind(keySize, generateCmd, "size")
	mustBind(keyPreviewWidth, generateCmd, "preview-width")
	mustBind(keyPreviewHeight, generateCmd, "preview-height")
}

func generate(target, source string) error {
	s := session.New()
	s.Options = options()

	var e error
	if s.TargetPath, e = expand(target); e != nil {
		return e
	}
	if s.SourcePath, e = expand(source); e != nil {
		return e
	}
	if s.OutputDir, e = expand(viper.GetString(keyOutput)); e != nil {
		return e
	}

	r, e := s.Generate()
	if e != nil {
		return e
	}
	log.Printf("built %d³ LUT, mean ΔE2000 %.2f", r.Grid.Size(), r.Grid.MeanDeltaE())

	path, e := s.Save(viper.GetString(keyName))
	if e != nil {
		return e
	}
	log.Printf("LUT saved to %s", path)

	if previewPath != "" {
		p, e := expand(previewPath)
		if e != nil {
			return e
		}
		if e := image.Save(r.Preview, p); e != nil {
			return e
		}
		log.Printf("preview saved to %s", p)
	}

	return nil
}
