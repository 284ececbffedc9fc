/*
Copyright © 2019 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mmuldo/colorlab/image"
	"github.com/mmuldo/colorlab/lut"
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply LUT IMAGE OUT",
	Short: "Grades IMAGE through a .cube LUT",
	Long: `Grades IMAGE through a .cube LUT and writes the result to OUT.

Every pixel takes the colour of its nearest LUT node; there is no
interpolation, so the result matches the preview written by generate.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return apply(args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func apply(cube, in, out string) error {
	paths := []*string{&cube, &in, &out}
	for _, p := range paths {
		x, e := expand(*p)
		if e != nil {
			return e
		}
		*p = x
	}

	g, e := lut.Load(cube)
	if e != nil {
		return e
	}
	f, e := image.Load(in)
	if e != nil {
		return e
	}

	graded, e := lut.Apply(f, g)
	if e != nil {
		return e
	}
	if e := image.Save(graded, out); e != nil {
		return e
	}

	log.Printf("applied %d³ LUT %s to %s, wrote %s", g.Size(), cube, in, out)
	return nil
}
