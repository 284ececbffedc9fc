/*
Copyright © 2019 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmuldo/colorlab/lut"
	"github.com/mmuldo/colorlab/session"
)

// configuration keys
const (
	keySize          = "size"
	keyOutput        = "output"
	keyName          = "name"
	keyPreviewWidth  = "preview.width"
	keyPreviewHeight = "preview.height"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "colorlab",
	Short: "Generates Lab colour-transfer LUTs",
	Long: `colorlab grades a source image toward the look of a target image.

It matches the mean and spread of every Lab channel of the source to the
target's, samples that transfer on a 3D grid and writes it as a .cube LUT
that other tools can load.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if e := rootCmd.Execute(); e != nil {
		log.Fatal(e)
	}
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("colorlab: ")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.colorlab.yaml)")

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keySize, lut.DefaultSize)
	v.SetDefault(keyOutput, ".")
	v.SetDefault(keyName, session.DefaultName)
	v.SetDefault(keyPreviewWidth, session.DefaultPreviewWidth)
	v.SetDefault(keyPreviewHeight, session.DefaultPreviewHeight)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, e := homedir.Dir()
		if e != nil {
			log.Printf("locating home directory: %v", e)
		} else {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".colorlab")
	}

	viper.SetEnvPrefix("colorlab")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if e := viper.ReadInConfig(); e == nil {
		log.Printf("using config file %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Fatal(fmt.Errorf("reading config %s: %w", cfgFile, e))
	}
}

// expand resolves a leading ~ in user-supplied paths.
func expand(path string) (string, error) {
	p, e := homedir.Expand(path)
	if e != nil {
		return "", fmt.Errorf("expanding %q: %w", path, e)
	}
	return p, nil
}

// options reads the generation options from the configuration.
func options() session.Options {
	return session.Options{
		Size:          viper.GetInt(keySize),
		PreviewWidth:  viper.GetInt(keyPreviewWidth),
		PreviewHeight: viper.GetInt(keyPreviewHeight),
	}
}

func mustBind(key string, cmd *cobra.Command, flag string) {
	if e := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(1)
	}
}
