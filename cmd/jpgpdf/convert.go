package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bmharper/jpgpdf"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-dir> <output.pdf>",
	Short: "Write the images in a directory into a PDF",
	Long: `Convert reads every file in input-dir whose name ends with the suffix
(".jpg" by default, case-sensitive), in filename order, and writes them as
the pages of output.pdf. The output file is only replaced once the whole
document has been written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOptions()
		opts.Log = cmd.OutOrStdout()
		_, err := jpgpdf.Convert(args[0], args[1], opts)
		return err
	},
}

// Build conversion options from flags, environment, and config file
func convertOptions() jpgpdf.Options {
	opts := jpgpdf.DefaultOptions()
	opts.DPI = viper.GetInt("dpi")
	opts.Quality = viper.GetInt("quality")
	opts.Suffix = viper.GetString("suffix")
	opts.Optimize = viper.GetBool("optimize")
	opts.Straighten = viper.GetBool("straighten")
	opts.MaxAngle = viper.GetFloat64("max_angle")
	opts.Verbose = viper.GetBool("verbose")
	return opts
}

func init() {
	flags := convertCmd.Flags()
	flags.Int("dpi", jpgpdf.DefaultDPI, "resolution of the pages, in image pixels per inch")
	flags.Int("quality", jpgpdf.DefaultQuality, "JPEG quality of the embedded images (1-100)")
	flags.String("suffix", jpgpdf.DefaultSuffix, "filename suffix of the images to include")
	flags.Bool("optimize", true, "optimize the PDF after it is built")
	flags.Bool("straighten", false, "deskew pages and rotate them upright")
	flags.Float64("max-angle", jpgpdf.DefaultMaxAngle, "largest skew angle in degrees to correct when straightening")

	viper.BindPFlag("dpi", flags.Lookup("dpi"))
	viper.BindPFlag("quality", flags.Lookup("quality"))
	viper.BindPFlag("suffix", flags.Lookup("suffix"))
	viper.BindPFlag("optimize", flags.Lookup("optimize"))
	viper.BindPFlag("straighten", flags.Lookup("straighten"))
	viper.BindPFlag("max_angle", flags.Lookup("max-angle"))

	rootCmd.AddCommand(convertCmd)
}
