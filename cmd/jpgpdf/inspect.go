package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/bmharper/jpgpdf"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Print the pages of a PDF",
	Long: `Inspect prints the page count of a PDF, and for every page its size in
points, the size and channel count of the embedded image, and the average
color of the rendered page.

With --dump-dir, the embedded image of every page is also written out as a
JPEG, so that the pages can be flipped through and checked visually.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dumpDir, _ := cmd.Flags().GetString("dump-dir")
		return inspect(cmd.OutOrStdout(), args[0], format, dumpDir)
	},
}

func inspect(w io.Writer, filename, format, dumpDir string) error {
	doc, err := jpgpdf.Open(filename)
	if err != nil {
		return err
	}
	defer doc.Close()
	doc.Verbose = viper.GetBool("verbose")
	doc.Log = os.Stderr

	report, err := doc.Report()
	if err != nil {
		return err
	}
	report.Path = filename

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	case "text", "":
		writeReport(w, report)
	default:
		return fmt.Errorf("unknown format %q (expected text or yaml)", format)
	}

	if dumpDir != "" {
		return dumpImages(doc, filename, dumpDir)
	}
	return nil
}

func writeReport(w io.Writer, report *jpgpdf.Report) {
	fmt.Fprintf(w, "%v: %v pages", report.Path, report.NumPages)
	if report.ImageOnly {
		fmt.Fprintf(w, " (images only)")
	}
	fmt.Fprintln(w)
	for _, p := range report.Pages {
		fmt.Fprintf(w, "%4v  %7.1f x %-7.1f pt  %5v x %-5v px  %v ch  rgb(%v,%v,%v)\n",
			p.Number, p.WidthPt, p.HeightPt, p.ImageWidth, p.ImageHeight, p.Channels,
			p.MeanColor[0], p.MeanColor[1], p.MeanColor[2])
	}
}

// Write the image of every page into dumpDir
func dumpImages(doc *jpgpdf.Document, filename, dumpDir string) error {
	if err := os.MkdirAll(dumpDir, 0755); err != nil {
		return err
	}
	base := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	for page := 0; page < doc.NumPages; page++ {
		raw, _, err := doc.PageImage(page)
		if err != nil {
			return err
		}
		outputFile := filepath.Join(dumpDir, fmt.Sprintf("%v_%03d.jpg", strings.TrimSuffix(base, filepath.Ext(base)), page+1))
		if err := os.WriteFile(outputFile, raw, 0644); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	inspectCmd.Flags().String("format", "text", "output format: text or yaml")
	inspectCmd.Flags().String("dump-dir", "", "write the image of every page into this directory")

	rootCmd.AddCommand(inspectCmd)
}
