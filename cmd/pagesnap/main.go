// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pagesnap CLI, which rasterizes
// PDF pages into jpg, png, or webp image files.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagesnap/internal/convert"
	"github.com/pdiddy/pagesnap/internal/secrets"
	"github.com/pdiddy/pagesnap/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir is where the optional pdf-password file lives.
const secretsDir = ".secrets/"

// Exit codes. Usage errors, document errors, and output errors are
// distinguished so scripts can react per class.
const (
	exitFailure          = 1
	exitInvalidParameter = 2
	exitDocument         = 3
	exitOutput           = 4
)

var rootCmd = &cobra.Command{
	Use:   "pagesnap [flags] <pdf>",
	Short: "Convert PDF pages to jpg, png, or webp images",
	Long: `pagesnap rasterizes each page of a PDF document into an image file.
Resolution, page range, output format, grayscale conversion, and a maximum
output dimension are configurable. Encrypted documents are supported via
--password or a .secrets/pdf-password file.

Defaults for dpi, format, quality, and the filename template can also come
from ./pagesnap.yaml (or ~/.config/pagesnap/config.yaml) and PAGESNAP_*
environment variables; flags take precedence.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.StringP("out-dir", "o", "", "output directory (default: <pdf name> next to the input)")
	flags.Int("dpi", types.DefaultDPI, "render resolution in dots per inch")
	flags.String("format", string(types.FormatJPG), "output image format: jpg, png, or webp")
	flags.Int("quality", types.DefaultQuality, "jpg/webp quality in [1,100]; ignored for png")
	flags.Int("start", 0, "first page to convert (1-based, inclusive; default: first)")
	flags.Int("end", 0, "last page to convert (1-based, inclusive; default: last)")
	flags.String("password", "", "password for encrypted documents")
	flags.Bool("grayscale", false, "convert output images to grayscale")
	flags.Int("max-dim", 0, "downscale so the longest side equals this many pixels")
	flags.Bool("overwrite", true, "overwrite existing output files")
	flags.String("template", types.DefaultTemplate, "filename template with {stem} and {page} tokens")
	flags.Bool("verbose", false, "enable debug logging")
	flags.Bool("no-progress", false, "disable the progress bar")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pagesnap.yaml or ~/.config/pagesnap/config.yaml)")

	// Config file and environment provide defaults for these; explicit
	// flags still win.
	for _, name := range []string{"dpi", "format", "quality", "template"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pagesnap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pagesnap"))
		}
	}

	viper.SetEnvPrefix("PAGESNAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if noProgress {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Rendering pages"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}
		_ = bar.Add(1)
	}

	outcome, err := convert.Convert(req, logger, progress)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d image(s) to: %s\n", len(outcome.Pages), outcome.OutDir)
	return nil
}

// requestFromFlags builds the conversion request from flags, viper-backed
// defaults, and the secrets directory.
func requestFromFlags(cmd *cobra.Command, pdfPath string) (types.Request, error) {
	flags := cmd.Flags()
	req := types.NewRequest(pdfPath)

	req.OutDir, _ = flags.GetString("out-dir")
	req.DPI = viper.GetInt("dpi")
	req.Quality = viper.GetInt("quality")
	req.Template = viper.GetString("template")

	rawFormat := viper.GetString("format")
	if f, ok := types.ParseFormat(rawFormat); ok {
		req.Format = f
	} else {
		// Keep the raw value so the pipeline rejects it naming the field.
		req.Format = types.Format(rawFormat)
	}

	req.Start, _ = flags.GetInt("start")
	req.End, _ = flags.GetInt("end")
	// Zero means "unset" in the request, so an explicit --start 0 must be
	// caught here.
	if flags.Changed("start") && req.Start < 1 {
		return req, convert.ParameterError("start", "must be a positive page number, got %d", req.Start)
	}
	if flags.Changed("end") && req.End < 1 {
		return req, convert.ParameterError("end", "must be a positive page number, got %d", req.End)
	}

	req.Overwrite, _ = flags.GetBool("overwrite")
	req.Grayscale, _ = flags.GetBool("grayscale")
	req.MaxDim, _ = flags.GetInt("max-dim")

	req.Password, _ = flags.GetString("password")
	if req.Password == "" {
		req.Password = secrets.Password(secretsDir)
	}

	return req, nil
}

// exitCode maps classified pipeline errors onto the CLI exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, convert.ErrInvalidParameter):
		return exitInvalidParameter
	case errors.Is(err, convert.ErrDocumentNotFound),
		errors.Is(err, convert.ErrDocumentCorrupt),
		errors.Is(err, convert.ErrDocumentEncrypted):
		return exitDocument
	case errors.Is(err, convert.ErrFileExists),
		errors.Is(err, convert.ErrWriteFailure):
		return exitOutput
	}
	return exitFailure
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
