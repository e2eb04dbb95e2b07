package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hesusruiz/markfmt/markup"
)

// defaultConfigFileName is picked up from the current directory when no
// --config flag is given.
const defaultConfigFileName = ".markfmt.yaml"

var debug bool

// loadConfiguration builds the formatting configuration from the config
// file (if any) and the command line flags, flags winning.
func loadConfiguration(c *cli.Context, sugar *zap.SugaredLogger) (*markup.Configuration, error) {

	config := markup.DefaultConfiguration()

	// An explicit --config file must exist, the implicit one is optional
	configFileName := c.String("config")
	if configFileName != "" {
		cf, err := markup.ConfigurationFromFile(configFileName)
		if err != nil {
			return nil, err
		}
		config = cf
	} else if _, err := os.Stat(defaultConfigFileName); err == nil {
		cf, err := markup.ConfigurationFromFile(defaultConfigFileName)
		if err != nil {
			return nil, err
		}
		config = cf
		sugar.Debugw("configuration file loaded", "file", defaultConfigFileName)
	}

	if c.IsSet("width") {
		config.LineWidth = uint32(c.Uint("width"))
	}
	if c.IsSet("indent") {
		config.IndentWidth = uint8(c.Uint("indent"))
	}

	return config, nil
}

// formatFile formats one file in place, or into outputFileName when it is
// not empty. The file is rewritten only when its contents change.
func formatFile(inputFileName string, outputFileName string, config *markup.Configuration, sugar *zap.SugaredLogger) error {

	raw, err := os.ReadFile(inputFileName)
	if err != nil {
		return err
	}

	pretty, err := markup.Format(string(raw), config)
	if err != nil {
		return fmt.Errorf("%s: %w", inputFileName, err)
	}

	if outputFileName == "" {
		outputFileName = inputFileName
	}

	// Avoid touching the file when it is already canonical
	if outputFileName == inputFileName && string(raw) == pretty {
		sugar.Debugw("already canonical", "file", inputFileName)
		return nil
	}

	return os.WriteFile(outputFileName, []byte(pretty), 0664)
}

// checkFile reports whether the file is already in canonical form,
// printing a diff when it is not.
func checkFile(inputFileName string, config *markup.Configuration) (bool, error) {

	raw, err := os.ReadFile(inputFileName)
	if err != nil {
		return false, err
	}

	pretty, err := markup.Format(string(raw), config)
	if err != nil {
		return false, fmt.Errorf("%s: %w", inputFileName, err)
	}

	if diff := cmp.Diff(string(raw), pretty); diff != "" {
		fmt.Printf("%s is not formatted (-current +formatted):\n%s", inputFileName, diff)
		return false, nil
	}

	return true, nil
}

// processWatch checks periodically if the input file has been modified,
// and if so formats it again
func processWatch(inputFileName string, outputFileName string, config *markup.Configuration, sugar *zap.SugaredLogger) error {

	var old_timestamp time.Time
	var current_timestamp time.Time

	// Loop forever
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if old_timestamp.Before(current_timestamp) {
			fmt.Println("************Formatting*************")
			if err := formatFile(inputFileName, outputFileName, config, sugar); err != nil {
				sugar.Errorw("formatting failed", "file", inputFileName, "error", err)
			}

			// Formatting in place updates the timestamp, so record the
			// one after the write or we would format forever
			if info, err := os.Stat(inputFileName); err == nil {
				current_timestamp = info.ModTime()
			}
			old_timestamp = current_timestamp
		}

		// Check again in one second
		time.Sleep(1 * time.Second)

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	debug = c.Bool("debug")

	var z *zap.Logger
	var err error

	// Setup the logging system
	if debug {
		z, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		z, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	config, err := loadConfiguration(c, sugar)
	if err != nil {
		return err
	}

	// Without arguments, act as a filter from stdin to stdout
	if !c.Args().Present() {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		pretty, err := markup.Format(string(raw), config)
		if err != nil {
			return err
		}
		_, err = io.WriteString(os.Stdout, pretty)
		return err
	}

	inputFileNames := c.Args().Slice()
	outputFileName := c.String("output")

	if outputFileName != "" && len(inputFileNames) > 1 {
		return errors.New("--output can only be used with a single input file")
	}

	// Loop forever reformatting the file on every change
	if c.Bool("watch") {
		if len(inputFileNames) > 1 {
			return errors.New("--watch can only be used with a single input file")
		}
		return processWatch(inputFileNames[0], outputFileName, config, sugar)
	}

	if c.Bool("check") {
		clean := true
		for _, inputFileName := range inputFileNames {
			ok, err := checkFile(inputFileName, config)
			if err != nil {
				return err
			}
			clean = clean && ok
		}
		if !clean {
			return cli.Exit("at least one file is not formatted", 1)
		}
		return nil
	}

	for _, inputFileName := range inputFileNames {
		if err := formatFile(inputFileName, outputFileName, config, sugar); err != nil {
			return err
		}
	}

	return nil
}

func main() {

	app := &cli.App{
		Name:     "markfmt",
		Version:  "v0.01",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "reformat markup files into a canonical layout",
		UsageText: "markfmt [options] [INPUT_FILE...] (reads stdin when no file is given)",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `FILE` instead of rewriting the input in place",
			},
			&cli.UintFlag{
				Name:  "width",
				Usage: "maximum line `WIDTH` (default 80, or lineWidth from the config file)",
			},
			&cli.UintFlag{
				Name:  "indent",
				Usage: "indentation unit in `COLUMNS` (default 2, or indentWidth from the config file)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "read the configuration from `FILE` instead of " + defaultConfigFileName,
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "do not write anything, fail with a diff for every file that is not canonical",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}

}
