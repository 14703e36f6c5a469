// Command tidal-elevations computes tidal elevations at the times and
// positions of an input CSV and writes them to an output CSV.
//
// Input columns: Modified Julian Day, latitude, longitude and an
// optional height above the ellipsoid. Output columns: time, latitude,
// longitude and tidal elevation in meters, with unresolvable points
// carrying the fill value.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mqquiroz/pyTMD/internal/adapter/csvio"
	"github.com/mqquiroz/pyTMD/internal/adapter/deltat"
	"github.com/mqquiroz/pyTMD/internal/tidemodel"
	"github.com/mqquiroz/pyTMD/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dirFlag  string
		tideFlag string
		modeFlag string
	)

	cmd := &cobra.Command{
		Use:          "tidal-elevations [flags] input.csv output.csv",
		Short:        "Compute tidal elevations for a CSV of times and positions",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: false,
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := strconv.ParseUint(modeFlag, 8, 32)
			if err != nil {
				return fmt.Errorf("invalid mode %q: %w", modeFlag, err)
			}
			input := args[0]
			output := args[1]
			dataDir := dirFlag
			if dataDir == "" {
				dataDir = filepath.Dir(input)
			}
			return run(dataDir, tideFlag, input, output, fs.FileMode(mode))
		},
	}
	cmd.Flags().StringVarP(&dirFlag, "directory", "D", "", "working data directory (default: directory of the input file)")
	cmd.Flags().StringVarP(&tideFlag, "tide", "T", "CATS2008", "tide model to use")
	cmd.Flags().StringVarP(&modeFlag, "mode", "M", "0775", "permission mode of the output file (octal)")
	return cmd
}

func run(dataDir, model, input, output string, mode fs.FileMode) error {
	desc, err := tidemodel.Lookup(model)
	if err != nil {
		return err
	}

	points, err := csvio.ReadPointsFile(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var dt usecase.DeltaTimeSource
	if desc.RequiresDeltaTime {
		table, err := deltat.Load(filepath.Join(dataDir, "deltat.data"))
		if err != nil {
			return fmt.Errorf("loading delta time table: %w", err)
		}
		dt = table
	}

	source, err := usecase.OpenSource(desc, dataDir)
	if err != nil {
		return fmt.Errorf("opening model %s: %w", model, err)
	}
	pipeline, err := usecase.NewPipeline(desc, source, dt)
	if err != nil {
		return err
	}

	obs := make([]usecase.ObservationPoint, len(points))
	for i, p := range points {
		obs[i] = usecase.ObservationPoint{MJD: p.MJD, Lat: p.Lat, Lon: p.Lon}
	}
	res, err := pipeline.Predict(obs)
	if err != nil {
		return err
	}
	if res.OmittedMinorTerms > 0 {
		log.Printf("%s: %d minor constituent terms omitted for lack of admittance sources",
			model, res.OmittedMinorTerms)
	}

	if err := csvio.WriteResultsFile(output, points, res.Elevation, mode); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
