package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const maxExportWorkers = 4

func exportCommand(deps mainDeps) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the workout log as GPX or as one FIT file per workout",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "gpx",
				Usage: "gpx or fit",
			},
			&cli.StringFlag{
				Name:  "output",
				Value: ".",
				Usage: "directory the files are written to",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			be, err := deps.openBackend(c.Context, cfg)
			if err != nil {
				return err
			}
			defer be.close()

			workouts := workout.NewStore(c.Context, be.store, cfg.StoreKey).All()
			dir := c.String("output")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			switch c.String("format") {
			case "gpx":
				return exportGPX(workouts, dir)
			case "fit":
				return exportFIT(workouts, dir)
			}
			return fmt.Errorf("unknown export format %q", c.String("format"))
		},
	}
}

func exportGPX(workouts []workout.Workout, dir string) error {
	body, err := workout.GPX(workouts)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "workouts.gpx")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("workouts", len(workouts)).Msg("exported")
	return nil
}

// exportFIT writes <id>.fit per workout. Of workouts sharing an id the last
// one logged wins.
func exportFIT(workouts []workout.Workout, dir string) error {
	byID := make(map[string]workout.Workout, len(workouts))
	for _, w := range workouts {
		byID[w.ID] = w
	}

	var g errgroup.Group
	g.SetLimit(maxExportWorkers)
	for _, w := range byID {
		w := w
		g.Go(func() error {
			body, err := workout.FIT(w)
			if err != nil {
				return fmt.Errorf("workout %s: %w", w.ID, err)
			}
			return os.WriteFile(filepath.Join(dir, w.ID+".fit"), body, 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Int("files", len(byID)).Msg("exported")
	return nil
}
