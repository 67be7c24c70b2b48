package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/smwgfx"
	"github.com/bodgit/smwgfx/bpp"
	"github.com/urfave/cli/v2"
)

const defaultDB = "smwgfx.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

type operation func(*smwgfx.GFX, string, bpp.Format, smwgfx.Options) error

func action(op operation, scaled bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 2 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		f, err := bpp.Parse(c.Args().Get(1))
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if scaled && c.Int("scale") < 1 {
			return cli.NewExitError(errors.New("scale must be at least 1"), 1)
		}

		logger := smwgfx.NewLogger(log.New(os.Stderr, "", 0), c.Bool("verbose"))

		var db *smwgfx.Catalog
		if file := c.String("db"); file != "" {
			db, err = smwgfx.NewCatalog(file)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			defer db.Close()
		}

		opts := smwgfx.Options{
			Scale:     c.Int("scale"),
			Jobs:      c.Int("jobs"),
			Print:     c.Bool("print"),
			Output:    os.Stdout,
			Overwrite: c.Bool("force"),
			Tiles:     c.Int("tiles"),
		}

		if err := op(smwgfx.New(db, logger), c.Args().First(), f, opts); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "smwgfx"
	app.Usage = "SNES planar tile graphics converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SMWGFX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to sheet cache, empty to disable",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	scaleFlag := &cli.IntFlag{
		Name:    "scale",
		EnvVars: []string{"SMWGFX_SCALE"},
		Value:   smwgfx.DefaultScale,
		Usage:   "size of each tile pixel in the sheet",
	}
	jobsFlag := &cli.IntFlag{
		Name:  "jobs",
		Usage: "number of files to process at once (default: number of CPUs)",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "decode",
			Usage:       "Render .bin files as PNG sheets",
			Description: "PATH is a .bin file or a directory of them, FORMAT is the number of bitplanes, 1 to 4.",
			ArgsUsage:   "PATH FORMAT",
			Flags: []cli.Flag{
				scaleFlag,
				jobsFlag,
				&cli.BoolFlag{
					Name:  "print",
					Usage: "print a preview of each file to the terminal",
				},
			},
			Action: action((*smwgfx.GFX).Decode, true),
		},
		{
			Name:        "encode",
			Usage:       "Convert PNG sheets back to .bin files",
			Description: "PATH is a .png file or a directory of them, FORMAT is the number of bitplanes, 1 to 4.",
			ArgsUsage:   "PATH FORMAT",
			Flags: []cli.Flag{
				scaleFlag,
				jobsFlag,
				&cli.BoolFlag{
					Name:    "force",
					Aliases: []string{"f"},
					Usage:   "overwrite existing .bin files",
				},
				&cli.IntFlag{
					Name:  "tiles",
					Usage: "number of tiles to keep, 0 keeps every cell of the sheet",
				},
			},
			Action: action((*smwgfx.GFX).Encode, true),
		},
		{
			Name:        "verify",
			Usage:       "Check .bin files survive decoding and encoding",
			Description: "PATH is a .bin file or a directory of them, FORMAT is the number of bitplanes, 1 to 4.",
			ArgsUsage:   "PATH FORMAT",
			Flags: []cli.Flag{
				jobsFlag,
			},
			Action: action((*smwgfx.GFX).Verify, false),
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
