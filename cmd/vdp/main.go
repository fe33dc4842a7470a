package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/vdp"
	"github.com/bodgit/vdp/store"
	"github.com/bodgit/vdp/tileset"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/urfave/cli/v2"
)

const defaultDB = "vdp.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func printPalette(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	b, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := vdp.DecodePalette(b, vdp.Variable)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for i, pc := range p.Colors() {
		hex := "#000000"
		if cf, ok := colorful.MakeColor(pc); ok {
			hex = cf.Hex()
		}
		fmt.Fprintf(c.App.Writer, "%2d %s %s\n", i, pc, hex)
	}

	return nil
}

func printTiles(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	tiles, err := vdp.ReadTiles(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for i, t := range tiles {
		fmt.Fprintf(c.App.Writer, "Tile %d\n%s\n", i, t)
	}

	return nil
}

func printMapping(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	entries, err := vdp.ReadMapping(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for i, e := range entries {
		fmt.Fprintf(c.App.Writer, "%4d %s\n", i, e)
	}

	return nil
}

func dedupe(c *cli.Context) error {
	if c.NArg() < 3 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	palette := c.Uint("palette")
	if palette > 3 {
		return cli.NewExitError(fmt.Sprintf("invalid palette index %d", palette), 1)
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	tiles, err := vdp.ReadTiles(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	s := tileset.New(tileset.WithFlips(c.Bool("flips")), tileset.WithBlank(c.Bool("blank")))
	entries := make([]vdp.MappingEntry, len(tiles))
	for i, t := range tiles {
		if entries[i], err = s.Add(t, uint8(palette)); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	logger.Printf("Reduced %d tiles to %d\n", len(tiles), s.Len())

	b := new(bytes.Buffer)
	if err := vdp.WriteTiles(b, s.Tiles()); err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := ioutil.WriteFile(c.Args().Get(1), b.Bytes(), 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	b.Reset()
	if err := vdp.WriteMapping(b, entries); err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := ioutil.WriteFile(c.Args().Get(2), b.Bytes(), 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := store.New(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	if err := db.Scan(context.Background(), c.Args().First()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "vdp"
	app.Usage = "Sega Genesis/Mega Drive VDP graphics utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"VDP_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "palette",
			Usage:     "Print the colors in a VDP palette",
			ArgsUsage: "FILE",
			Action:    printPalette,
		},
		{
			Name:      "tiles",
			Usage:     "Print the pixels of each VDP tile",
			ArgsUsage: "FILE",
			Action:    printTiles,
		},
		{
			Name:      "mapping",
			Usage:     "Print the entries of a VDP name table",
			ArgsUsage: "FILE",
			Action:    printMapping,
		},
		{
			Name:        "dedupe",
			Usage:       "Remove duplicate tiles and generate a name table",
			Description: "Reads a run of tiles from IN, writes the unique tiles to TILES and a name table referencing them to MAP",
			ArgsUsage:   "IN TILES MAP",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "flips",
					Usage: "match horizontally and vertically flipped tiles",
				},
				&cli.BoolFlag{
					Name:  "blank",
					Usage: "reserve tile 0 for the blank tile",
				},
				&cli.UintFlag{
					Name:  "palette",
					Value: 0,
					Usage: "palette index used by every name table entry",
				},
			},
			Action: dedupe,
		},
		{
			Name:      "scan",
			Usage:     "Import palettes, tiles and name tables into the database",
			ArgsUsage: "DIRECTORY",
			Action:    scan,
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
