package store

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/vdp"
)

const (
	// PaletteExt is the extension of raw VDP palette files.
	PaletteExt = ".pal"
	// TilesExt is the extension of raw VDP tile files.
	TilesExt = ".til"
	// MappingExt is the extension of raw VDP name table files.
	MappingExt = ".map"

	workers = 4
)

func (db *DB) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (db *DB) importFile(file string) error {
	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case PaletteExt, TilesExt, MappingExt:
	default:
		return nil
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case PaletteExt:
		var p vdp.Palette
		b, err := ioutil.ReadAll(f)
		if err != nil {
			return err
		}
		if err := p.UnmarshalBinary(b); err != nil {
			return err
		}
		return db.AddPalette(name, p)
	case TilesExt:
		tiles, err := vdp.ReadTiles(f)
		if err != nil {
			return err
		}
		_, err = db.AddTiles(name, tiles)
		return err
	default:
		entries, err := vdp.ReadMapping(f)
		if err != nil {
			return err
		}
		return db.AddMapping(name, entries)
	}
}

func (db *DB) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := db.importFile(file); err != nil {
				db.logger.Printf("Unable to import \"%s\": %v\n", file, err)
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and imports every palette, tile and name table file found
// into the library, named after the file without its extension.
func (db *DB) Scan(ctx context.Context, path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := db.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := db.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
