// assetcat reads game assets through the resolver and inspects archives.
//
// Usage:
//
//	go run ./cmd/assetcat -data Data read 'Interface\Icons\INV_Misc_QuestionMark.blp' > icon.blp
//	go run ./cmd/assetcat -data Data -manifest Data/expansions/wotlk/manifest.json dbc Map.dbc
//	go run ./cmd/assetcat list Data/common.MPQ
//	go run ./cmd/assetcat verify Data/expansions/wotlk/manifest.json
//	go run ./cmd/assetcat -o out.MPQ pack extracted/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/udisondev/wowee/internal/asset"
	"github.com/udisondev/wowee/internal/asset/manifest"
	"github.com/udisondev/wowee/internal/asset/mpq"
)

type options struct {
	dataDir  string
	manifest string
	locale   string
	out      string
	compress bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dataDir, "data", "Data", "data directory with archives")
	flag.StringVar(&opts.manifest, "manifest", "", "base manifest layered above the archives")
	flag.StringVar(&opts.locale, "locale", "enUS", "locale archives to open")
	flag.StringVar(&opts.out, "o", "", "output file (read, pack)")
	flag.BoolVar(&opts.compress, "z", true, "compress packed files")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: assetcat [flags] read|dbc|list|verify|pack ARG\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(context.Background(), os.Stdout, opts, flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer, opts options, cmd, arg string) error {
	switch cmd {
	case "read":
		return readAsset(ctx, stdout, opts, arg)
	case "dbc":
		return dumpDBC(ctx, stdout, opts, arg)
	case "list":
		return listArchive(stdout, arg)
	case "verify":
		return verifyManifest(stdout, arg)
	case "pack":
		return packDir(stdout, opts, arg)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openResolver(ctx context.Context, opts options) (*asset.Resolver, error) {
	r, err := asset.Open(ctx, asset.Options{
		DataDir:     opts.dataDir,
		CacheBudget: 64 << 20,
		Archive:     asset.ArchiveOptions{Locale: opts.locale},
	})
	if err != nil {
		return nil, err
	}
	if opts.manifest != "" {
		if err := r.LoadBaseManifest(opts.manifest); err != nil {
			r.Close()
			return nil, err
		}
	}
	return r, nil
}

func readAsset(ctx context.Context, stdout io.Writer, opts options, vpath string) error {
	r, err := openResolver(ctx, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	data, err := r.Read(vpath)
	if err != nil {
		return err
	}
	if opts.out != "" {
		return os.WriteFile(opts.out, data, 0o644)
	}
	_, err = stdout.Write(data)
	return err
}

func dumpDBC(ctx context.Context, stdout io.Writer, opts options, name string) error {
	r, err := openResolver(ctx, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	d, err := r.LoadDBC(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d records, %d fields\n", name, d.RecordCount(), d.FieldCount())
	for i := range min(d.RecordCount(), 10) {
		fields := make([]string, d.FieldCount())
		for f := range fields {
			fields[f] = fmt.Sprint(d.Uint32(i, f))
		}
		fmt.Fprintln(stdout, strings.Join(fields, ","))
	}
	return nil
}

func listArchive(stdout io.Writer, path string) error {
	a, err := mpq.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := a.Files()
	if err != nil {
		return err
	}
	for _, name := range names {
		size, err := a.FileSize(name)
		if err != nil {
			// в listfile бывают имена, которых нет в архиве
			continue
		}
		fmt.Fprintf(stdout, "%10d  %s\n", size, name)
	}
	return nil
}

func verifyManifest(stdout io.Writer, path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	var bad int
	for vpath, e := range m.Entries() {
		data, err := m.ReadFile(vpath)
		switch {
		case err != nil:
			fmt.Fprintf(stdout, "missing  %s: %v\n", vpath, err)
			bad++
		case !e.Verify(data):
			fmt.Fprintf(stdout, "mismatch %s\n", vpath)
			bad++
		}
	}
	fmt.Fprintf(stdout, "%d entries, %d bad\n", m.Len(), bad)
	if bad > 0 {
		return errors.New("manifest verification failed")
	}
	return nil
}

func packDir(stdout io.Writer, opts options, dir string) error {
	if opts.out == "" {
		return errors.New("pack needs -o")
	}
	flags := mpq.WriteFlag(0)
	if opts.compress {
		flags = mpq.WriteCompress
	}

	w := mpq.NewWriter()
	var n int
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		w.Add(strings.ReplaceAll(rel, string(filepath.Separator), `\`), data, flags)
		n++
		return nil
	})
	if err != nil {
		return err
	}
	if err := w.WriteFile(opts.out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "packed %d files into %s\n", n, opts.out)
	return nil
}
