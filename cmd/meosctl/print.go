package main

import (
	"flag"
	"fmt"

	"github.com/mobilitydb/meos-go/persist"
	"github.com/mobilitydb/meos-go/temporal"
	"github.com/mobilitydb/meos-go/wkt"
)

func loadTemporal(path string, compress bool) (*temporal.Temporal, error) {
	if compress {
		return persist.LoadCompressed(path)
	}
	return persist.Load(path)
}

func cmdPrint(argv []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	compressFlag := fs.Bool("compress", false, "read a snappy-compressed file")
	fs.Parse(argv)
	if fs.NArg() != 1 {
		return fmt.Errorf("print takes a single path, got %v", fs.Args())
	}
	t, err := loadTemporal(fs.Arg(0), *compressFlag)
	if err != nil {
		return err
	}
	s, err := wkt.Print(t, nil)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}
