package main

import (
	"flag"
	"fmt"

	"github.com/mobilitydb/meos-go/persist"
	"github.com/mobilitydb/meos-go/wkt"
)

func cmdParse(argv []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	typeFlag := fs.String("type", "", "base type of the literal (bool, int4, float8, text, geometry2d, geometry3d, geography2d, geography3d)")
	compressFlag := fs.Bool("compress", false, "snappy-compress the persisted file")
	fs.Parse(argv)
	if fs.NArg() != 2 {
		return fmt.Errorf("parse takes <wkt> <destpath>, got %v", fs.Args())
	}
	if *typeFlag == "" {
		return fmt.Errorf("-type is required")
	}
	bt, err := baseTypeByName(*typeFlag)
	if err != nil {
		return err
	}
	t, err := wkt.Parse(fs.Arg(0), bt, nil, nil)
	if err != nil {
		return err
	}
	if *compressFlag {
		return persist.SaveCompressed(fs.Arg(1), t)
	}
	return persist.Save(fs.Arg(1), t)
}
