// Command meosctl parses, prints, converts, and exports temporal values from
// the command line, exercising the parse/print/persist stack end to end.
//
// Usage:
//
//	meosctl parse   -type <base type> <wkt> <destpath>
//	meosctl print   <path>
//	meosctl convert -type <base type> <srcpath> <destdir>
//	meosctl export  <path> s3://bucket/key
package main

import (
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: meosctl {parse,print,convert,export} ...")
		os.Exit(2)
	}
	sub, argv := os.Args[1], os.Args[2:]

	var err error
	switch sub {
	case "parse":
		err = cmdParse(argv)
	case "print":
		err = cmdPrint(argv)
	case "convert":
		err = cmdConvert(argv)
	case "export":
		err = cmdExport(argv)
	default:
		fmt.Fprintf(os.Stderr, "meosctl: unknown subcommand %q\n", sub)
		os.Exit(2)
	}
	if err != nil {
		log.Error.Printf("meosctl %s: %v", sub, err)
		os.Exit(1)
	}
}
