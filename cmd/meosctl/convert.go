package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/base/log"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/persist"
	"github.com/mobilitydb/meos-go/wkt"
)

func cmdConvert(argv []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	typeFlag := fs.String("type", "", "base type of every literal in the batch")
	gzipFlag := fs.Bool("gzip", false, "treat srcpath as a gzip-compressed stream")
	compressFlag := fs.Bool("compress", false, "snappy-compress each output file")
	fs.Parse(argv)
	if fs.NArg() != 2 {
		return fmt.Errorf("convert takes <srcpath> <destdir>, got %v", fs.Args())
	}
	if *typeFlag == "" {
		return fmt.Errorf("-type is required")
	}
	bt, err := baseTypeByName(*typeFlag)
	if err != nil {
		return err
	}
	return runConvert(fs.Arg(0), bt, fs.Arg(1), *gzipFlag, *compressFlag)
}

// runConvert reads one WKT literal per line from srcPath (gzip-decompressed
// first when gz is set, mirroring the interval package's gzip
// auto-detection) and writes each as its own persisted file under destDir.
func runConvert(srcPath string, bt basetype.Type, destDir string, gz, compress bool) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if gz {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		r = gr
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n, lineNo := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		t, err := wkt.Parse(line, bt, nil, nil)
		if err != nil {
			log.Error.Printf("meosctl convert: skipping line %d: %v", lineNo, err)
			continue
		}
		destPath := filepath.Join(destDir, shardName(n, compress))
		if compress {
			err = persist.SaveCompressed(destPath, t)
		} else {
			err = persist.Save(destPath, t)
		}
		if err != nil {
			return err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	log.Info.Printf("meosctl convert: wrote %d files to %s", n, destDir)
	return nil
}

func shardName(n int, compress bool) string {
	if compress {
		return fmt.Sprintf("%06d.bin.snappy", n)
	}
	return fmt.Sprintf("%06d.bin", n)
}
