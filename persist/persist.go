// Package persist saves and loads the binary layout (temporal.MarshalBinary)
// to and from disk: a plain mmap-backed load for the common case where the
// caller controls the file and wants zero-copy access to the page cache, and
// a snappy-framed save/load pair for archival storage where size matters
// more than load latency.
package persist

import (
	"io/ioutil"
	"os"

	"github.com/golang/snappy"
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"

	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/temporal"
)

// Save writes t's binary layout to path, truncating any existing file.
func Save(path string, t *temporal.Temporal) error {
	const op = "persist.Save"
	data, err := t.MarshalBinary()
	if err != nil {
		return merr.Wrap(op, merr.InvalidArgType, err, "marshalling %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return merr.Wrap(op, merr.InvalidArgValue, err, "creating %s", path)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return merr.Wrap(op, merr.InvalidArgValue, err, "writing %s", path)
	}
	return nil
}

// Load mmaps path read-only and decodes it in place, avoiding the extra copy
// a plain read(2)-into-buffer would cost for a large layout. The mapping is
// unmapped again once the decode has finished walking it; the returned
// Temporal holds no reference back into the file.
func Load(path string, options ...temporal.Option) (*temporal.Temporal, error) {
	const op = "persist.Load"
	f, err := os.Open(path)
	if err != nil {
		return nil, merr.Wrap(op, merr.InvalidArgValue, err, "opening %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, merr.Wrap(op, merr.InvalidArgValue, err, "stat %s", path)
	}
	size := fi.Size()
	if size == 0 {
		return nil, merr.New(op, merr.InvalidArgValue, "%s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, merr.Wrap(op, merr.InvalidArgValue, err, "mmap %s", path)
	}
	defer func() {
		if err := unix.Munmap(data); err != nil {
			log.Error.Printf("persist: munmap %s: %v", path, err)
		}
	}()

	t, err := temporal.UnmarshalBinary(data, options...)
	if err != nil {
		return nil, merr.Wrap(op, merr.TextInput, err, "decoding %s", path)
	}
	return t, nil
}

// SaveCompressed wraps Save's encoding in a snappy frame, for archival
// storage where the block is written once and read rarely.
func SaveCompressed(path string, t *temporal.Temporal) error {
	const op = "persist.SaveCompressed"
	data, err := t.MarshalBinary()
	if err != nil {
		return merr.Wrap(op, merr.InvalidArgType, err, "marshalling %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return merr.Wrap(op, merr.InvalidArgValue, err, "creating %s", path)
	}
	defer f.Close()

	w := snappy.NewBufferedWriter(f)
	if _, err := w.Write(data); err != nil {
		return merr.Wrap(op, merr.InvalidArgValue, err, "writing %s", path)
	}
	if err := w.Close(); err != nil {
		return merr.Wrap(op, merr.InvalidArgValue, err, "closing snappy writer for %s", path)
	}
	return nil
}

// LoadCompressed is the inverse of SaveCompressed. Since the snappy frame
// must be inflated before temporal.UnmarshalBinary can see a contiguous
// block, this path always costs one full copy into memory, unlike Load.
func LoadCompressed(path string, options ...temporal.Option) (*temporal.Temporal, error) {
	const op = "persist.LoadCompressed"
	f, err := os.Open(path)
	if err != nil {
		return nil, merr.Wrap(op, merr.InvalidArgValue, err, "opening %s", path)
	}
	defer f.Close()

	r := snappy.NewReader(f)
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, merr.Wrap(op, merr.InvalidArgValue, err, "inflating %s", path)
	}
	t, err := temporal.UnmarshalBinary(data, options...)
	if err != nil {
		return nil, merr.Wrap(op, merr.TextInput, err, "decoding %s", path)
	}
	return t, nil
}
