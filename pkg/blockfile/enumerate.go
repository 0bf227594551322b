// Package blockfile enumerates and decodes the blkNNNNN.dat files a full
// node writes to disk. It is the filesystem-enumeration collaborator spec.md
// calls out as external to the core: the core's Decode only ever consumes
// an abstract byte buffer, never a directory.
package blockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"chain-lens/pkg/bitreader"
	"chain-lens/pkg/block"
)

// minTrailingBytes is the smallest remaining-byte count (magic + size +
// header) for which another block record could possibly start; fewer bytes
// than this means the file has ended.
const minTrailingBytes = 4 + 4 + block.HeaderSize

// paddingBytes is the block-file format's trailing slack between one
// block's payload and the next record's magic number.
const paddingBytes = 4

// FileName returns the conventional blkNNNNN.dat name for ordinal n within
// dir, zero-padded to five digits.
func FileName(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("blk%05d.dat", n))
}

// BlockHandler is called once per successfully decoded block, in on-disk
// order, while enumerating a directory of block files.
type BlockHandler func(b *block.Block) error

// EnumerateDir reads blkNNNNN.dat files from dir in ascending ordinal order,
// starting at 00000, until the next ordinal's file does not exist. Every
// block record in a file is decoded and passed to handle before moving to
// the next file. A decode error aborts the whole run, per spec §7.
func EnumerateDir(dir string, handle BlockHandler) error {
	for n := 0; ; n++ {
		path := FileName(dir, n)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
		if err := EnumerateFile(path, handle) ; err != nil {
			return err
		}
	}
}

// EnumerateFile decodes every block record in the file at path, in order,
// passing each to handle.
func EnumerateFile(path string, handle BlockHandler) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	r := bitreader.New(data)
	for r.Len() >= minTrailingBytes {
		b, err := block.Decode(r, path)
		if err != nil {
			return err
		}
		if err := r.Advance(paddingBytes); err != nil {
			return err
		}
		if err := handle(b); err != nil {
			return fmt.Errorf("handling block from %s: %w", path, err)
		}
	}
	return nil
}
