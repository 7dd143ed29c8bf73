// Package hashutil computes content digests of files and directory trees.
package hashutil

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"path"
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/types"
	"github.com/zeebo/blake3"
)

// Prefix tags every digest with its algorithm.
const Prefix = "blake3:"

// CalculateFileChecksum returns the BLAKE3 digest of one file.
func CalculateFileChecksum(fsys types.FS, name string) (string, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return Prefix + hex.EncodeToString(hasher.Sum(nil)), nil
}

// TreeDigest returns one BLAKE3 digest over every directory and regular
// file below root. The digest covers relative names, kinds and file
// contents, so two trees digest equal exactly when they hold the same
// names with the same bytes. Modes and times are ignored.
func TreeDigest(fsys types.FS, root string) (string, error) {
	hasher := blake3.New()
	if err := hashDir(fsys, hasher, root, ""); err != nil {
		return "", err
	}
	return Prefix + hex.EncodeToString(hasher.Sum(nil)), nil
}

// hashDir feeds "d <name>\x00" for directories and
// "f <name>\x00<size><bytes>" for files, in ReadDir (name) order.
func hashDir(fsys types.FS, h *blake3.Hasher, dir, rel string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		name := path.Join(rel, entry.Name())

		info, err := fsys.Stat(full)
		if err != nil {
			return err
		}
		if info.IsDir() {
			_, _ = io.WriteString(h, "d "+name+"\x00")
			if err := hashDir(fsys, h, full, name); err != nil {
				return err
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := fsys.ReadFile(full)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(h, "f "+name+"\x00")
		_, _ = h.Write(binary.BigEndian.AppendUint64(nil, uint64(len(data))))
		_, _ = h.Write(data)
	}
	return nil
}
