package ggcontainer

import (
	"io"
	"os"
)

// ContainerVersion is the version number this module emits. A reader
// accepts any version for header purposes; the number is informational.
const ContainerVersion uint32 = 2

// Write serializes meta and tensors to path, creating or truncating
// the file.
func Write(path string, meta *Metadata, tensors []Tensor) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapErr(ErrIo, path, err)
	}
	defer f.Close()
	if err := WriteTo(f, meta, tensors); err != nil {
		return err
	}
	return f.Sync()
}

// WriteTo writes a container in two passes: tensor headers are
// written with a zero placeholder offset, then each payload is
// appended and the real offset is seeked back into its placeholder,
// finishing with the write cursor back at end-of-file.
func WriteTo(w io.WriteSeeker, meta *Metadata, tensors []Tensor) error {
	if _, err := w.Write(magicBytes[:]); err != nil {
		return wrapErr(ErrIo, "", err)
	}
	if err := writeLE(w, ContainerVersion); err != nil {
		return wrapErr(ErrIo, "", err)
	}
	if err := writeLE(w, uint64(len(tensors))); err != nil {
		return wrapErr(ErrIo, "", err)
	}
	if err := writeLE(w, uint64(meta.Len())); err != nil {
		return wrapErr(ErrIo, "", err)
	}

	var writeErr error
	meta.Range(func(key string, v TypedValue) bool {
		if err := v.writeTo(w, key); err != nil {
			writeErr = wrapErr(ErrIo, key, err)
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	placeholders := make([]int64, len(tensors))
	for i, t := range tensors {
		if err := writeString(w, t.Name); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		if err := writeLE(w, t.TypeCode); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		if err := writeLE(w, uint32(len(t.Dims))); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		for _, d := range t.Dims {
			if err := writeLE(w, d); err != nil {
				return wrapErr(ErrIo, t.Name, err)
			}
		}
		pos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		placeholders[i] = pos
		if err := writeLE(w, uint64(0)); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
	}

	for i, t := range tensors {
		dataPos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		if _, err := w.Write(t.Payload); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		endPos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}

		if _, err := w.Seek(placeholders[i], io.SeekStart); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
		if err := writeLE(w, uint64(dataPos)); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}

		if _, err := w.Seek(endPos, io.SeekStart); err != nil {
			return wrapErr(ErrIo, t.Name, err)
		}
	}

	return nil
}
