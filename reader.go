package ggcontainer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

var magicBytes = [4]byte{'G', 'G', 'U', 'F'}

// Read parses a container from path, returning its metadata and the
// tensor list in file order.
func Read(path string) (*Metadata, []Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, wrapErr(ErrIo, path, err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom parses a container from an io.ReadSeeker, which must also
// support Seek: the final tensor's payload length is derived from the
// overall stream length, so that has to be known up front.
func ReadFrom(r io.ReadSeeker) (*Metadata, []Tensor, error) {
	fileSize, err := streamSize(r)
	if err != nil {
		return nil, nil, wrapErr(ErrIo, "", err)
	}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, nil, wrapErr(ErrBadMagic, "", err)
	}
	if magic != magicBytes {
		return nil, nil, wrapErr(ErrBadMagic, "", fmt.Errorf("got %q", magic[:]))
	}

	version, err := readLE[uint32](r)
	if err != nil {
		return nil, nil, wrapErr(ErrShortRead, "version", err)
	}
	tensorCount, err := readLE[uint64](r)
	if err != nil {
		return nil, nil, wrapErr(ErrShortRead, "tensor_count", err)
	}
	metadataCount, err := readLE[uint64](r)
	if err != nil {
		return nil, nil, wrapErr(ErrShortRead, "metadata_count", err)
	}
	logrus.WithFields(logrus.Fields{
		"version":        version,
		"tensor_count":   tensorCount,
		"metadata_count": metadataCount,
	}).Debug("ggcontainer: parsed header")

	meta := NewMetadata()
	if err := readMetadata(r, meta, metadataCount); err != nil {
		return nil, nil, err
	}

	tensors := make([]Tensor, 0, tensorCount)
	for i := uint64(0); i < tensorCount; i++ {
		t, err := readTensorHeader(r)
		if err != nil {
			return nil, nil, err
		}
		tensors = append(tensors, t)
	}

	if err := fillPayloads(r, tensors, fileSize); err != nil {
		return nil, nil, err
	}

	return meta, tensors, nil
}

func streamSize(r io.Seeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

// readMetadata halts metadata parsing on an Array entry or any
// unrecognized kind code, keeping entries already parsed, rather than
// guessing at an unknown payload's length. DESIGN.md explains why this
// is preferred over skipping such an entry without consuming its
// bytes, which desyncs every entry that follows.
func readMetadata(r io.Reader, meta *Metadata, count uint64) error {
	for i := uint64(0); i < count; i++ {
		key, err := readString(r)
		if err != nil {
			return wrapErr(ErrShortRead, "metadata key", err)
		}
		var kindByte [1]byte
		if _, err := io.ReadFull(r, kindByte[:]); err != nil {
			return wrapErr(ErrShortRead, key, err)
		}
		kind := ValueKind(kindByte[0])

		if kind == KindArray || !knownKind(kind) {
			logrus.WithFields(logrus.Fields{
				"key":  key,
				"kind": kindByte[0],
			}).Warn("ggcontainer: unsupported metadata kind, halting metadata parsing")
			return nil
		}

		v, err := readValue(r, kind)
		if err != nil {
			return wrapErr(ErrShortRead, key, err)
		}
		meta.Set(key, v)
	}
	return nil
}

func readValue(r io.Reader, kind ValueKind) (TypedValue, error) {
	switch kind {
	case KindString:
		s, err := readString(r)
		return NewStringValue(s), err
	case KindU8:
		x, err := readU8(r)
		return NewU8Value(x), err
	case KindI8:
		x, err := readU8(r)
		return NewI8Value(int8(x)), err
	case KindU16:
		x, err := readLE[uint16](r)
		return NewU16Value(x), err
	case KindI16:
		x, err := readLE[uint16](r)
		return NewI16Value(int16(x)), err
	case KindU32:
		x, err := readLE[uint32](r)
		return NewU32Value(x), err
	case KindI32:
		x, err := readLE[uint32](r)
		return NewI32Value(int32(x)), err
	case KindU64:
		x, err := readLE[uint64](r)
		return NewU64Value(x), err
	case KindBool:
		x, err := readU8(r)
		return NewBoolValue(x != 0), err
	case KindI64:
		x, err := readLE[uint64](r)
		return NewI64Value(int64(x)), err
	case KindF64:
		x, err := readLE[uint64](r)
		return NewF64Value(math.Float64frombits(x)), err
	case KindF32:
		x, err := readLE[uint32](r)
		return NewF32Value(math.Float32frombits(x)), err
	case KindStringArray:
		n, err := readLE[uint64](r)
		if err != nil {
			return TypedValue{}, err
		}
		xs := make([]string, n)
		for i := range xs {
			xs[i], err = readString(r)
			if err != nil {
				return TypedValue{}, err
			}
		}
		return NewStringArrayValue(xs), nil
	case KindBinary:
		b, err := readBytes(r)
		return NewBinaryValue(b), err
	default:
		return TypedValue{}, fmt.Errorf("unreachable: unhandled known kind %v", kind)
	}
}

func readTensorHeader(r io.Reader) (Tensor, error) {
	name, err := readString(r)
	if err != nil {
		return Tensor{}, wrapErr(ErrShortRead, "tensor name", err)
	}
	typeCode, err := readLE[uint32](r)
	if err != nil {
		return Tensor{}, wrapErr(ErrShortRead, name, err)
	}
	nDims, err := readLE[uint32](r)
	if err != nil {
		return Tensor{}, wrapErr(ErrShortRead, name, err)
	}
	dims := make([]uint64, nDims)
	for i := range dims {
		dims[i], err = readLE[uint64](r)
		if err != nil {
			return Tensor{}, wrapErr(ErrShortRead, name, err)
		}
	}
	offset, err := readLE[uint64](r)
	if err != nil {
		return Tensor{}, wrapErr(ErrShortRead, name, err)
	}
	return Tensor{Name: name, TypeCode: typeCode, Dims: dims, DataOffset: offset}, nil
}

// fillPayloads derives each payload's length from the gap between
// consecutive data_offsets, since it isn't stored directly; this can
// only run once every header (and the file size, for the last tensor)
// is known.
func fillPayloads(r io.ReadSeeker, tensors []Tensor, fileSize int64) error {
	for i := range tensors {
		var end uint64
		if i+1 < len(tensors) {
			end = tensors[i+1].DataOffset
		} else {
			end = uint64(fileSize)
		}
		start := tensors[i].DataOffset
		if end < start {
			return wrapErr(ErrShortRead, tensors[i].Name, fmt.Errorf("offsets out of order: start=%d end=%d", start, end))
		}
		length := end - start

		if _, err := r.Seek(int64(start), io.SeekStart); err != nil {
			return wrapErr(ErrIo, tensors[i].Name, err)
		}
		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return wrapErr(ErrShortRead, tensors[i].Name, err)
		}
		tensors[i].Payload = payload
	}
	return nil
}

func readLE[T uint16 | uint32 | uint64](r io.Reader) (T, error) {
	var v T
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readU8(r io.Reader) (uint8, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}

// readString reads a length-prefixed string, replacing invalid UTF-8
// lossily rather than failing the read: a deliberate robustness choice
// for heterogeneous producers.
func readString(r io.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	if utf8.Valid(b) {
		return string(b), nil
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError)), nil
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readLE[uint64](r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
