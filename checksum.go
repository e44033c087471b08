package ggcontainer

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// checksumSuffix names the metadata key recorded for a tensor's
// payload checksum: "<tensor name>.xxh64".
const checksumSuffix = ".xxh64"

// ChecksumKey returns the metadata key under which tensorName's
// payload checksum is recorded.
func ChecksumKey(tensorName string) string {
	return tensorName + checksumSuffix
}

// TensorNameFromChecksumKey extracts the tensor name from a checksum
// metadata key, returning ok=false if key is not a checksum key.
func TensorNameFromChecksumKey(key string) (name string, ok bool) {
	name, ok = strings.CutSuffix(key, checksumSuffix)
	return name, ok
}

// ChecksumPayload returns the xxh64 digest of a tensor's raw payload
// bytes.
func ChecksumPayload(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// AnnotateChecksums records a U64 "<name>.xxh64" metadata entry for
// every tensor, overwriting any entry already present under that key.
// Callers that write a container with integrity checks enabled call
// this before Write.
func AnnotateChecksums(meta *Metadata, tensors []Tensor) {
	for _, t := range tensors {
		meta.Set(ChecksumKey(t.Name), NewU64Value(ChecksumPayload(t.Payload)))
	}
}

// VerifyChecksums reports every tensor whose "<name>.xxh64" metadata
// entry, if present, disagrees with its actual payload digest.
// Tensors with no recorded checksum are not reported: this integrity
// layer is supplemental and opt-in, not part of the core format.
func VerifyChecksums(meta *Metadata, tensors []Tensor) []error {
	var mismatches []error
	for _, t := range tensors {
		want, ok := meta.Get(ChecksumKey(t.Name))
		if !ok {
			continue
		}
		wantSum, ok := want.U64()
		if !ok {
			mismatches = append(mismatches, fmt.Errorf("%s: checksum metadata entry is not U64", t.Name))
			continue
		}
		got := ChecksumPayload(t.Payload)
		if got != wantSum {
			mismatches = append(mismatches, fmt.Errorf("%s: checksum mismatch: want %x, got %x", t.Name, wantSum, got))
		}
	}
	return mismatches
}
