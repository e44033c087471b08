package ggcontainer

import "errors"

// Sentinel errors forming this module's error taxonomy. Use errors.Is
// against these, or errors.As against *ContainerError for the
// offending key/tensor name, since callers higher up (the validator,
// the CLI) need to report which entry failed without string-matching
// error text.
var (
	// ErrIo wraps an underlying I/O failure (file open, read, seek).
	// Distinct from ErrShortRead, which covers a syntactically short
	// but otherwise healthy stream.
	ErrIo = errors.New("ggcontainer: io error")
	// ErrBadMagic is returned when a file's first four bytes are not
	// "GGUF".
	ErrBadMagic = errors.New("ggcontainer: bad magic")
	// ErrShortRead is returned when a header demands bytes past EOF.
	ErrShortRead = errors.New("ggcontainer: short read")
	// ErrInvalidScale names a block whose scale field is non-finite or
	// zero. Nothing in this package returns it: the block decoders in
	// package quant report this condition as *quant.ErrInvalidScale.
	ErrInvalidScale = errors.New("ggcontainer: invalid block scale")
	// ErrInvalidBlock names a payload whose length is structurally
	// incompatible with its declared element count (for example, not a
	// multiple of the codec's element width). Nothing in this package
	// returns it: package quant reports this condition as
	// *quant.ErrInvalidBlock.
	ErrInvalidBlock = errors.New("ggcontainer: invalid block")
)

// ContainerError wraps a taxonomy error with the key or tensor name it
// was raised for, and the underlying cause when there is one beyond
// the sentinel itself.
type ContainerError struct {
	Kind  error
	Name  string
	Cause error
}

func (e *ContainerError) Error() string {
	msg := e.Kind.Error()
	if e.Name != "" {
		msg += " (" + e.Name + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ContainerError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Is reports whether target matches the wrapped taxonomy sentinel,
// so errors.Is(err, ggcontainer.ErrBadMagic) works through a
// *ContainerError.
func (e *ContainerError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func wrapErr(kind error, name string, cause error) error {
	return &ContainerError{Kind: kind, Name: name, Cause: cause}
}
