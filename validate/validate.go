// Package validate checks that every decodable tensor in a container
// actually decodes under its declared type, collecting failures across
// all tensors rather than stopping at the first one.
package validate

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/tensorkeg/ggcontainer"
	"github.com/tensorkeg/ggcontainer/quant"
)

// Report is the outcome of validating a container's tensors.
type Report struct {
	Checked int
	Skipped []string
}

// Validate decodes every tensor whose type code this module knows how
// to decode, verifying the payload is well-formed for its declared
// element count. Tensors with an unrecognized type code are skipped
// (recorded in Report.Skipped, logged via logrus) rather than treated
// as failures, since this module has no way to judge their payload.
//
// All tensors are checked even after a failure; the returned error
// aggregates every tensor's failure via multierr so a single bad
// tensor doesn't hide problems with its siblings.
func Validate(meta *ggcontainer.Metadata, tensors []ggcontainer.Tensor) (Report, error) {
	report := Report{}
	var errs error

	for _, tensor := range tensors {
		n, err := tensor.ElementCount()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tensor %q: %w", tensor.Name, err))
			continue
		}

		switch tensor.TypeCode {
		case ggcontainer.TypeF32:
			_, err = quant.DecodeF32(tensor.Payload, n)
		case ggcontainer.TypeQ4_0:
			_, err = quant.DecodeQ4_0(tensor.Payload, n)
		case ggcontainer.TypeQ5_1:
			_, err = quant.DecodeQ5_1(tensor.Payload, n)
		default:
			report.Skipped = append(report.Skipped, tensor.Name)
			logrus.WithFields(logrus.Fields{
				"tensor":   tensor.Name,
				"typeCode": tensor.TypeCode,
			}).Warn("validate: skipping tensor with unrecognized type code")
			continue
		}

		report.Checked++
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tensor %q: %w", tensor.Name, err))
		}
	}

	if checksumErrs := ggcontainer.VerifyChecksums(meta, tensors); len(checksumErrs) > 0 {
		for _, err := range checksumErrs {
			errs = multierr.Append(errs, err)
		}
	}

	return report, errs
}
