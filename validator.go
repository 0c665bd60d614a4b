package tsvenn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
)

// validator handles validation logic for Builder
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validatePair checks the syntax of a load pair. Whether the source can be
// read is left to the load of that pair.
func (v *validator) validatePair(pair model.LoadPair) error {
	if strings.TrimSpace(pair.Source) == "" {
		return fmt.Errorf("%w: source cannot be empty", ErrInvalidDescriptor)
	}
	if pair.HeaderSkip < 0 {
		return fmt.Errorf("%w: header skip %d for %s is negative", ErrInvalidDescriptor, pair.HeaderSkip, pair.Source)
	}
	return nil
}

// validateArtifactPath checks that an artifact can be written in the
// format and compression its path implies. An empty path is valid.
func (v *validator) validateArtifactPath(path string, list bool) error {
	if path == "" {
		return nil
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("artifact path cannot be blank")
	}
	if model.DetectCompression(path) == model.CompressionBZ2 {
		return fmt.Errorf("%w: cannot write bz2 compressed %s", ErrUnsupportedFormat, path)
	}
	if !list && model.DetectFormat(path) != model.FormatText {
		return fmt.Errorf("%w: diagram must be written as text: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// validateLayout checks that the diagram grid is not empty
func (v *validator) validateLayout(layout VennLayout) error {
	if layout.Rows <= 0 || layout.Cols <= 0 {
		return fmt.Errorf("tsvenn: diagram grid %dx%d is empty", layout.Rows, layout.Cols)
	}
	if layout.Radius <= 0 {
		return fmt.Errorf("tsvenn: circle radius %d must be positive", layout.Radius)
	}
	return nil
}
