package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DescriptorSeparator separates the tokens of an encoded load descriptor.
const DescriptorSeparator = "|"

// LoadPair names one source and the number of header lines to skip in it.
type LoadPair struct {
	// Source is the source identifier, normally a file path.
	Source string
	// HeaderSkip is the number of leading lines that are not data.
	HeaderSkip int
}

// String returns "source|skip".
func (p LoadPair) String() string {
	return p.Source + DescriptorSeparator + strconv.Itoa(p.HeaderSkip)
}

// Descriptor is an ordered list of load pairs.
type Descriptor []LoadPair

// ParseDescriptor decodes a flat "source|skip|source|skip" string.
//
// Empty tokens are ignored, so "a.tsv||0" is the same as "a.tsv|0".
// An unpaired trailing token is silently discarded. A skip count that is
// not a non-negative integer is reported as ErrInvalidDescriptor.
func ParseDescriptor(s string) (Descriptor, error) {
	tokens := make([]string, 0)
	for _, tok := range strings.Split(s, DescriptorSeparator) {
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}

	desc := make(Descriptor, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		skip, err := strconv.Atoi(strings.TrimSpace(tokens[i+1]))
		if err != nil {
			return nil, fmt.Errorf("%w: header skip %q for %s is not an integer", ErrInvalidDescriptor, tokens[i+1], tokens[i])
		}
		if skip < 0 {
			return nil, fmt.Errorf("%w: header skip %d for %s is negative", ErrInvalidDescriptor, skip, tokens[i])
		}
		desc = append(desc, LoadPair{Source: tokens[i], HeaderSkip: skip})
	}
	return desc, nil
}

// String encodes the descriptor back into its flat form.
func (d Descriptor) String() string {
	parts := make([]string, 0, len(d))
	for _, p := range d {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, DescriptorSeparator)
}

// Sources returns the source identifiers in descriptor order.
func (d Descriptor) Sources() []string {
	sources := make([]string, 0, len(d))
	for _, p := range d {
		sources = append(sources, p.Source)
	}
	return sources
}
