package tsvenn

import (
	"fmt"
	"strings"

	"github.com/nao1215/tsvenn/domain/model"
)

// ArityPolicy decides what happens to records whose field count differs
// from the inferred schema
type ArityPolicy int

const (
	// ArityStrict rejects the whole source at the first mismatching record (default)
	ArityStrict ArityPolicy = iota
	// ArityLenient pads short records with empty strings and truncates long ones
	ArityLenient
)

// String returns the configuration name of the policy
func (p ArityPolicy) String() string {
	if p == ArityLenient {
		return "lenient"
	}
	return "strict"
}

// ParseArityPolicy parses "strict" or "lenient"; the empty string means "strict".
func ParseArityPolicy(s string) (ArityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ArityStrict, nil
	case "lenient":
		return ArityLenient, nil
	default:
		return ArityStrict, fmt.Errorf("tsvenn: unknown arity policy %q", s)
	}
}

// insertBatch is every INSERT statement of one source, in file order.
type insertBatch struct {
	// sql is the concatenated statements
	sql string
	// rows is the number of statements
	rows int
	// adjusted counts records padded or truncated under ArityLenient
	adjusted int
}

// compileInserts turns the records after the header skip into one INSERT
// statement each, every field escaped with QuoteLiteral, and concatenates
// them into a single batch so the store runs them in one call.
func compileInserts(schema model.Schema, records []model.Record, headerSkip int, file string, policy ArityPolicy) (insertBatch, error) {
	prefix := "INSERT INTO " + QuoteIdentifier(schema.Table) + " VALUES ("
	want := schema.Arity()

	var b strings.Builder
	batch := insertBatch{}
	for i := headerSkip; i < len(records); i++ {
		record := records[i]
		if record.Arity() != want {
			if policy == ArityStrict {
				return insertBatch{}, &ArityError{File: file, Line: i + 1, Want: want, Got: record.Arity()}
			}
			record = fitArity(record, want)
			batch.adjusted++
		}

		b.WriteString(prefix)
		for j, field := range record {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(QuoteLiteral(field))
		}
		b.WriteString(");\n")
		batch.rows++
	}

	batch.sql = b.String()
	return batch, nil
}

// fitArity pads or truncates record to exactly n fields.
func fitArity(record model.Record, n int) model.Record {
	fitted := make(model.Record, n)
	copy(fitted, record)
	return fitted
}
