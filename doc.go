// Package tsvenn loads tab-separated files into SQLite tables with an inferred
// all-text schema and compares two relations over those tables with set
// algebra, producing an intersection list and a two-circle character diagram.
//
// # Features
//
//   - Load TSV, Parquet, and Excel (XLSX) files into tables named after the file
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//   - Batch load and drop driven by a flat "source|skip|source|skip" descriptor
//   - Declarative comparison relations with case folding, an optional inner join
//     and equality filters
//   - Intersection list written as TSV, XLSX or Parquet
//   - Venn diagram written as a fixed-size text grid
//
// # Basic Usage
//
// Load files and compare them with a Pipeline:
//
//	pipeline, err := tsvenn.NewBuilder().
//	    AddDescriptor("input/imi.tsv|9|input/sider.tsv|0").
//	    Compare(imi, sider).
//	    WriteListTo("output/common.tsv").
//	    WriteDiagramTo("output/venn.txt").
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	st, err := tsvenn.OpenStore(ctx, "output/survey.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	result, err := pipeline.Run(ctx, st)
//
// # Table Schema
//
// After skipping the header lines, the field count of the first remaining line
// decides the column count n. Columns are named A1..An and declared
// TEXT NOT NULL. Every value is inserted as a quoted string literal, so quotes,
// commas and semicolons inside fields are stored verbatim.
//
// # Transactions
//
// A store opened with OpenStore runs everything inside one transaction that is
// committed on Close. Each table load runs inside its own savepoint, so a
// rejected statement never leaves a half-created table behind.
//
// # Table Naming
//
// By default a table is named after the source identifier verbatim, so
// "input/drug_names.tsv" becomes table "input/drug_names.tsv". With
// WithTableNaming(TableNameBase) it becomes "drug_names".
package tsvenn
