package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/tsvenn"
	"github.com/nao1215/tsvenn/store"
)

// openStore opens the configured store, creating its directory first.
func (a *app) openStore(ctx context.Context) (*store.SQLite, error) {
	if a.cfg.Store != store.Memory {
		if dir := filepath.Dir(a.cfg.Store); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("%w: %w", tsvenn.ErrStoreOpen, err)
			}
		}
	}
	return tsvenn.OpenStore(ctx, a.cfg.Store, store.WithLogger(a.logger))
}

// withStore opens the store, runs fn and closes the store. The close error
// is joined with the error of fn.
func (a *app) withStore(ctx context.Context, fn func(*store.SQLite) error) (err error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(st)
}

func (a *app) options() ([]tsvenn.Option, error) {
	opts, err := a.cfg.Options()
	if err != nil {
		return nil, err
	}
	return append(opts, tsvenn.WithLogger(a.logger)), nil
}

func newRunCmd(a *app) *cobra.Command {
	var (
		listPath    string
		diagramPath string
		keepTables  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load, compare, write the list and diagram, then drop the tables",
		Long: "Load every descriptor pair, write the intersection list and the Venn diagram of the two " +
			"configured relations, then drop the tables the run loaded. Failed pairs are reported and the run " +
			"continues; the command fails when the store cannot be opened or no diagram could be drawn.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("list") {
				a.cfg.Output.List = listPath
			}
			if cmd.Flags().Changed("diagram") {
				a.cfg.Output.Diagram = diagramPath
			}
			if cmd.Flags().Changed("keep-tables") {
				a.cfg.KeepTables = keepTables
			}

			opts, err := a.options()
			if err != nil {
				return err
			}
			pipeline, err := tsvenn.NewBuilder().
				AddDescriptor(a.cfg.Descriptor).
				Compare(a.cfg.Left, a.cfg.Right).
				WriteListTo(a.cfg.Output.List).
				WriteDiagramTo(a.cfg.Output.Diagram).
				KeepTables(a.cfg.KeepTables).
				WithOptions(opts...).
				Build(cmd.Context())
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(st *store.SQLite) error {
				result, runErr := pipeline.Run(cmd.Context(), st)
				printRunResult(cmd.OutOrStdout(), a, result)
				if runErr == nil {
					return nil
				}
				if a.cfg.Output.Diagram != "" && result.DiagramPath == "" {
					return fmt.Errorf("run produced no diagram: %w", runErr)
				}
				a.logger.Warn("run finished with errors", slog.Any("error", runErr))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&listPath, "list", "", "Intersection list path (.tsv, .xlsx, .parquet, optionally compressed)")
	cmd.Flags().StringVar(&diagramPath, "diagram", "", "Venn diagram path")
	cmd.Flags().BoolVar(&keepTables, "keep-tables", false, "Keep the loaded tables after the run")
	return cmd
}

func printRunResult(w io.Writer, a *app, result *tsvenn.RunResult) {
	_, _ = fmt.Fprintf(w, "run %s\n", result.RunID)
	if result.Load != nil {
		_, _ = fmt.Fprintf(w, "loaded %d/%d pairs\n", result.Load.Succeeded(), len(result.Load.Results)+len(result.Load.Skipped))
		for _, failed := range result.Load.Failed() {
			_, _ = fmt.Fprintf(w, "failed %s: %v\n", failed.Pair.Source, failed.Err)
		}
	}
	_, _ = fmt.Fprintf(w, "%s only: %d, both: %d, %s only: %d\n",
		a.cfg.Left.Label, result.Counts.LeftOnly, result.Counts.Both, a.cfg.Right.Label, result.Counts.RightOnly)
	if result.ListPath != "" {
		_, _ = fmt.Fprintf(w, "wrote %s\n", result.ListPath)
	}
	if result.DiagramPath != "" {
		_, _ = fmt.Fprintf(w, "wrote %s\n", result.DiagramPath)
	}
	if result.Drop != nil {
		_, _ = fmt.Fprintf(w, "dropped %d/%d tables\n", result.Drop.Succeeded(), len(result.Drop.Results)+len(result.Drop.Skipped))
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load every descriptor pair into a new table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBatch(cmd, func(loader *tsvenn.Loader) tsvenn.Operation {
				return tsvenn.LoadOperation{Loader: loader}
			})
		},
	}
}

func newDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop",
		Short: "Drop the table of every descriptor pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBatch(cmd, func(loader *tsvenn.Loader) tsvenn.Operation {
				return tsvenn.DropOperation{Loader: loader}
			})
		},
	}
}

// runBatch applies the operation built by newOp to every descriptor pair
// and prints one line per pair.
func (a *app) runBatch(cmd *cobra.Command, newOp func(*tsvenn.Loader) tsvenn.Operation) error {
	opts, err := a.options()
	if err != nil {
		return err
	}
	op := newOp(tsvenn.NewLoader(opts...))

	return a.withStore(cmd.Context(), func(st *store.SQLite) error {
		report, err := tsvenn.NewBatch(opts...).Run(cmd.Context(), st, a.cfg.Descriptor, op)
		if report != nil {
			w := cmd.OutOrStdout()
			for _, res := range report.Results {
				if res.Err != nil {
					_, _ = fmt.Fprintf(w, "failed %s %s: %v\n", report.Operation, res.Table, res.Err)
					continue
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", report.Operation, res.Table)
			}
			for _, pair := range report.Skipped {
				_, _ = fmt.Fprintf(w, "skipped %s\n", pair.Source)
			}
		}
		return err
	})
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		listPath    string
		diagramPath string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Print the Venn region counts of the two relations over loaded tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(st *store.SQLite) error {
				comparer := tsvenn.NewComparer(st, opts...)
				counts, err := comparer.Counts(cmd.Context(), a.cfg.Left, a.cfg.Right)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s only: %d, both: %d, %s only: %d\n",
					a.cfg.Left.Label, counts.LeftOnly, counts.Both, a.cfg.Right.Label, counts.RightOnly)

				if listPath != "" {
					pairs, err := comparer.Intersection(cmd.Context(), a.cfg.Left, a.cfg.Right)
					if err != nil {
						return err
					}
					if err := tsvenn.WriteIntersectionList(listPath, pairs); err != nil {
						return err
					}
				}
				if diagramPath != "" {
					text := tsvenn.NewVennText(counts, a.cfg.Left.Label, a.cfg.Right.Label)
					return tsvenn.WriteDiagram(diagramPath, tsvenn.RenderVenn(text, tsvenn.DefaultVennLayout()))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&listPath, "list", "", "Also write the intersection list to this path")
	cmd.Flags().StringVar(&diagramPath, "diagram", "", "Also write the Venn diagram to this path")
	return cmd
}
