// Package importer runs the row-to-request pipeline: read rows from stdin,
// remap and validate each one, shape it into a document for the active
// record type, and dispatch it with index-proportional pacing.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"csv2api/internal/api"
	"csv2api/internal/csvio"
	"csv2api/internal/record"
)

// DefaultWait is the default spacing between dispatch slots.
const DefaultWait = 500 * time.Millisecond

// Command holds everything one import run needs. It owns the uniqueness
// index and statistics for the run; nothing here is process-global.
type Command struct {
	// Type is the record type key selecting descriptor and document shape.
	Type string

	// Wait is the dispatch slot spacing; row N fires after N × Wait.
	Wait time.Duration

	// DryRun prints request intent to Stdout instead of sending.
	DryRun bool

	// PlaceID is the global fallback for place/parent references.
	PlaceID string

	// Mapping optionally renames/filters columns before validation.
	Mapping []record.MapPair

	// Client is the target API client. Required unless DryRun is set.
	Client *api.Client

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// NewCommand returns a command with defaults, bound to the given streams.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer) *Command {
	return &Command{
		Wait:   DefaultWait,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Run executes the import. The statistics summary is written to Stderr on
// every exit path, including validation failures, transport errors, and
// cancellation.
func (cmd *Command) Run(ctx context.Context) error {
	desc, ok := record.Get(cmd.Type)
	if !ok {
		return errors.Errorf("unsupported record type %q (supported: %s)",
			cmd.Type, strings.Join(record.Keys(), ", "))
	}
	if !cmd.DryRun && cmd.Client == nil {
		return errors.New("no API client configured")
	}
	if cmd.Wait < 0 {
		return errors.Errorf("wait interval must be non-negative, got %s", cmd.Wait)
	}

	logger := cmd.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("type", desc.Key)

	stats := NewStats()
	defer stats.Report(cmd.Stderr)

	source, err := csvio.NewSource(cmd.Stdin)
	if err != nil {
		return err
	}
	logger.Debug("header read", "columns", len(source.Headers()))

	disp := newDispatcher(ctx, cmd.Client, cmd.Wait, cmd.DryRun, cmd.Stdout, stats, logger)
	idx := record.NewIndex()

	rowIndex := 0
	for {
		if err := ctx.Err(); err != nil {
			disp.Cancel()
			return err
		}
		if err := disp.Fatal(); err != nil {
			disp.Cancel()
			return err
		}

		raw, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			disp.Cancel()
			return err
		}

		stats.RowSeen()
		row := record.Remap(record.Row(raw), cmd.Mapping)

		if err := record.Validate(row, desc, idx); err != nil {
			var (
				missing *record.MissingFieldError
				dup     *record.DuplicateValueError
			)
			switch {
			case errors.As(err, &dup):
				emitRow(cmd.Stderr, dup.Row)
			case errors.As(err, &missing):
				emitRow(cmd.Stderr, missing.Row)
			}
			disp.Cancel()
			return errors.Wrapf(err, "line %d", source.Line())
		}

		doc := desc.Build(row, record.BuildOptions{
			PlaceID: cmd.PlaceID,
			Now:     time.Now().UTC(),
		})

		path := desc.Endpoint
		naturalID := desc.NaturalID(doc)
		if desc.UpdateKey != "" {
			id := row[desc.UpdateKey]
			path += "/" + url.PathEscape(id)
			if naturalID == "" {
				naturalID = id
			}
		}

		if err := disp.Schedule(rowIndex, path, doc, naturalID); err != nil {
			disp.Cancel()
			return errors.Wrapf(err, "line %d", source.Line())
		}
		rowIndex++
	}

	if err := disp.Wait(); err != nil {
		return err
	}

	logger.Info("import complete",
		"rows", stats.Rows(),
		"requests", stats.Requests(),
		"bytes_read", source.BytesRead(),
	)
	return nil
}

// emitRow writes the offending row to the error stream before a fatal
// validation failure surfaces.
func emitRow(w io.Writer, row record.Row) {
	data, err := json.Marshal(row)
	if err != nil {
		fmt.Fprintf(w, "offending row: %v\n", row)
		return
	}
	fmt.Fprintf(w, "offending row: %s\n", data)
}
