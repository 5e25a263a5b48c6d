package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"csv2api/internal/api"
	"csv2api/internal/record"
)

// maxErrorBody caps how much of a rejection response body is read for the
// error log.
const maxErrorBody = 64 * 1024

// dispatcher schedules one outbound request per row. Row N's request fires
// after N × wait, timed independently of every other row: a slow response to
// row N-1 never delays row N, so in-flight requests can overlap when the
// network is slower than the wait interval. That is the intended pacing
// model; there is no queue and no concurrency cap.
type dispatcher struct {
	client *api.Client
	wait   time.Duration
	dryRun bool
	stdout io.Writer
	stats  *Stats
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	fatal  error
}

func newDispatcher(ctx context.Context, client *api.Client, wait time.Duration, dryRun bool, stdout io.Writer, stats *Stats, logger *slog.Logger) *dispatcher {
	dctx, cancel := context.WithCancel(ctx)
	return &dispatcher{
		client: client,
		wait:   wait,
		dryRun: dryRun,
		stdout: stdout,
		stats:  stats,
		logger: logger,
		ctx:    dctx,
		cancel: cancel,
	}
}

// Schedule queues the request for row index. In dry-run mode the request
// intent is printed immediately (preserving row order) and no counters move.
func (d *dispatcher) Schedule(index int, path string, doc record.Doc, naturalID string) error {
	if d.dryRun {
		body, err := json.Marshal(doc)
		if err != nil {
			return errors.Wrap(err, "encoding document")
		}
		fmt.Fprintf(d.stdout, "POST %s %s\n", path, body)
		return nil
	}

	d.stats.RequestIssued()
	d.wg.Add(1)
	go d.send(index, path, doc, naturalID)
	return nil
}

func (d *dispatcher) send(index int, path string, doc record.Doc, naturalID string) {
	defer d.wg.Done()

	if delay := d.wait * time.Duration(index); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-d.ctx.Done():
			return
		case <-timer.C:
		}
	} else if d.ctx.Err() != nil {
		return
	}

	resp, err := d.client.Post(d.ctx, path, doc)
	if err != nil {
		if d.ctx.Err() != nil {
			return
		}
		d.fail(err)
		return
	}
	defer resp.Body.Close()

	d.stats.RecordStatus(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		d.logger.Error("request rejected",
			"id", naturalID,
			"path", path,
			"status", resp.StatusCode,
			"message", http.StatusText(resp.StatusCode),
			"body", string(body),
		)
		return
	}

	io.Copy(io.Discard, resp.Body)
	d.logger.Debug("request accepted", "id", naturalID, "path", path, "status", resp.StatusCode)
}

// fail records the first transport-level error and cancels everything still
// scheduled. HTTP error responses never come through here.
func (d *dispatcher) fail(err error) {
	d.mu.Lock()
	if d.fatal == nil {
		d.fatal = err
	}
	d.mu.Unlock()
	d.cancel()
}

// Fatal returns the transport error that ended the run, if any.
func (d *dispatcher) Fatal() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fatal
}

// Cancel drops all scheduled-but-undispatched requests and waits for
// in-flight sends to unwind.
func (d *dispatcher) Cancel() {
	d.cancel()
	d.wg.Wait()
}

// Wait blocks until every scheduled request has completed or been dropped,
// then returns the fatal transport error if one occurred.
func (d *dispatcher) Wait() error {
	d.wg.Wait()
	d.cancel()
	return d.Fatal()
}
