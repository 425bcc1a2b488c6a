// Command pgmanager manages the floors, rooms and residents of a paying-guest
// property and its payment receipt ledger.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"pgmanager/internal/backup"
	"pgmanager/internal/blob"
	"pgmanager/internal/core"
	"pgmanager/internal/logging"
	"pgmanager/pkg/domain"
)

const usageText = `usage: pgmanager <command> [flags] [args]

Structure:
  floor add <label>
  floor delete [-yes] <floorID>
  room add <floorID> <roomNumber>
  room delete [-yes] <floorID> <roomID>
  resident save -floor ID -room ID [-id ID] -name NAME [-mobile M] [-rent R] [-notes N, add only]
  resident delete [-yes] <floorID> <roomID> <residentID>
  tree [-expand id,id] [-all]
  stats [-json]

Receipts:
  receipt issue -resident NAME -room R -mobile M [-amount A] [-date YYYY-MM-DD] [-notes N]
  receipt update -id ID [same flags as issue]
  receipt delete [-yes] <id>
  receipt list [-q query]
  receipt print [-html] <id>

Backup:
  backup export [-o file|dir]
  backup import <file>
  backup archive
  backup archives
  backup restore <key>
  backup reset [-confirm DELETE]
`

var exitFunc = os.Exit

// usageError marks failures caused by bad invocation rather than bad data.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error { return usageError{msg: fmt.Sprintf(format, args...)} }

func main() {
	code := cli(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		_, _ = io.WriteString(stderr, usageText)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	logging.Init("pgmanager", stderr)
	ctx := context.Background()
	a, err := newApp(ctx, stdin, stdout, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "pgmanager: %v\n", err)
		return 1
	}
	err = a.dispatch(ctx, args)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return a.report(err)
}

type app struct {
	svc     *core.Service
	store   *core.Store
	slots   domain.SlotStore
	in      *bufio.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  logrus.FieldLogger
	metrics *metricsSink
	traces  io.Closer
	tracer  *core.JSONTraceTracer
}

func newApp(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	slots, err := core.OpenSlotStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a := &app{
		slots:  slots,
		in:     bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
		logger: logging.Logger,
	}
	opts := []core.Option{core.WithLogger(logging.Logger)}
	a.metrics, err = openMetrics(os.Getenv("PGMANAGER_METRICS"), os.Getenv("PGMANAGER_METRICS_TEXTFILE"))
	if err != nil {
		_ = a.close()
		return nil, err
	}
	if a.metrics != nil {
		opts = append(opts, core.WithMetricsRecorder(a.metrics.recorder))
	}
	if path := os.Getenv("PGMANAGER_TRACE_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) // #nosec G304 -- operator-supplied path
		if err != nil {
			_ = a.close()
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		a.traces = f
		a.tracer = core.NewJSONTracer(f)
		opts = append(opts, core.WithTracer(a.tracer))
	}
	a.store = core.NewStore(slots, logging.Logger)
	a.store.Load(ctx)
	a.svc = core.NewService(a.store, opts...)
	return a, nil
}

func (a *app) close() error {
	var errs []error
	if a.metrics != nil {
		errs = append(errs, a.metrics.flush(a.logger))
	}
	if a.tracer != nil {
		errs = append(errs, a.tracer.Err())
	}
	if a.traces != nil {
		errs = append(errs, a.traces.Close())
	}
	if c, ok := a.slots.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// gateway returns the backup gateway, opening the archive store only when asked.
func (a *app) gateway(ctx context.Context, withArchive bool) (*backup.Gateway, error) {
	opts := []backup.Option{backup.WithLogger(a.logger)}
	if withArchive {
		archive, err := blob.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		opts = append(opts, backup.WithArchive(archive))
	}
	return backup.New(a.store, opts...), nil
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	group, rest := args[0], args[1:]
	switch group {
	case "tree":
		return a.tree(rest)
	case "stats":
		return a.stats(rest)
	}
	if len(rest) == 0 {
		return usagef("%s: missing subcommand", group)
	}
	sub, rest := rest[0], rest[1:]
	switch group + " " + sub {
	case "floor add":
		return a.floorAdd(ctx, rest)
	case "floor delete":
		return a.floorDelete(ctx, rest)
	case "room add":
		return a.roomAdd(ctx, rest)
	case "room delete":
		return a.roomDelete(ctx, rest)
	case "resident save":
		return a.residentSave(ctx, rest)
	case "resident delete":
		return a.residentDelete(ctx, rest)
	case "receipt issue":
		return a.receiptIssue(ctx, rest)
	case "receipt update":
		return a.receiptUpdate(ctx, rest)
	case "receipt delete":
		return a.receiptDelete(ctx, rest)
	case "receipt list":
		return a.receiptList(rest)
	case "receipt print":
		return a.receiptPrint(rest)
	case "backup export":
		return a.backupExport(ctx, rest)
	case "backup import":
		return a.backupImport(ctx, rest)
	case "backup archive":
		return a.backupArchive(ctx)
	case "backup archives":
		return a.backupArchives(ctx)
	case "backup restore":
		return a.backupRestore(ctx, rest)
	case "backup reset":
		return a.backupReset(ctx, rest)
	default:
		return usagef("unknown command %q", group+" "+sub)
	}
}

// report prints err and maps it to an exit code.
func (a *app) report(err error) int {
	if err == nil {
		return 0
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		_, _ = fmt.Fprintf(a.stderr, "pgmanager: %v\n\n%s", err, usageText)
		return 2
	}
	if errors.Is(err, errFlagParse) {
		return 2
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		_, _ = fmt.Fprintln(a.stderr, "pgmanager: invalid input:")
		for _, fe := range verrs {
			_, _ = fmt.Fprintf(a.stderr, "  %s\n", fe.Message)
		}
		return 1
	}
	_, _ = fmt.Fprintf(a.stderr, "pgmanager: %v\n", err)
	return 1
}

// confirm asks a yes/no question on stdin. Anything but y or yes declines.
func (a *app) confirm(question string) bool {
	_, _ = fmt.Fprintf(a.stdout, "%s [y/N]: ", question)
	line, _ := a.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}

type metricsSink struct {
	recorder core.MetricsRecorder
	registry *prometheus.Registry
	expvar   *core.ExpvarMetricsRecorder
	textfile string
}

func openMetrics(kind, textfile string) (*metricsSink, error) {
	switch kind {
	case "", "none":
		return nil, nil
	case "expvar":
		rec := core.NewExpvarMetricsRecorder("")
		return &metricsSink{recorder: rec, expvar: rec}, nil
	case "prometheus":
		reg := prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(reg)
		if err != nil {
			return nil, err
		}
		return &metricsSink{recorder: rec, registry: reg, textfile: textfile}, nil
	default:
		return nil, fmt.Errorf("unknown metrics recorder %s", kind)
	}
}

// flush writes the prometheus registry to the configured textfile, or logs the
// expvar snapshot at debug level, since the process exits right after.
func (m *metricsSink) flush(logger logrus.FieldLogger) error {
	if m.expvar != nil {
		snap := m.expvar.Snapshot()
		logger.WithField("operations", snap.Operations).Debug("metrics snapshot")
	}
	if m.registry != nil && m.textfile != "" {
		if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
	}
	return nil
}
