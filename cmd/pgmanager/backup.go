package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"pgmanager/internal/backup"
)

func (a *app) backupExport(ctx context.Context, args []string) error {
	fs := a.flags("backup export")
	out := fs.String("o", "", "output file or directory; stdout when empty")
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	gw, err := a.gateway(ctx, false)
	if err != nil {
		return err
	}
	doc, err := gw.Export(ctx)
	if err != nil {
		return err
	}
	if *out == "" {
		return backup.WriteTo(a.stdout, doc)
	}
	path := *out
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, gw.BackupName())
	}
	f, err := os.Create(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := backup.WriteTo(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	a.printf("Exported %d floors and %d receipts to %s\n", len(doc.Floors), len(doc.Receipts), path)
	return nil
}

func (a *app) backupImport(ctx context.Context, args []string) error {
	fs := a.flags("backup import")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	var r io.Reader = a.in
	if rest[0] != "-" {
		f, err := os.Open(rest[0]) // #nosec G304 -- operator-supplied path
		if err != nil {
			return fmt.Errorf("open %s: %w", rest[0], err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	gw, err := a.gateway(ctx, false)
	if err != nil {
		return err
	}
	report, err := gw.Import(ctx, r)
	if err != nil {
		return err
	}
	return a.printReport(report)
}

func (a *app) backupArchive(ctx context.Context) error {
	gw, err := a.gateway(ctx, true)
	if err != nil {
		return err
	}
	info, err := gw.Archive(ctx)
	if err != nil {
		return err
	}
	a.printf("Archived %s (%d bytes)\n", info.Key, info.Size)
	if info.URL != "" {
		a.printf("%s\n", info.URL)
	}
	return nil
}

func (a *app) backupArchives(ctx context.Context) error {
	gw, err := a.gateway(ctx, true)
	if err != nil {
		return err
	}
	infos, err := gw.ListArchives(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		a.printf("No archived backups.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KEY\tSIZE\tMODIFIED")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Key, info.Size, info.LastModified.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}

func (a *app) backupRestore(ctx context.Context, args []string) error {
	fs := a.flags("backup restore")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	key := rest[0]
	if !strings.HasPrefix(key, backup.ArchivePrefix) {
		key = backup.ArchivePrefix + key
	}
	gw, err := a.gateway(ctx, true)
	if err != nil {
		return err
	}
	report, err := gw.Restore(ctx, key)
	if err != nil {
		return err
	}
	return a.printReport(report)
}

func (a *app) backupReset(ctx context.Context, args []string) error {
	fs := a.flags("backup reset")
	confirm := fs.String("confirm", "", "confirmation token, prompted for when omitted")
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	token := *confirm
	prompted := false
	if !flagGiven(fs, "confirm") {
		prompted = true
		a.printf("This erases all floors, rooms, residents and receipts. Type %s to confirm: ", backup.ResetToken)
		line, _ := a.in.ReadString('\n')
		token = strings.TrimSpace(line)
	}
	gw, err := a.gateway(ctx, false)
	if err != nil {
		return err
	}
	err = gw.Reset(ctx, token)
	if prompted && errors.Is(err, backup.ErrResetNotConfirmed) {
		a.printf("Cancelled.\n")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("All data deleted.\n")
	return nil
}

func (a *app) printReport(report backup.ImportReport) error {
	for _, kr := range []backup.KeyReport{report.Floors, report.Receipts} {
		a.printf("%s: %s", kr.Key, kr.Status)
		if kr.Status == backup.KeyReplaced || kr.Status == backup.KeyRejected {
			a.printf(" (%d records)", kr.Records)
		}
		a.printf("\n")
		for _, issue := range kr.Issues {
			a.printf("  record %d: %s\n", issue.Index, issue.Reason)
		}
	}
	if !report.Applied() {
		return errors.New("backup contained nothing that could be imported")
	}
	return nil
}
