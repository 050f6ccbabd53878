package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dukerupert/dietlog/internal/backup"
)

const restoreUsage = "usage: dietlog restore <backup-id> <destination.db>"

type restorer interface {
	Enabled() bool
	Restore(ctx context.Context, backupID int64, dstPath string) error
}

// runRestore writes backup args[0] to the new file args[1]. An existing
// destination is refused so the live database cannot be overwritten.
func runRestore(ctx context.Context, r restorer, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New(restoreUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid backup id %q", args[0])
	}
	dst := strings.TrimSpace(args[1])
	if dst == "" {
		return errors.New(restoreUsage)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("destination %s already exists", dst)
	}
	if !r.Enabled() {
		return backup.ErrNotConfigured
	}

	if err := r.Restore(ctx, id, dst); err != nil {
		return fmt.Errorf("restore backup %d: %w", id, err)
	}
	fmt.Fprintf(out, "restored backup %d to %s\n", id, dst)
	return nil
}
