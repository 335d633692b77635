// Command librarian manages the catalog, the loans and the polls of a small library.
//
// It acts as the operator principal from the config file, see shared/shell/config.
//
//	librarian migrate
//	librarian seed testdata/seed.yaml
//	librarian copy lend 0b5e... jdoe --days 7
//	librarian loans overdue -o json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp(os.Stdout, os.Stderr, time.Now)
	err := newRootCommand(a).ExecuteContext(ctx)

	a.close()
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
