package main

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/infrastructure/storage"
	"convo-lab/internal/render"
	"convo-lab/runtime"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

// inbox prints the conversation list of one user straight from a badger
// directory. The server can keep running: the database is opened read-only.
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	user := flag.String("user", "", "User whose conversations are listed")
	colours := flag.Bool("colours", true, "Highlight unread conversations")
	logLevel := flag.String("log-level", "WARN", "Log level")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}
	if err := run(*dbPath, *user, *colours, logs.GetLoggerFromString(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "inbox: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, user string, colours bool, log *slog.Logger) error {
	db, err := badger.Open(badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	defer db.Close()

	ctx := context.Background()
	messages, err := storage.NewMessageRepository(db, log, nil, nil).Query(ctx, user)
	if err != nil {
		return err
	}
	aggregator := runtime.NewAggregator(log, storage.NewProfileRepository(db, log), nil)
	conversations, failures, err := aggregator.Aggregate(ctx, user, messages)
	if err != nil {
		return err
	}

	render.Conversations(os.Stdout, lo.Map(conversations, func(c chat.Conversation, _ int) render.Row {
		return render.Row{
			CounterpartID: c.CounterpartID,
			Name:          c.Counterpart.Name,
			LastMessage:   c.LastMessageText,
			At:            c.LastMessageAt,
			Unread:        c.HasUnread,
		}
	}), colours)

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", f.CounterpartID, f.Err)
	}
	return nil
}
