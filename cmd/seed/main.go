package main

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/infrastructure/storage"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

var (
	instruments = []string{"guitar", "bass", "drums", "keys", "vocals", "sax"}
	genres      = []string{"jazz", "rock", "funk", "soul", "metal", "folk"}
	skills      = []string{"beginner", "intermediate", "advanced", "professional"}
	lines       = []string{
		"are you free for a jam this week?",
		"loved your last set",
		"do you know any drummer around?",
		"rehearsal moved to thursday",
		"can you send me the chords?",
		"let's record a demo",
	}
)

// seed fills a badger directory with demo musicians and messages so the
// inbox and client tools have something to show. Do not run it against a
// directory a master is currently using.
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	users := flag.Int("users", 6, "Number of musicians")
	messages := flag.Int("messages", 50, "Number of messages")
	flag.Parse()

	if err := run(*dbPath, *users, *messages); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string, users, messages int) error {
	if users < 2 {
		return fmt.Errorf("at least 2 users are needed, got %d", users)
	}
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		return err
	}
	defer db.Close()

	log := logs.GetLoggerFromString("WARN")
	ctx := context.Background()
	profiles := storage.NewProfileRepository(db, log)
	repository := storage.NewMessageRepository(db, log, nil, nil)

	ids := lo.Times(users, func(i int) string { return fmt.Sprintf("musician-%02d", i+1) })
	for _, id := range ids {
		p := profile.Profile{
			UserID:      id,
			Name:        fmt.Sprintf("Musician %s", id[len(id)-2:]),
			Instruments: lo.Samples(instruments, 1+rand.IntN(2)),
			Genres:      lo.Samples(genres, 1+rand.IntN(3)),
			SkillLevel:  lo.Sample(skills),
		}
		if err := profiles.Save(ctx, p); err != nil {
			return err
		}
	}

	start := time.Now().Add(-time.Duration(messages) * time.Minute)
	for i := 0; i < messages; i++ {
		pair := lo.Samples(ids, 2)
		msg, err := chat.NewMessage(pair[0], pair[1], lo.Sample(lines), start.Add(time.Duration(i)*time.Minute))
		if err != nil {
			return err
		}
		msg.IsRead = rand.IntN(2) == 0
		if err := repository.Append(ctx, msg); err != nil {
			return err
		}
	}
	fmt.Printf("Seeded %d musicians and %d messages into %s\n", users, messages, dbPath)
	return nil
}
