package main

import (
	"context"
	"convo-lab/auth"
	"convo-lab/internal/render"
	pb "convo-lab/proto/convo"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"CONVO_SERVER_ADDR,default=localhost:8080"`
	UserID        string `env:"CONVO_USER_ID,required=true"`
	Colours       bool   `env:"CONVO_COLOURS,default=true"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps the conversation list of CONVO_USER_ID on screen, redrawn on every
// change, until Ctrl+C.
func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = metadata.AppendToOutgoingContext(ctx, auth.UserIDHeader, config.UserID)

	conn, err := grpc.NewClient(config.ServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	client := pb.NewConversationServiceClient(conn)
	stream, err := client.SubscribeConversations(ctx, &pb.SubscribeConversationsRequest{})
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open stream: %w", err)
	}
	log.Info("Connected, listening for conversation changes (Ctrl+C to quit)",
		"address", config.ServerAddress, "user_id", config.UserID)

	for {
		list, err := stream.Recv()
		if err != nil {
			// Normal exit if the user triggered a shutdown.
			if ctx.Err() != nil {
				return exitOK, nil
			}
			return exitRuntime, fmt.Errorf("stream error: %w", err)
		}

		header := fmt.Sprintf("  ====== %s: %d conversations ======", config.UserID, len(list.Conversations))
		if config.Colours {
			header = color.New(color.BgBlack, color.FgGreen).Render(header)
		}
		fmt.Println(header)
		render.Conversations(os.Stdout, lo.Map(list.Conversations, func(c *pb.Conversation, _ int) render.Row {
			name := c.CounterpartID
			if c.Counterpart != nil && c.Counterpart.Name != "" {
				name = c.Counterpart.Name
			}
			return render.Row{
				CounterpartID: c.CounterpartID,
				Name:          name,
				LastMessage:   c.LastMessageText,
				At:            c.LastMessageAt,
				Unread:        c.HasUnread,
			}
		}), config.Colours)
	}
}
