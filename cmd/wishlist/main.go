// Command wishlist is a terminal client for the shared gift list.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/wishlist-backend/internal/client"
	"github.com/angelmondragon/wishlist-backend/internal/photo"
	"github.com/angelmondragon/wishlist-backend/pkg/config"
	"github.com/angelmondragon/wishlist-backend/pkg/logger"
)

const usage = `usage: wishlist <command> [flags]

commands:
  list      [-filter category]
  add       -name N [-price P] [-category C] [-photo path]
  edit      -id ID [-name N] [-price P] [-category C] [-photo path]
  toggle    -id ID
  delete    -id ID [-yes]
  together
`

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{ServiceName: "wishlist-cli", Level: "warn", Output: os.Stderr})
	app := newApp(cfg, &http.Client{Timeout: cfg.Client.Timeout}, logg, os.Stdin, os.Stdout, os.Stderr)
	if err := app.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	api  *client.API
	ctrl *client.Controller
	disp *client.Dispatcher
	in   io.Reader
	out  io.Writer
	errw io.Writer
}

func newApp(cfg *config.ClientSettings, hc *http.Client, logg *logger.Logger, in io.Reader, out, errw io.Writer) *app {
	api := client.NewAPI(cfg.Client.APIURL, hc)
	ctrl := client.NewController(api, client.Options{
		MaxImageChars:  cfg.Gifts.MaxImageChars,
		PlaceholderURL: cfg.Gifts.PlaceholderURL,
		Pipeline: photo.Pipeline{
			MaxWidth:      cfg.Media.ImageMaxWidth,
			Quality:       cfg.Media.ImageQuality,
			MaxInputBytes: cfg.Media.MaxInputBytes,
		},
		Logger: logg,
	})
	return &app{
		api:  api,
		ctrl: ctrl,
		disp: client.NewDispatcher(ctrl),
		in:   in,
		out:  out,
		errw: errw,
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.errw, usage)
		return fmt.Errorf("missing command")
	}
	defer a.flushMessages()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return a.list(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "toggle":
		return a.toggle(ctx, rest)
	case "delete":
		return a.remove(ctx, rest)
	case "together":
		return a.together(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.errw, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) flushMessages() {
	for _, msg := range a.ctrl.Messages() {
		fmt.Fprintln(a.errw, msg)
	}
}
