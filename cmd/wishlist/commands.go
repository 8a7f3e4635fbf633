package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/angelmondragon/wishlist-backend/internal/client"
	"github.com/angelmondragon/wishlist-backend/internal/pricefmt"
	"github.com/angelmondragon/wishlist-backend/internal/render"
)

type draftFlags struct {
	name     string
	price    string
	category string
	photo    string
}

func (d *draftFlags) register(fs *flag.FlagSet, defaultCategory string) {
	fs.StringVar(&d.name, "name", "", "gift name")
	fs.StringVar(&d.price, "price", "", "price; digits are read as cents (1999 -> R$ 19,99)")
	fs.StringVar(&d.category, "category", defaultCategory, "category")
	fs.StringVar(&d.photo, "photo", "", "path to a photo to attach")
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errw)
	return fs
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	filter := fs.String("filter", render.FilterAll, "category to show, or all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ctrl.Refresh(ctx); err != nil {
		return err
	}
	a.ctrl.SetFilter(*filter)
	return a.printCards()
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	var df draftFlags
	df.register(fs, client.DefaultCategory)
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := a.ctrl.NewDraft()
	draft.Name = strings.TrimSpace(df.name)
	draft.Price = pricefmt.FormatBRL(df.price)
	draft.Category = df.category
	return a.submit(ctx, draft, df.photo)
}

// edit opens the form pre-filled from an existing gift; saving creates a new one.
func (a *app) edit(ctx context.Context, args []string) error {
	fs := a.newFlagSet("edit")
	id := fs.Int64("id", 0, "gift id")
	var df draftFlags
	df.register(fs, "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ctrl.Refresh(ctx); err != nil {
		return err
	}
	draft, err := a.ctrl.BeginEdit(*id)
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(df.name); name != "" {
		draft.Name = name
	}
	if df.price != "" {
		draft.Price = pricefmt.FormatBRL(df.price)
	}
	if df.category != "" {
		draft.Category = df.category
	}
	if df.photo != "" {
		draft.Image = ""
	}
	return a.submit(ctx, draft, df.photo)
}

func (a *app) submit(ctx context.Context, draft client.Draft, photoPath string) error {
	if photoPath != "" {
		f, err := os.Open(photoPath)
		if err != nil {
			return fmt.Errorf("open photo: %w", err)
		}
		res, err := a.ctrl.AttachPhoto(ctx, f).Wait()
		_ = f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.errw, "photo %s %dx%d -> %dx%d (%d chars)\n",
			res.SourceType, res.SourceWidth, res.SourceHeight, res.Width, res.Height, res.Len())
	}

	id, err := a.ctrl.SubmitDraft(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created gift %d\n", id)
	return a.printCards()
}

func (a *app) toggle(ctx context.Context, args []string) error {
	fs := a.newFlagSet("toggle")
	id := fs.Int64("id", 0, "gift id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.bindCurrent(ctx); err != nil {
		return err
	}
	if err := a.disp.Dispatch(ctx, render.ActionToggle, *id); err != nil {
		return err
	}
	return a.printCards()
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	id := fs.Int64("id", 0, "gift id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.bindCurrent(ctx); err != nil {
		return err
	}
	if err := a.disp.Dispatch(ctx, render.ActionDelete, *id); err != nil {
		return err
	}

	if !*yes && !a.confirm("Tem certeza que deseja excluir este presente? [s/N] ") {
		a.ctrl.CancelDelete()
		fmt.Fprintln(a.out, "cancelled")
		return nil
	}
	if err := a.ctrl.ConfirmDelete(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted gift %d\n", *id)
	return a.printCards()
}

func (a *app) together(ctx context.Context) error {
	info, err := a.api.Together(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, info.Label)
	if info.Started {
		fmt.Fprintf(a.out, "%d meses e %d dias desde %s\n", info.Months, info.Days, info.Since)
	}
	return nil
}

// bindCurrent refreshes and binds the card controls of the full list.
func (a *app) bindCurrent(ctx context.Context) error {
	if err := a.ctrl.Refresh(ctx); err != nil {
		return err
	}
	a.disp.Bind(a.ctrl.Cards(nil))
	return nil
}

func (a *app) printCards() error {
	view := a.ctrl.View()
	reveal := render.NewReveal()
	for _, g := range view {
		reveal.Observe(g.ID, true)
	}
	return render.WriteTable(a.out, a.ctrl.Cards(reveal))
}

func (a *app) confirm(prompt string) bool {
	fmt.Fprint(a.out, prompt)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
