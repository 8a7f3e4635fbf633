package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/angelmondragon/wishlist-backend/internal/gifts"
)

// Action names a per-card control.
type Action string

const (
	ActionToggle Action = "toggle"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions lists the card controls in display order.
var Actions = []Action{ActionToggle, ActionEdit, ActionDelete}

// cardStagger is the transition delay added per card position.
const cardStagger = 100 * time.Millisecond

// Binding ties a control to the gift it acts on.
type Binding struct {
	Action Action
	ID     int64
}

// Card is the view model of one list entry.
type Card struct {
	ID       int64
	Name     string
	Price    string
	Category string
	ImageURL string
	Done     bool
	Classes  string
	Delay    time.Duration
	Bindings []Binding
}

// Cards builds view models for an already computed view.
func Cards(view []gifts.Gift, reveal *Reveal, placeholder string) []Card {
	cards := make([]Card, 0, len(view))
	for i, g := range view {
		img := g.Image
		if img == "" {
			img = placeholder
		}
		bindings := make([]Binding, 0, len(Actions))
		for _, a := range Actions {
			bindings = append(bindings, Binding{Action: a, ID: g.ID})
		}
		cards = append(cards, Card{
			ID:       g.ID,
			Name:     g.Name,
			Price:    g.Price,
			Category: g.Category,
			ImageURL: img,
			Done:     g.Done,
			Classes:  cardClasses(g.Done, reveal.IsRevealed(g.ID)),
			Delay:    time.Duration(i) * cardStagger,
			Bindings: bindings,
		})
	}
	return cards
}

func cardClasses(done, revealed bool) string {
	classes := []string{"gift-item", "hidden"}
	if revealed {
		classes = append(classes, "show")
	}
	if done {
		classes = append(classes, "done")
	}
	return strings.Join(classes, " ")
}

// WriteTable renders cards as an aligned text table.
func WriteTable(w io.Writer, cards []Card) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tNAME\tPRICE\tCATEGORY\tIMAGE")
	for _, c := range cards {
		mark := " "
		if c.Done {
			mark = "x"
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s\t%s\n", c.ID, mark, c.Name, c.Price, c.Category, imageSummary(c.ImageURL))
	}
	return tw.Flush()
}

func imageSummary(url string) string {
	if strings.HasPrefix(url, "data:") {
		mime, _, _ := strings.Cut(strings.TrimPrefix(url, "data:"), ";")
		return fmt.Sprintf("%s (%d chars)", mime, len(url))
	}
	return url
}
