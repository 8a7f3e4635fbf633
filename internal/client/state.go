package client

import "github.com/angelmondragon/wishlist-backend/internal/gifts"

// DefaultCategory preselects the form's category.
const DefaultCategory = "casa"

// State is everything the client knows. Gifts is a disposable snapshot of
// the server list and is only ever replaced as a whole.
type State struct {
	Gifts      []gifts.Gift
	EditingID  *int64
	IDToDelete *int64
	Filter     string
	// PendingImage is the last successfully compressed photo for the open form.
	PendingImage string
}

func (s State) clone() State {
	out := s
	out.Gifts = append([]gifts.Gift(nil), s.Gifts...)
	if s.EditingID != nil {
		id := *s.EditingID
		out.EditingID = &id
	}
	if s.IDToDelete != nil {
		id := *s.IDToDelete
		out.IDToDelete = &id
	}
	return out
}

func (s State) find(id int64) (gifts.Gift, bool) {
	for _, g := range s.Gifts {
		if g.ID == id {
			return g, true
		}
	}
	return gifts.Gift{}, false
}

// Draft is the gift form. An empty Image falls back to the pending photo.
type Draft struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Image    string `json:"image"`
}
