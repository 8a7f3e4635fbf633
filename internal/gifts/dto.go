package gifts

import "github.com/angelmondragon/wishlist-backend/pkg/db/models"

// Gift is the wire representation of a wishlist row.
type Gift struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Done     bool   `json:"done"`
}

// CreateInput is the body of POST /gifts. Done is never accepted from callers.
type CreateInput struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

func fromModel(m models.Gift) Gift {
	return Gift{
		ID:       m.ID,
		Name:     m.Name,
		Price:    m.Price,
		Image:    m.Image,
		Category: m.Category,
		Done:     m.Done,
	}
}

func (in CreateInput) toModel() models.Gift {
	return models.Gift{
		Name:     in.Name,
		Price:    in.Price,
		Image:    in.Image,
		Category: in.Category,
		Done:     false,
	}
}
