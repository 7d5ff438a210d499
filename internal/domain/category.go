package domain

import "github.com/google/uuid"

// Category is a user-scoped label for transactions. Names are not unique;
// two categories with the same name are distinct rows.
type Category struct {
	ID     int32     `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
}

// CategoryRepository defines the interface for category persistence.
// Every method takes the acting user's ID and filters on it; a category
// owned by someone else behaves exactly like a missing one.
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(userID uuid.UUID, id int32) (*Category, error)
	GetByUser(userID uuid.UUID) ([]*Category, error)
	// Delete removes the category; referencing transactions keep their
	// rows and drop to a null category.
	Delete(userID uuid.UUID, id int32) error
}
