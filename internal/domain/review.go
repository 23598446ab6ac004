package domain

import (
	"time"

	"github.com/google/uuid"
)

const AnonymousReviewer = "Anonymous"

type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Author    string
	Comment   string
	Rating    int
	CreatedAt time.Time
}

// ReviewInput is what a shopper submits about a product.
type ReviewInput struct {
	Author  string `validate:"max=100"`
	Comment string `validate:"max=2000"`
	Rating  int    `validate:"required,min=1,max=5"`
}
