package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Genre           string     `json:"genre"`
	PublicationYear int        `json:"publicationYear"`
	AverageRating   float64    `json:"averageRating"`
	NumberOfPages   int        `json:"numberOfPages"`
	Description     *string    `json:"description,omitempty"`
	CreatedBy       *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type CreateBookRequest struct {
	Title           string  `json:"title" binding:"required,max=255"`
	Author          string  `json:"author" binding:"required,max=255"`
	Genre           string  `json:"genre" binding:"required,max=100"`
	PublicationYear int     `json:"publicationYear" binding:"required,min=1000"`
	AverageRating   float64 `json:"averageRating" binding:"gte=0,lte=5"`
	NumberOfPages   int     `json:"numberOfPages" binding:"required,min=1"`
	Description     *string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateBookRequest struct {
	Title           *string  `json:"title" binding:"omitempty,max=255"`
	Author          *string  `json:"author" binding:"omitempty,max=255"`
	Genre           *string  `json:"genre" binding:"omitempty,max=100"`
	PublicationYear *int     `json:"publicationYear" binding:"omitempty,min=1000"`
	AverageRating   *float64 `json:"averageRating" binding:"omitempty,gte=0,lte=5"`
	NumberOfPages   *int     `json:"numberOfPages" binding:"omitempty,min=1"`
	Description     *string  `json:"description" binding:"omitempty,max=1000"`
}

// BookFilters narrows the book listing. Zero values mean "no filter".
type BookFilters struct {
	Search    string
	Genre     string
	Author    string
	MinRating float64
}
