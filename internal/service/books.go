package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/booknest/backend/internal/db"
	"github.com/booknest/backend/internal/model"
)

type BookStore interface {
	ListBooks(ctx context.Context, f model.BookFilters, sortBy string, limit, offset int) ([]model.Book, error)
	CountBooks(ctx context.Context, f model.BookFilters) (int64, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (*model.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, update db.BookUpdate) (*model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

func (s *BookService) List(ctx context.Context, f model.BookFilters, page, limit int, sortBy string) (model.BookListResponse, error) {
	page, limit = clampPage(page, limit)

	books, err := s.books.ListBooks(ctx, f, sortBy, limit, (page-1)*limit)
	if err != nil {
		return model.BookListResponse{}, err
	}
	total, err := s.books.CountBooks(ctx, f)
	if err != nil {
		return model.BookListResponse{}, err
	}

	if books == nil {
		books = []model.Book{}
	}
	return model.BookListResponse{
		Books:      books,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) Create(ctx context.Context, actor *model.AuthUser, req model.CreateBookRequest) (*model.Book, error) {
	if req.PublicationYear > time.Now().Year() {
		return nil, fmt.Errorf("%w: publication year cannot be in the future", ErrInvalidInput)
	}

	owner := actor.ID
	return s.books.CreateBook(ctx, model.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		AverageRating:   req.AverageRating,
		NumberOfPages:   req.NumberOfPages,
		Description:     req.Description,
		CreatedBy:       &owner,
	})
}

// Update rewrites book fields; only the creator or an admin may do so.
func (s *BookService) Update(ctx context.Context, actor *model.AuthUser, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(actor, book); err != nil {
		return nil, err
	}
	if req.PublicationYear != nil && *req.PublicationYear > time.Now().Year() {
		return nil, fmt.Errorf("%w: publication year cannot be in the future", ErrInvalidInput)
	}

	updated, err := s.books.UpdateBook(ctx, id, db.BookUpdate{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		AverageRating:   req.AverageRating,
		NumberOfPages:   req.NumberOfPages,
		Description:     req.Description,
	})
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, actor *model.AuthUser, id uuid.UUID) error {
	book, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(actor, book); err != nil {
		return err
	}

	deleted, err := s.books.DeleteBook(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Ownerless books (creator account deleted) stay editable by admins only.
func (s *BookService) checkOwnership(actor *model.AuthUser, book *model.Book) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if book.CreatedBy != nil && *book.CreatedBy == actor.ID {
		return nil
	}
	return ErrForbidden
}
