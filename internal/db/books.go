package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/booknest/backend/internal/model"
)

const bookColumns = `id, title, author, genre, publication_year, average_rating,
	number_of_pages, description, created_by, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }) (*model.Book, error) {
	var book model.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.PublicationYear,
		&book.AverageRating,
		&book.NumberOfPages,
		&book.Description,
		&book.CreatedBy,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func buildBookFilter(f model.BookFilters) (string, []any) {
	var conds []string
	var args []any

	appendArg := func(value any) int {
		args = append(args, value)
		return len(args)
	}

	if f.Search != "" {
		n := appendArg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", n, n))
	}
	if f.Genre != "" {
		conds = append(conds, fmt.Sprintf("genre ILIKE $%d", appendArg("%"+f.Genre+"%")))
	}
	if f.Author != "" {
		conds = append(conds, fmt.Sprintf("author ILIKE $%d", appendArg("%"+f.Author+"%")))
	}
	if f.MinRating > 0 {
		conds = append(conds, fmt.Sprintf("average_rating >= $%d", appendArg(f.MinRating)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortClause(sortBy string) string {
	switch sortBy {
	case "rating":
		return "average_rating DESC"
	case "year":
		return "publication_year DESC"
	case "pages":
		return "number_of_pages DESC"
	case "author":
		return "author ASC"
	default:
		return "title ASC"
	}
}

func (db *Postgres) ListBooks(ctx context.Context, f model.BookFilters, sortBy string, limit, offset int) ([]model.Book, error) {
	where, args := buildBookFilter(f)
	query := fmt.Sprintf(
		`SELECT %s FROM books%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		bookColumns, where, sortClause(sortBy), len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

func (db *Postgres) CountBooks(ctx context.Context, f model.BookFilters) (int64, error) {
	where, args := buildBookFilter(f)
	var total int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`+where, args...).Scan(&total)
	return total, err
}

func (db *Postgres) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return scanBook(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) CreateBook(ctx context.Context, book model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (id, title, author, genre, publication_year, average_rating,
			number_of_pages, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + bookColumns
	return scanBook(db.Pool.QueryRow(ctx, query,
		uuid.New(),
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationYear,
		book.AverageRating,
		book.NumberOfPages,
		book.Description,
		book.CreatedBy,
	))
}

// BookUpdate lists the mutable book fields; nil means "leave unchanged".
type BookUpdate struct {
	Title           *string
	Author          *string
	Genre           *string
	PublicationYear *int
	AverageRating   *float64
	NumberOfPages   *int
	Description     *string
}

func (db *Postgres) UpdateBook(ctx context.Context, id uuid.UUID, update BookUpdate) (*model.Book, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		appendSet("title", *update.Title)
	}
	if update.Author != nil {
		appendSet("author", *update.Author)
	}
	if update.Genre != nil {
		appendSet("genre", *update.Genre)
	}
	if update.PublicationYear != nil {
		appendSet("publication_year", *update.PublicationYear)
	}
	if update.AverageRating != nil {
		appendSet("average_rating", *update.AverageRating)
	}
	if update.NumberOfPages != nil {
		appendSet("number_of_pages", *update.NumberOfPages)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}

	query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + bookColumns
	return scanBook(db.Pool.QueryRow(ctx, query, args...))
}

func (db *Postgres) DeleteBook(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
