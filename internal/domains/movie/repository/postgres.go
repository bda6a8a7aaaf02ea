package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"movielist-backend/internal/domains/movie/model"
	"movielist-backend/pkg/database"
)

const uniqueViolation = "23505"

// rating, ranking and review are nullable in the schema.
const movieColumns = `id, title, year, description, COALESCE(rating, 0), COALESCE(ranking, 0), COALESCE(review, ''), img_url, created_at, updated_at`

// DBPool is the part of *pgxpool.Pool the store uses.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	pool DBPool
}

// NewPostgresRepository builds the pgx backed store.
func NewPostgresRepository(pool DBPool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, m *model.Movie) error {
	query := `
		INSERT INTO movie (title, year, description, rating, ranking, review, img_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		m.Title, m.Year, m.Description, m.Rating, m.Ranking, m.Review, m.ImgURL,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewMovieTitleExists(m.Title)
		}
		return model.NewCreateMovieError(err)
	}
	return nil
}

func (r *postgresRepository) ListByRating(ctx context.Context) ([]*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movie ORDER BY COALESCE(rating, 0) ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.NewListMovieError(err)
	}
	defer rows.Close()

	movies := make([]*model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, model.NewListMovieError(err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewListMovieError(err)
	}

	return movies, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movie WHERE id = $1`

	m, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewMovieNotFound(id)
		}
		return nil, fmt.Errorf("failed to get movie by id: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) Update(ctx context.Context, m *model.Movie) error {
	query := `
		UPDATE movie
		SET rating = $2, review = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, m.ID, m.Rating, m.Review).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewMovieNotFound(m.ID)
		}
		return model.NewUpdateMovieError(err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM movie WHERE id = $1`, id)
		if err != nil {
			return model.NewDeleteMovieError(err)
		}
		if tag.RowsAffected() == 0 {
			return model.NewMovieNotFound(id)
		}
		if tag.RowsAffected() > 1 {
			return model.NewDeleteMovieError(fmt.Errorf("delete matched %d rows", tag.RowsAffected()))
		}
		return nil
	})
	if err != nil && !model.IsDomainError(err) {
		return model.NewDeleteMovieError(err)
	}
	return err
}

// SaveRankings queues one UPDATE per movie in a pgx.Batch and sends it
// inside a single transaction.
func (r *postgresRepository) SaveRankings(ctx context.Context, rankings map[int64]int) error {
	if len(rankings) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(rankings))
	for id := range rankings {
		ids = append(ids, id)
	}
	// Stable lock order across concurrent recomputes.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, id := range ids {
			batch.Queue(
				`UPDATE movie SET ranking = $2 WHERE id = $1 AND ranking IS DISTINCT FROM $2`,
				id, rankings[id],
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range ids {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return model.NewRankingError(err)
			}
		}
		if err := results.Close(); err != nil {
			return model.NewRankingError(err)
		}
		return nil
	})
	if err != nil && !model.IsDomainError(err) {
		return model.NewRankingError(err)
	}
	return err
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movie`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}

func scanMovie(row pgx.Row) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.Description,
		&m.Rating,
		&m.Ranking,
		&m.Review,
		&m.ImgURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
