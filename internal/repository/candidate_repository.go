package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/election-service/internal/domain"
)

// PublicCandidate is the restricted listing projection: no id, no age, no tally.
type PublicCandidate struct {
	Name  string
	Party string
}

// CandidateRepository encapsulates candidate persistence.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	Update(ctx context.Context, candidate *domain.Candidate) error
	Delete(ctx context.Context, id string) (*domain.Candidate, error)
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	ListPublic(ctx context.Context) ([]PublicCandidate, error)
}

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository instantiates repository.
func NewCandidateRepository(pool *pgxpool.Pool) CandidateRepository {
	return &candidateRepository{pool: pool}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	const query = `
        INSERT INTO candidates (id, name, party, age, vote_count)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		candidate.ID,
		candidate.Name,
		candidate.Party,
		candidate.Age,
		candidate.VoteCount,
	).Scan(&candidate.CreatedAt, &candidate.UpdatedAt)
}

func (r *candidateRepository) Update(ctx context.Context, candidate *domain.Candidate) error {
	const query = `
        UPDATE candidates SET name=$1, party=$2, age=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		candidate.Name,
		candidate.Party,
		candidate.Age,
		candidate.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id string) (*domain.Candidate, error) {
	const query = `
        DELETE FROM candidates WHERE id=$1
        RETURNING id, name, party, age, vote_count, created_at, updated_at`

	var candidate domain.Candidate
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&candidate.ID,
		&candidate.Name,
		&candidate.Party,
		&candidate.Age,
		&candidate.VoteCount,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	const query = `
        SELECT id, name, party, age, vote_count, created_at, updated_at
        FROM candidates WHERE id=$1`

	var candidate domain.Candidate
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&candidate.ID,
		&candidate.Name,
		&candidate.Party,
		&candidate.Age,
		&candidate.VoteCount,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	const query = `
        SELECT id, name, party, age, vote_count, created_at, updated_at
        FROM candidates ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Candidate
	for rows.Next() {
		var candidate domain.Candidate
		if err := rows.Scan(
			&candidate.ID,
			&candidate.Name,
			&candidate.Party,
			&candidate.Age,
			&candidate.VoteCount,
			&candidate.CreatedAt,
			&candidate.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, candidate)
	}
	return result, rows.Err()
}

func (r *candidateRepository) ListPublic(ctx context.Context) ([]PublicCandidate, error) {
	const query = `SELECT name, party FROM candidates ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PublicCandidate
	for rows.Next() {
		var c PublicCandidate
		if err := rows.Scan(&c.Name, &c.Party); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
