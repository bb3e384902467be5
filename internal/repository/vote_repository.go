package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadyVoted is returned when the voter's is_voted flag was already set
// when the vote transaction tried to claim it.
var ErrAlreadyVoted = errors.New("user has already voted")

// VoteRepository commits a ballot. The flag set, the vote-record insert and
// the tally increment run in a single transaction so concurrent attempts by
// the same voter cannot both commit.
type VoteRepository interface {
	Cast(ctx context.Context, candidateID, voterID string) error
}

type voteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository instantiates repository.
func NewVoteRepository(pool *pgxpool.Pool) VoteRepository {
	return &voteRepository{pool: pool}
}

func (r *voteRepository) Cast(ctx context.Context, candidateID, voterID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Conditional update is the authoritative one-vote-per-user guard:
	// zero rows affected means another request claimed the flag first.
	cmd, err := tx.Exec(ctx,
		`UPDATE users SET is_voted=TRUE, updated_at=NOW() WHERE id=$1 AND is_voted=FALSE`,
		voterID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAlreadyVoted
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO votes (candidate_id, voter_id) VALUES ($1, $2)`,
		candidateID, voterID,
	); err != nil {
		return err
	}

	cmd, err = tx.Exec(ctx,
		`UPDATE candidates SET vote_count=vote_count+1, updated_at=NOW() WHERE id=$1`,
		candidateID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
