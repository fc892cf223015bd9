package rqc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Score(ctx context.Context, displayName string, from, to *time.Time) (float64, error) {
	if from != nil && to != nil {
		return r.averageInRange(ctx, displayName, *from, *to)
	}
	return r.latest(ctx, displayName)
}

func (r *RepoImpl) averageInRange(ctx context.Context, displayName string, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(AVG(score), 0) FROM rqc_scores
				WHERE display_name = $1 AND recorded_at >= $2 AND recorded_at <= $3`
	var score float64
	err := r.db.QueryRow(ctx, query, displayName, from, to).Scan(&score)
	if err != nil {
		err := fmt.Errorf("could not query rqc scores: %w", err)
		log.Error(err)
		return 0, err
	}
	return score, nil
}

// latest returns the most recent score for the name. An exact match is
// preferred; when none exists, a prefix match is tried before giving up.
func (r *RepoImpl) latest(ctx context.Context, displayName string) (float64, error) {
	query := `SELECT score FROM rqc_scores WHERE display_name = $1
				ORDER BY recorded_at DESC LIMIT 1`
	var score float64
	err := r.db.QueryRow(ctx, query, displayName).Scan(&score)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err := fmt.Errorf("could not query rqc score: %w", err)
		log.Error(err)
		return 0, err
	}

	prefixQuery := `SELECT score FROM rqc_scores WHERE display_name LIKE $1 || '%'
				ORDER BY recorded_at DESC LIMIT 1`
	err = r.db.QueryRow(ctx, prefixQuery, displayName).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("no rqc score for %q, resolving to 0", displayName)
		return 0, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query rqc score by prefix: %w", err)
		log.Error(err)
		return 0, err
	}
	return score, nil
}
