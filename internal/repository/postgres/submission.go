package postgres

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

const submissionColumns = `id, user_id, challenge_id, status, proof_key, description, admin_comment, submitted_at, reviewed_at`

type submissionRepository struct {
	db DBTX
}

func NewSubmissionRepository(db DBTX) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func scanSubmission(row rowScanner) (*domain.ChallengeSubmission, error) {
	s := &domain.ChallengeSubmission{}
	err := row.Scan(&s.ID, &s.UserID, &s.ChallengeID, &s.Status, &s.ProofKey, &s.Description, &s.AdminComment,
		&s.SubmittedAt, &s.ReviewedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *submissionRepository) Create(ctx context.Context, s *domain.ChallengeSubmission) error {
	query := `INSERT INTO challenge_submissions (user_id, challenge_id, status, proof_key, description)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, submitted_at`
	return r.db.QueryRowContext(ctx, query, s.UserID, s.ChallengeID, s.Status, s.ProofKey, s.Description).
		Scan(&s.ID, &s.SubmittedAt)
}

func (r *submissionRepository) GetByID(ctx context.Context, id int32) (*domain.ChallengeSubmission, error) {
	s, err := scanSubmission(r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM challenge_submissions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *submissionRepository) GetForUpdate(ctx context.Context, id int32) (*domain.ChallengeSubmission, error) {
	s, err := scanSubmission(r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM challenge_submissions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *submissionRepository) GetLatest(ctx context.Context, userID, challengeID int32) (*domain.ChallengeSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM challenge_submissions WHERE user_id = $1 AND challenge_id = $2
	          ORDER BY submitted_at DESC, id DESC LIMIT 1`
	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, userID, challengeID))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *submissionRepository) Update(ctx context.Context, s *domain.ChallengeSubmission) error {
	query := `UPDATE challenge_submissions SET status=$1, admin_comment=$2, reviewed_at=$3 WHERE id=$4`
	return expectOne(r.db.ExecContext(ctx, query, s.Status, s.AdminComment, s.ReviewedAt, s.ID))
}

func (r *submissionRepository) ListByChallenge(ctx context.Context, challengeID int32, status domain.SubmissionStatus) ([]domain.ChallengeSubmission, error) {
	w := &whereBuilder{}
	w.where("challenge_id = %s", challengeID)
	if status != "" {
		w.where("status = %s", status)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+submissionColumns+` FROM challenge_submissions`+w.String()+` ORDER BY submitted_at ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.ChallengeSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}
