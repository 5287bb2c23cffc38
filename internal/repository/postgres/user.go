package postgres

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

const userColumns = `id, name, email, password_hash, role, verification_status, grc_id, language,
	profession, bio, birth_date, profile_photo, total_points, created_at, updated_at`

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.VerificationStatus, &u.GrcID,
		&u.Language, &u.Profession, &u.Bio, &u.BirthDate, &u.ProfilePhoto, &u.TotalPoints, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, role, verification_status, grc_id, language, profession, bio, birth_date, profile_photo, total_points, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13) RETURNING id`
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	logger.DatabaseCall("INSERT", "users", "email", u.Email)
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, u.VerificationStatus, u.GrcID,
		u.Language, u.Profession, u.Bio, u.BirthDate, u.ProfilePhoto, u.TotalPoints, now).Scan(&u.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Update writes profile fields. Points, password and verification have their
// own statements.
func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, grc_id=$2, language=$3, profession=$4, bio=$5, birth_date=$6, profile_photo=$7, updated_at=$8 WHERE id=$9`
	u.UpdatedAt = time.Now().UTC()
	return expectOne(r.db.ExecContext(ctx, query, u.Name, u.GrcID, u.Language, u.Profession, u.Bio, u.BirthDate, u.ProfilePhoto, u.UpdatedAt, u.ID))
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int32, hash string) error {
	query := `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	return expectOne(r.db.ExecContext(ctx, query, hash, id))
}

func (r *userRepository) SetVerification(ctx context.Context, id int32, status domain.VerificationStatus) error {
	query := `UPDATE users SET verification_status=$1, updated_at=NOW() WHERE id=$2`
	return expectOne(r.db.ExecContext(ctx, query, status, id))
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "users", "id", id)
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *userRepository) List(ctx context.Context, status domain.VerificationStatus, page, pageSize int32) ([]domain.User, int32, error) {
	w := &whereBuilder{}
	if status != "" {
		w.where("verification_status = %s", status)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + w.String() + ` ORDER BY total_points DESC, created_at DESC`
	query += w.page(page, pageSize)
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) ListIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (r *userRepository) AddPoints(ctx context.Context, id, delta int32) error {
	query := `UPDATE users SET total_points = total_points + $1, updated_at = NOW() WHERE id = $2`
	logger.DatabaseCall("UPDATE", "users", "id", id, "points_delta", delta)
	return expectOne(r.db.ExecContext(ctx, query, delta, id))
}

// DebitPoints subtracts amount only when the balance covers it.
func (r *userRepository) DebitPoints(ctx context.Context, id, amount int32) error {
	query := `UPDATE users SET total_points = total_points - $1, updated_at = NOW() WHERE id = $2 AND total_points >= $1`
	logger.DatabaseCall("UPDATE", "users", "id", id, "points_debit", amount)
	result, err := r.db.ExecContext(ctx, query, amount, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", n, nil)
	if n == 0 {
		return repository.ErrInsufficientPoints
	}
	return nil
}

type idRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanIDs(rows idRows) ([]int32, error) {
	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
