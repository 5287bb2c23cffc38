package postgres

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type adminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, privilege, created_at FROM admins WHERE id = $1`, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, privilege, created_at FROM admins WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *adminRepository) get(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	a := &domain.Admin{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Privilege, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}
