package postgres

import (
	"context"
	"fmt"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

type skillRepository struct {
	db DBTX
}

func NewSkillRepository(db DBTX) repository.SkillRepository {
	return &skillRepository{db: db}
}

func skillTable(kind domain.SkillKind) (string, error) {
	switch kind {
	case domain.SkillKindTeach:
		return "user_skill_offered", nil
	case domain.SkillKindLearn:
		return "user_skill_interest", nil
	}
	return "", fmt.Errorf("%w: skill kind %q", domain.ErrUnknownValue, kind)
}

func (r *skillRepository) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, category FROM skills ORDER BY LOWER(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var sk domain.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// Ensure relies on the unique index over LOWER(name). The no-op update makes
// RETURNING yield the existing id on conflict.
func (r *skillRepository) Ensure(ctx context.Context, name string) (int32, error) {
	query := `INSERT INTO skills (name, category) VALUES ($1, $2)
	          ON CONFLICT ((LOWER(name))) DO UPDATE SET name = skills.name
	          RETURNING id`
	logger.DatabaseCall("UPSERT", "skills", "name", name)
	var id int32
	err := r.db.QueryRowContext(ctx, query, name, domain.DefaultSkillCategory).Scan(&id)
	return id, err
}

func (r *skillRepository) ListForUser(ctx context.Context, userID int32) (*domain.UserSkills, error) {
	query := `SELECT 'teach', s.name FROM skills s JOIN user_skill_offered o ON o.skill_id = s.id WHERE o.user_id = $1
	          UNION ALL
	          SELECT 'learn', s.name FROM skills s JOIN user_skill_interest i ON i.skill_id = s.id WHERE i.user_id = $1
	          ORDER BY 1, 2`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.UserSkills{Teach: []string{}, Learn: []string{}}
	for rows.Next() {
		var kind domain.SkillKind
		var name string
		if err := rows.Scan(&kind, &name); err != nil {
			return nil, err
		}
		if kind == domain.SkillKindTeach {
			out.Teach = append(out.Teach, name)
		} else {
			out.Learn = append(out.Learn, name)
		}
	}
	return out, rows.Err()
}

// ReplaceForUser swaps the user's list of the given kind for skillIDs.
func (r *skillRepository) ReplaceForUser(ctx context.Context, userID int32, kind domain.SkillKind, skillIDs []int32) error {
	table, err := skillTable(kind)
	if err != nil {
		return err
	}
	logger.DatabaseCall("REPLACE", table, "user_id", userID, "count", len(skillIDs))
	if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, skill_id) SELECT $1, sid FROM unnest($2::int[]) AS sid ON CONFLICT DO NOTHING`,
		userID, idArray(skillIDs))
	return err
}
