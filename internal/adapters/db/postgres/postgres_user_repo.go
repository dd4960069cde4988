package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByEmail")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *PostgresUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := p.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListUsers")
	}
	return users, nil
}

func (p *PostgresUserRepo) UpdateUser(ctx context.Context, id uuid.UUID, upd repo.UserUpdate) (model.User, error) {
	cols := map[string]any{}
	if upd.FirstName != nil {
		cols["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		cols["last_name"] = *upd.LastName
	}
	if upd.Role != nil {
		cols["role"] = string(*upd.Role)
	}
	if upd.IsActive != nil {
		cols["is_active"] = *upd.IsActive
	}
	if upd.ClearRefreshToken {
		cols["refresh_token"] = nil
	}
	if len(cols) == 0 {
		return p.GetUserByID(ctx, id)
	}

	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(cols)
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UpdateUser")
	}
	if res.RowsAffected == 0 {
		return model.User{}, customErrors.ErrNotFound
	}

	return p.GetUserByID(ctx, id)
}

func (p *PostgresUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	// одна запись UPDATE: при гонке логинов выигрывает последний
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("refresh_token", token)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "SetRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteUser")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
