package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"driver-hub/internal/shared/models"
)

type AuthRepo struct {
	db *pgxpool.Pool
}

func NewAuthRepo(db *pgxpool.Pool) *AuthRepo {
	return &AuthRepo{db: db}
}

func (r *AuthRepo) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, phone, role, status, password_hash, attrs)
		VALUES ($1, $2, $3, $4, 'ACTIVE', $5, $6)
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Phone, user.Role, user.PasswordHash, user.Attrs)
	return err
}

func (r *AuthRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, phone, role, status, password_hash, attrs FROM users WHERE email=$1`
	row := r.db.QueryRow(ctx, query, email)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Phone, &user.Role, &user.Status, &user.PasswordHash, &user.Attrs)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *AuthRepo) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT id, email, phone, role, status, password_hash, attrs FROM users WHERE phone=$1`
	row := r.db.QueryRow(ctx, query, phone)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Phone, &user.Role, &user.Status, &user.PasswordHash, &user.Attrs)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *AuthRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, phone, role, status, password_hash, attrs FROM users WHERE id=$1`
	row := r.db.QueryRow(ctx, query, id)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Phone, &user.Role, &user.Status, &user.PasswordHash, &user.Attrs)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *AuthRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	query := `UPDATE users SET password_hash=$1 WHERE id=$2`
	_, err := r.db.Exec(ctx, query, hash, userID)
	return err
}

func (r *AuthRepo) CreateDriverProfile(ctx context.Context, driverID string) error {
	query := `INSERT INTO drivers (id, status, settings) VALUES ($1, 'OFFLINE', '{}')`
	_, err := r.db.Exec(ctx, query, driverID)
	return err
}
