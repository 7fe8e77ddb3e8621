package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/easel/core"
)

func (a *Adapter) CreateUser(user *core.User) error {
	ctx := context.Background()

	query := `INSERT INTO public.users (email, email_verified, name) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	var id string
	var createdAt, updatedAt time.Time

	err := a.pool.QueryRow(ctx, query, user.Email, user.EmailVerified, user.Name).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return core.NewStorageError("users.create", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) GetUserByID(id string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT id, email, email_verified, name, created_at, updated_at FROM public.users WHERE id = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&user.ID, &user.Email, &user.EmailVerified, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, core.NewStorageError("users.get", err)
	}
	return user, nil
}

func (a *Adapter) GetUserByEmail(email string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT id, email, email_verified, name, created_at, updated_at FROM public.users WHERE email = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, email).Scan(&user.ID, &user.Email, &user.EmailVerified, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, core.NewStorageError("users.get", err)
	}
	return user, nil
}

func (a *Adapter) CreateAccount(acc *core.Account) error {
	ctx := context.Background()

	query := `INSERT INTO public.accounts (user_id, provider_id, account_id, password)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time
	err := a.pool.QueryRow(ctx, query,
		acc.UserID, acc.ProviderID, acc.AccountID, acc.Password,
	).Scan(&id, &createdAt, &updatedAt)

	if err != nil {
		return core.NewStorageError("accounts.create", err)
	}

	acc.ID = id
	acc.CreatedAt = createdAt
	acc.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) GetAccountByUserAndProvider(userID, providerID string) ([]*core.Account, error) {
	ctx := context.Background()
	query := `SELECT id, user_id, provider_id, account_id, password, created_at, updated_at
	          FROM public.accounts WHERE user_id = $1 AND provider_id = $2`

	rows, err := a.pool.Query(ctx, query, userID, providerID)
	if err != nil {
		return nil, core.NewStorageError("accounts.list", err)
	}
	defer rows.Close()

	var accounts []*core.Account
	for rows.Next() {
		acc := &core.Account{}
		err := rows.Scan(
			&acc.ID, &acc.UserID, &acc.ProviderID, &acc.AccountID, &acc.Password, &acc.CreatedAt, &acc.UpdatedAt,
		)
		if err != nil {
			return nil, core.NewStorageError("accounts.list", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, core.NewStorageError("accounts.list", err)
	}

	return accounts, nil
}
