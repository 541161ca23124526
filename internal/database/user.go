package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cyberrps/arena/internal/auth"
	"github.com/cyberrps/arena/internal/models"
)

// ErrNicknameTaken is returned when registration collides with an existing
// nickname.
var ErrNicknameTaken = errors.New("nickname already taken")

const userColumns = `id, nickname, password, avatar, coins,
       login_streak, last_claim_date,
       equipped_border_id, equipped_background_id, equipped_hands_id,
       wins, losses, total_earned`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u         models.User
		lastClaim *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Nickname, &u.Password, &u.Avatar, &u.Coins,
		&u.LoginStreak, &lastClaim,
		&u.EquippedBorderID, &u.EquippedBackgroundID, &u.EquippedHandsID,
		&u.Wins, &u.Losses, &u.TotalEarned,
	)
	if err != nil {
		return nil, err
	}
	if lastClaim != nil {
		u.LastClaimDate = lastClaim.Format("2006-01-02")
	}
	return &u, nil
}

// CreateUser registers an account with a fresh id, the hashed password, and
// the starting balance.
func CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}

	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	user.Coins = models.InitialCoins

	q := `INSERT INTO users (id, nickname, password, avatar, coins)
	      VALUES ($1, $2, $3, $4, $5)`

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, user.ID, user.Nickname, user.Password, user.Avatar, user.Coins)
		return execErr
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrNicknameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE nickname=$1`
	return scanUser(DB.QueryRow(ctx, q, nickname))
}

func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(DB.QueryRow(ctx, q, id))
}

// AuthenticateUser checks the credentials and returns a signed session token.
func AuthenticateUser(ctx context.Context, nickname, password string) (string, *models.User, error) {
	user, err := GetUserByNickname(ctx, nickname)
	if err != nil {
		return "", nil, fmt.Errorf("user lookup: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.Password)
	if err != nil || !match {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.CreateToken(user.ID.String())
	if err != nil {
		return "", nil, fmt.Errorf("create token: %w", err)
	}
	return token, user, nil
}
