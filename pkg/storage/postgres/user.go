package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when a username/password pair does not
// match a stored account. Lookup misses and password mismatches are not
// distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

func (p *PostgresClient) CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	if err := p.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair against the users table.
func (p *PostgresClient) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var user User
	err := p.DB.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetOrCreateToken returns the user's bearer token, minting one on first use.
func (p *PostgresClient) GetOrCreateToken(ctx context.Context, userID uint) (string, error) {
	var token AuthToken
	err := p.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&token).Error
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup token: %w", err)
	}

	token = AuthToken{Key: uuid.NewString(), UserID: userID}
	if err := p.DB.WithContext(ctx).Create(&token).Error; err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token.Key, nil
}

// ResolveToken maps a bearer token key to its owning user.
func (p *PostgresClient) ResolveToken(ctx context.Context, key string) (*User, error) {
	var token AuthToken
	if err := p.DB.WithContext(ctx).
		Where("key = ?", key).
		First(&token).Error; err != nil {
		return nil, err
	}

	var user User
	if err := p.DB.WithContext(ctx).
		Where("id = ?", token.UserID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureAdmin creates the configured admin account if it does not exist yet.
// Safe to call on every startup.
func (p *PostgresClient) EnsureAdmin(ctx context.Context, username, email, password string) error {
	var count int64
	if err := p.DB.WithContext(ctx).
		Model(&User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := p.CreateUser(ctx, username, email, password, true)
	return err
}
