// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/auth/domain"
	"todo_backend/internal/feature/auth/domain/entity"
)

// dummyPasswordHash はユーザーが存在しない場合の比較に使うbcryptハッシュです。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名が既に存在する場合、ErrUsernameAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きハッシュを生成します。
	Hash(password string) (string, error)
	// Compare はハッシュと平文パスワードが一致しない場合にエラーを返します。
	Compare(hash, password string) error
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint) (string, error)
}

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenGenerator) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// ユーザー名が既に使われている場合、domain.ErrDuplicateUserを返します。
func (u *AuthUsecase) Register(ctx context.Context, username, password string) error {
	_, err := u.users.FindByUsername(ctx, username)
	if err == nil {
		return domain.ErrDuplicateUser
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		// 事前チェックと書き込みの間に同名ユーザーが作成された場合
		if errors.Is(err, ErrUsernameAlreadyExists) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate はユーザーを認証し、成功時にアクセストークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
// ユーザー未検出とパスワード不一致はどちらもdomain.ErrInvalidCredentialsになります。
func (u *AuthUsecase) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyPasswordHash
	if user != nil {
		passwordHash = user.Password
	}

	// 常にパスワードを検証
	compareErr := u.hasher.Compare(passwordHash, password)
	if user == nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
