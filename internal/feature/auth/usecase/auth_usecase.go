// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// dummyHash はユーザー未検出時のタイミング攻撃緩和用ダミーbcryptハッシュです。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenIssuer はトークン発行のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
	// TTL は発行するトークンの有効期間を返します。
	TTL() time.Duration
}

// TokenDenylist はログアウト済みトークンの失効リストを抽象化します。
// ステートレスJWTをサーバー側で無効化するためのオプション機構です。
type TokenDenylist interface {
	// Deny はトークンIDを残り有効期間のTTL付きで失効リストへ登録します。
	Deny(ctx context.Context, tokenID string, ttl time.Duration) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	issuer   TokenIssuer
	denylist TokenDenylist // nilの場合、ログアウトはno-op
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// denylistがnilの場合、Logoutはトークン失効を行わず常に成功します。
func NewAuthUsecase(users UserRepository, issuer TokenIssuer, denylist TokenDenylist) *authUsecase {
	return &authUsecase{
		users:    users,
		issuer:   issuer,
		denylist: denylist,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// メールアドレスが既に登録済みの場合、ErrEmailAlreadyExistsを返します。
// 事前チェックと挿入の間に同一メールの登録が競合した場合、
// ユニーク制約違反もErrEmailAlreadyExistsとして返されます（リポジトリ側で変換）。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (string, int64, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return "", 0, err
	}

	// 既存ユーザーの事前チェック。最終的な砦はDBのユニーク制約。
	// 未検出以外の失敗（DB障害等）は重複と混同せずそのまま返す。
	switch _, err := u.users.FindByEmail(ctx, email); {
	case err == nil:
		return "", 0, ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return "", 0, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return "", 0, err
	}

	token, err := u.issuer.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, int64(u.issuer.TTL().Seconds()), nil
}

// Login はユーザーを認証し、成功時にトークンと有効期間（秒）を返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 未検出とパスワード不一致は区別せず、同一のErrInvalidCredentialsを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, int64, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", 0, ErrInvalidCredentials
	}

	token, tokenErr := u.issuer.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, int64(u.issuer.TTL().Seconds()), nil
}

// Logout は提示されたトークンを失効リストへ登録します。
// 失効リストが構成されていない場合は何もせず成功します
// （ステートレストークンの契約上、ログアウトは常に成功を返す）。
func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if u.denylist == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// 既に期限切れのトークンは登録不要
		return nil
	}
	return u.denylist.Deny(ctx, tokenID, ttl)
}
