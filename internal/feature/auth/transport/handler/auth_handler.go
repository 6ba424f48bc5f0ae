// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/auth/transport/http/dto"
	"shop_backend/internal/feature/auth/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンと有効期間（秒）を返します。
	Register(ctx context.Context, name, email, password string) (string, int64, error)
	// Login はユーザーを認証し、成功時にトークンと有効期間（秒）を返します。
	Login(ctx context.Context, email, password string) (string, int64, error)
	// Logout は提示されたトークンを失効させます。
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はトークン付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, expiresIn, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, gin.H{"error": usecase.ErrEmailAlreadyExists.Error()})
			return
		}
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.TokenResp{Token: token, ExpiresIn: expiresIn})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, expiresIn, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、未検出と不一致で同じ応答を返す
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": usecase.ErrInvalidCredentials.Error()})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResp{Token: token, ExpiresIn: expiresIn})
}

// Logout はログアウトAPIエンドポイントを処理します。
// 認証ミドルウェアがコンテキストへ格納したトークンIDと有効期限を使い、
// 残り有効期間だけ失効リストへ登録します。
// 失効登録はベストエフォートです。失効リストが構成されていない場合も、
// 登録に失敗した場合も、ログアウト自体は常に200を返します
// （ミドルウェアの失効チェックがフェイルオープンであることと対称）。
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString(jwtmw.ContextTokenID)
	expiresAt, _ := c.Get(jwtmw.ContextTokenExp)

	exp, ok := expiresAt.(time.Time)
	if !ok {
		exp = time.Now()
	}

	if err := h.auth.Logout(c.Request.Context(), tokenID, exp); err != nil {
		// トークンは有効期限で自然失効するため、失敗しても成功応答を返す
		slog.Warn("token revocation failed", "error", err, "remote_addr", c.ClientIP())
	}
	slog.Info("user logout successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
