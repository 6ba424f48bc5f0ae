package dto

// TokenResp は認証成功時のレスポンスボディを表します。
// expires_inはクライアント向けにトークンの有効期間を秒で返します。
type TokenResp struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
