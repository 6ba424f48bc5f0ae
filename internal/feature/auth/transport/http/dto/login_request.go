package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// ここでは形式のみを検証し、資格情報の照合はユースケースに委ねます。
// パスワード長はチェックしません（不一致と区別できる応答を返さないため）。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
