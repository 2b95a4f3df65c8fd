package dto

// SigninReq は/auth/signinエンドポイントのリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type SigninReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
