package dto

// UpdateMeReq は/auth/meのPATCHリクエストボディを表します。
// すべて任意で、指定されたフィールドだけが更新されます。
// メールアドレスとパスワードはこの経路では変更できません。
type UpdateMeReq struct {
	Name               *string `json:"name" binding:"omitempty,max=255"`
	SoftwareBackground *string `json:"software_background" binding:"omitempty,max=1000"`
	HardwareBackground *string `json:"hardware_background" binding:"omitempty,max=1000"`
}
