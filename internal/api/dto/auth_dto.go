package dto

// RegisterRequest 注册请求（multipart 表单，头像与封面为文件字段）
type RegisterRequest struct {
	FullName string `form:"fullname" json:"fullname" binding:"required,max=255"`
	Email    string `form:"email" json:"email" binding:"required,email,max=255"`
	Username string `form:"username" json:"username" binding:"required,max=64"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=255"`
}

// LoginRequest 登录请求，用户名与邮箱二选一
type LoginRequest struct {
	Username string `json:"username" binding:"omitempty,max=64"`
	Email    string `json:"email" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

// RefreshTokenRequest 刷新令牌请求（也可以通过 cookie 携带）
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=255"`
}

// TokenPair 访问令牌与刷新令牌
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginData 登录成功返回
type LoginData struct {
	User UserInfo `json:"user"`
	TokenPair
}
