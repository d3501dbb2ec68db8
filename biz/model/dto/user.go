package dto

type RegisterReq struct {
	Username    string `json:"username" validate:"required,max=64,excludes=@"`
	Email       string `json:"email" validate:"required,max=128,email"`
	DisplayName string `json:"display_name" validate:"max=64"`
	Password    string `json:"password" validate:"required,min=6,max=128"`
}

type RegisterResp struct {
	UserID string `json:"user_id"`
}

// SignInReq accepts a username or an email address as account.
type SignInReq struct {
	Account  string `json:"account" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=128"`
}

type SignInResp struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   int64             `json:"expires_at"`
	Claims      map[string]string `json:"claims"`
}

type RefreshTokenReq struct {
}

type RefreshTokenResp struct {
	AccessToken      string `json:"access_token"`
	ExpiresAt        int64  `json:"expires_at"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}

type SignOutReq struct{}

type SignOutResp struct{}

type GetUserInfoReq struct{}

type GetUserInfoResp struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	CreatedAt   int64             `json:"created_at"`
	UpdatedAt   int64             `json:"updated_at"`
	Claims      map[string]string `json:"claims"`
}

// ChangeSettingReq changes one profile attribute. Type is one of
// displayName, username or email.
type ChangeSettingReq struct {
	Type string `json:"type" validate:"required,max=32"`
	Data string `json:"data" validate:"max=128"`
}

type ChangeSettingResp struct {
	Claims map[string]string `json:"claims"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password" validate:"required,max=128"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

type ChangePasswordResp struct{}

type SendEmailCodeReq struct {
	Email string `json:"email" validate:"required,max=128,email"`
}

type SendEmailCodeResp struct {
	ExpiresIn int64 `json:"expires_in"`
}

type VerifyEmailReq struct {
	Email string `json:"email" validate:"required,max=128,email"`
	Code  string `json:"code" validate:"required,max=32"`
}

type VerifyEmailResp struct {
	Claims map[string]string `json:"claims"`
}
