package model

type GetMeRequest struct{}

type GetMeResponse struct {
	Address string    `json:"address"`
	Profile *Profile  `json:"profile"`
	Stats   UserStats `json:"stats"`
}

type CreateProfileRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type CreateProfileResponse struct {
	Profile Profile `json:"profile"`
}

// UpdateProfileRequest only changes the fields which are present.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
	Twitter  *string `json:"twitter"`
	Telegram *string `json:"telegram"`
	Discord  *string `json:"discord"`
	Email    *string `json:"email"`
}

type UpdateProfileResponse struct {
	Profile *Profile `json:"profile"`
}
