package request

type UserCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,excludesall=0x20"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}

type UserUpdateRequest struct {
	ID       int    `json:"id" validate:"required,gt=0"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,excludesall=0x20"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}
