package request

type DirectorCreateRequest struct {
	Name string `json:"name" validate:"required"`
}

type DirectorUpdateRequest struct {
	ID   int    `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
}
