package dto

type EnrollIdentityDTO struct {
	FirstName string   `json:"firstName" validate:"required,max=100,name_spacial_char"`
	LastName  string   `json:"lastName" validate:"required,max=100,name_spacial_char"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Phone     *string  `json:"phone,omitempty" validate:"omitempty,e164"`
	Images    []string `json:"images" validate:"required,min=1,max=5"`
}

type AddIdentityImagesDTO struct {
	Images []string `json:"images" validate:"required,min=1,max=5"`
}

type DeactivateIdentityDTO struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=200"`
}

type FetchIdentitiesDTO struct {
	PageSize int64   `json:"pageSize" validate:"required,min=1,max=100"`
	LastID   *string `json:"lastID,omitempty"`
	Sort     int64   `json:"sort" validate:"omitempty,oneof=1 -1"`
	Active   *bool   `json:"active,omitempty"`
}
