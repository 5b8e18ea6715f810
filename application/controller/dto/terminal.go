package dto

type RegisterTerminalDTO struct {
	Name              string  `json:"name" validate:"required,max=100"`
	Location          string  `json:"location" validate:"required,max=200"`
	FleetID           *string `json:"fleetID,omitempty" validate:"omitempty,max=50"`
	NotificationEmail string  `json:"notificationEmail" validate:"required,email,max=100"`
}

type UpdateTerminalDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Active   *bool   `json:"active,omitempty"`
}

type FetchTerminalsDTO struct {
	PageSize int64   `json:"pageSize" validate:"required,min=1,max=100"`
	LastID   *string `json:"lastID,omitempty"`
	Sort     int64   `json:"sort" validate:"omitempty,oneof=1 -1"`
	FleetID  *string `json:"fleetID,omitempty" validate:"omitempty,max=50"`
	Active   *bool   `json:"active,omitempty"`
}
