package dto

type FetchAttendanceRecordsDTO struct {
	PageSize   int64   `json:"pageSize" validate:"required,min=1,max=100"`
	LastID     *string `json:"lastID,omitempty"`
	Sort       int64   `json:"sort" validate:"omitempty,oneof=1 -1"`
	IdentityID *string `json:"identityID,omitempty"`
	TerminalID *string `json:"terminalID,omitempty"`
	Date       *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateFrom   *string `json:"dateFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo     *string `json:"dateTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type VoidAttendanceRecordDTO struct {
	Reason string `json:"reason" validate:"required,max=200"`
}
