package project

import "time"

// Project is a client engagement record with payment and completion tracking.
// The ID is assigned by the store on insert; a caller-supplied value is ignored.
type Project struct {
	ID               int64     `json:"id"`
	ClientName       string    `json:"client_name" validate:"notblank"`
	PhoneNumber      string    `json:"phone_number"`
	AdvancePayment   float64   `json:"advance_payment" validate:"gte=0,ltefield=TotalPayment"`
	TotalPayment     float64   `json:"total_payment" validate:"gt=0"`
	IsCompleted      bool      `json:"is_completed"`
	IsPaid           bool      `json:"is_paid"`
	Description      string    `json:"description,omitempty"`
	CreationDate     time.Time `json:"creation_date"`
	LastModifiedDate time.Time `json:"last_modified_date"`
}

// PaymentProgress is the fraction of the total payment collected so far.
// A zero total yields 0 so percentage displays stay well-defined.
func (p Project) PaymentProgress() float64 {
	if p.TotalPayment == 0 {
		return 0
	}
	return p.AdvancePayment / p.TotalPayment
}

// Totals aggregates payment amounts across a project list.
type Totals struct {
	TotalPayment   float64 `json:"total_payment"`
	AdvancePayment float64 `json:"advance_payment"`
	Outstanding    float64 `json:"outstanding"`
}
