package models

import "time"

type Transaction struct {
	ID          string
	UserID      string
	Amount      float64
	Description string
	Date        time.Time
}

// TransactionPatch carries a partial update. Nil fields are left unchanged.
type TransactionPatch struct {
	Amount      *float64
	Description *string
	Date        *time.Time
}

// TransactionFilter narrows a listing. Zero values mean "no constraint".
type TransactionFilter struct {
	Query     string
	MinAmount *float64
	MaxAmount *float64
}
