package installment

import "errors"

var (
	ErrNotFound    = errors.New("installment not found")
	ErrAlreadyPaid = errors.New("installment already paid")
	ErrNoneUnpaid  = errors.New("no unpaid installments")
)
