package roles

import "errors"

var (
	ErrReserved = errors.New("role name can not be admin")
	ErrTooLong  = errors.New("role name can not be longer than 32 chars")
)
