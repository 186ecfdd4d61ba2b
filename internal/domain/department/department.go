package department

import (
	"time"

	"veridia/internal/common"
)

type Department struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Update is the partial-update surface. Nil fields are left untouched. A
// name change is only honored while no position references the department.
type Update struct {
	Name        *string
	Description *string
}
