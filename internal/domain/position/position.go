package position

import (
	"time"

	"veridia/internal/common"
)

type Position struct {
	ID           common.UUID `json:"id"`
	DepartmentID common.UUID `json:"department_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Requirements []string    `json:"requirements"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Update is the partial-update surface. Nil fields are left untouched;
// department ownership is fixed at creation and absent here.
type Update struct {
	Title        *string
	Description  *string
	Requirements []string
	IsActive     *bool
}
