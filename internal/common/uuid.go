package common

import (
	"strings"

	"github.com/google/uuid"
)

// UUID is a canonical lowercase UUID string. Keeping it a string type makes
// it comparable and usable as a map key in repositories and context values.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}
