package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"veridia/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath parses the UUID segment counted from the end of the path:
// 1 for /applications/{id}, 2 for /applications/{id}/status.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < fromEnd {
		return "", common.NewError(common.CodeValidation, "invalid path", nil)
	}
	parsed, err := common.ParseUUID(parts[len(parts)-fromEnd])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
