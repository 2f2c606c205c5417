package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath pulls the UUID at the given segment index, counting from the
// first non-empty path segment ("/jobs/{id}/apply" has the id at index 1).
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 0 || index >= len(segments) {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	parsed, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid id in path", err)
	}
	return parsed, nil
}
