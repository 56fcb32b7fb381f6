package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error is a server-reported failure: a non-success status plus the detail
// message from the error payload, surfaced verbatim to the user.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned %s", http.StatusText(e.Status))
}

// IsAuthError reports whether err is a server rejection of the credential
// (expired or invalid token).
func IsAuthError(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

// decodeError reads a non-success response. The backend reports failures as
// {"detail": "..."}; anything undecodable falls back to the status text.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
