package handlers

import (
	"encoding/json"
	"io"

	"tokenAuthAPI/internal/models"
)

// loginFields is the result of reading a login body
type loginFields struct {
	models.LoginRequest
	present    bool // both fields are non-empty
	allStrings bool // both fields are JSON strings
}

// decodeLogin reads a login body loosely. A field that is absent, null or
// empty-like (false, 0, "", [], {}) counts as missing. Any other value that
// is not a string counts as present but can never match an account.
func decodeLogin(body io.Reader) (loginFields, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return loginFields{}, err
	}

	username, userPresent, userString := credentialField(raw["username"])
	password, passPresent, passString := credentialField(raw["password"])

	return loginFields{
		LoginRequest: models.LoginRequest{Username: username, Password: password},
		present:      userPresent && passPresent,
		allStrings:   userString && passString,
	}, nil
}

func credentialField(v any) (value string, present, isString bool) {
	switch t := v.(type) {
	case string:
		return t, t != "", true
	case bool:
		return "", t, false
	case float64:
		return "", t != 0, false
	case []any:
		return "", len(t) > 0, false
	case map[string]any:
		return "", len(t) > 0, false
	}
	return "", false, false
}
