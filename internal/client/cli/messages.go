package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
)

const (
	msgBlocked       = "Your account is blocked. Contact administrator."
	msgServer        = "Server error. Please try again later."
	msgNetwork       = "Cannot reach the server. Check your connection and try again."
	msgFillAllFields = "Please fill in all fields"
)

// describe turns an error into the line shown to the user. An empty result
// means nothing should be printed: unauthorized responses are announced by
// the session signal handler.
func describe(err error) string {
	switch {
	case err == nil, errors.Is(err, services.ErrUnauthorized):
		return ""
	case errors.Is(err, services.ErrForbidden):
		if msg := serverMessage(err); msg != "" && !strings.Contains(strings.ToLower(msg), "blocked") {
			return msg
		}
		return msgBlocked
	case errors.Is(err, services.ErrServer):
		return msgServer
	case errors.Is(err, services.ErrNetwork):
		return msgNetwork
	}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return "Invalid input: " + verr.Fields.Error()
	}
	if msg := serverMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

func serverMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// hasBlankField reports whether a validation failure includes an empty
// required field.
func hasBlankField(err error) bool {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, e := range verr.Fields {
		if e != nil && e.Error() == "cannot be blank" {
			return true
		}
	}
	return false
}

// count renders "1 user" or "3 users".
func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
