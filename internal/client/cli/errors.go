package cli

import (
	"errors"

	"github.com/dmitrijs2005/remood/internal/client/client"
	"github.com/dmitrijs2005/remood/internal/common"
)

// userMessage turns an error into a sentence for the terminal. Server
// messages are shown as sent; internal wrapping is not.
func userMessage(err error) string {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable. Check your connection and try again."
	case errors.Is(err, common.ErrEncryption):
		return "Encryption key not found. Please log in again."
	case errors.Is(err, common.ErrAuthentication):
		return "Authentication failed. Please log in again."
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, common.ErrNotFound):
		return "Not found."
	case errors.Is(err, common.ErrRequest):
		return "The server could not process the request."
	default:
		return err.Error()
	}
}
