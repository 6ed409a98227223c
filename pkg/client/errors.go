// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is the single failure type raised by the dispute API client.
//
// A server rejection carries the HTTP Status and whatever message and details
// the response body supplied. A transport failure carries Status zero.
type APIError struct {
	// Status is the HTTP status code, or 0 for transport failures.
	Status int `json:"status,omitempty"`

	// Message is the server's message when present, otherwise a
	// transport-level description.
	Message string `json:"message"`

	// Details is the server's structured details payload, if any.
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return "transport error: " + e.Message
}

// Transport reports whether the failure happened before any HTTP status was
// received.
func (e *APIError) Transport() bool {
	return e.Status == 0
}

// errorBody is the optional JSON shape of a failure response.
type errorBody struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// parseAPIError builds an APIError from a non-2xx response. Any body shape is
// tolerated; the status alone is enough to mark the operation failed.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Message = eb.Message
		apiErr.Details = eb.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}

	return apiErr
}
