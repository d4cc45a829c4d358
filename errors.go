package lcswap

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/buger/jsonparser"
)

// maximum length of a non-JSON error body kept verbatim inside an APIError
const errorBodyLimit = 100

// APIError is returned whenever the API answers with a status code outside
// of 200/201/204. Body holds the decoded JSON error payload when the server
// sent one, otherwise a truncated copy of the raw response text.
type APIError struct {
	Status  int
	Reason  string
	Body    any
	RawBody []byte
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		Status:  resp.StatusCode,
		Reason:  http.StatusText(resp.StatusCode),
		RawBody: body,
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		msg := string(body)
		if len(msg) > errorBodyLimit {
			msg = msg[:errorBodyLimit-1] + "...(truncated)"
		}
		e.Body = "(non-json response) " + msg
		return e
	}
	e.Body = decoded
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: (%d %s) %v", e.Status, e.Reason, e.Body)
}

// Message extracts a human readable message from the error body, checking
// the field names the API is known to use. Returns an empty string when the
// body carries none of them.
func (e *APIError) Message() string {
	for _, key := range []string{"message", "detail", "error"} {
		if v, err := jsonparser.GetString(e.RawBody, key); err == nil {
			return v
		}
	}
	return ""
}

// ResponseError is returned when a 2xx response body cannot be decoded as
// JSON even though JSON was expected. It is deliberately distinct from
// APIError so callers can tell a rejected request from an unusable success.
type ResponseError struct {
	Body string
}

func (e *ResponseError) Error() string {
	return "response is not json: " + e.Body
}

// InvalidParameterError is returned by the trade parameter lookups when a
// reference matches no entry, or when the parameter table was never fetched.
type InvalidParameterError struct {
	Kind string // parameter collection, e.g. "crypto currency"
	Ref  string // offending reference; empty when the table itself is missing
}

func (e *InvalidParameterError) Error() string {
	if e.Ref == "" {
		return "trade params are not set up"
	}
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Ref)
}
