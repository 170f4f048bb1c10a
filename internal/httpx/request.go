package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

var errMultipleValues = errors.New("body must only contain a single JSON value")

// DecodeJSON decodes exactly one JSON value from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errMultipleValues
	}
	return nil
}

// IDParam parses the {id} path value as a positive integer.
func IDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// DecodeError answers a request whose body DecodeJSON rejected.
func DecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		JSONError(w, r, http.StatusRequestEntityTooLarge, CodeTooLarge, "Request body too large", nil)
		return
	}
	JSONError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid request body", nil)
}
