package web

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Decode reads the body of an HTTP request looking for a JSON document. The
// body is decoded into the provided value. Unknown fields are ignored.
func Decode(r *http.Request, val any) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}

	if err := json.NewDecoder(r.Body).Decode(val); err != nil {
		return err
	}

	return nil
}
