package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrDecodingBody is returned by ReadJSON when the request body is not the
// expected JSON document.
var ErrDecodingBody = errors.New("error decoding request body")

// WriteJSON serializes data and writes it with the given status code.
// If marshaling fails, it responds with 500 Internal Server Error instead.
//
//	WriteJSON(w, models.ErrorResponse{Error: "unknown sync scope"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ReadJSON decodes the body of r into dst. An empty body leaves dst
// untouched and reports empty == true.
func ReadJSON(r *http.Request, dst any) (empty bool, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return true, nil
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, fmt.Errorf("%w: %w", ErrDecodingBody, err)
	}
	return false, nil
}
