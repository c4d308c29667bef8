// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the web handlers:
// JSON and error responses, file downloads and multipart upload reading.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Status string `json:"status"`
	Kind   string `json:"kind,omitempty"`
	Error  string `json:"error"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// StatusFor maps an operation error to an HTTP status code: 400 for range
// syntax, 422 for inputs the operation cannot process, 413 for oversized
// bodies and 500 for everything else.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch types.KindOf(err) {
	case types.KindMalformedRange:
		return http.StatusBadRequest
	case types.KindInvalidInput, types.KindOutOfRange:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// WriteError writes err as an ErrorBody. Internal errors are reported
// without their details.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	body := ErrorBody{Status: "error", Kind: string(types.KindOf(err)), Error: err.Error()}
	switch status {
	case http.StatusInternalServerError:
		body.Error = "internal error"
	case http.StatusRequestEntityTooLarge:
		body.Error = "upload too large"
	}
	WriteJSON(w, status, body)
	return status
}

// WriteArtifact sends a as a file download.
func WriteArtifact(w http.ResponseWriter, a types.Artifact) error {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(a.Data)
	return err
}

// ReadUploads reads every file uploaded under field, in form order.
func ReadUploads(r *http.Request, field string) ([]types.Input, error) {
	if r.MultipartForm == nil {
		return nil, types.Errorf(types.KindInvalidInput, field, "no files uploaded")
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, types.Errorf(types.KindInvalidInput, field, "no files uploaded in field %q", field)
	}
	inputs := make([]types.Input, 0, len(headers))
	for _, fh := range headers {
		in, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// ReadUpload reads exactly one file uploaded under field.
func ReadUpload(r *http.Request, field string) (types.Input, error) {
	inputs, err := ReadUploads(r, field)
	if err != nil {
		return types.Input{}, err
	}
	if len(inputs) != 1 {
		return types.Input{}, types.Errorf(types.KindInvalidInput, field,
			"expected one file in field %q, got %d", field, len(inputs))
	}
	return inputs[0], nil
}

func readUpload(fh *multipart.FileHeader) (types.Input, error) {
	f, err := fh.Open()
	if err != nil {
		return types.Input{}, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return types.Input{}, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	return types.Input{Name: fh.Filename, Data: data}, nil
}
