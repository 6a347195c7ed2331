package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSONResponse encodes Data as JSON with the given status, 200 when unset.
type JSONResponse[T any] struct {
	Data   T
	Status int
}

func NewJSONResponse[T any](data T) *JSONResponse[T] {
	return &JSONResponse[T]{Data: data}
}

func NewJSONResponseWithStatus[T any](data T, status int) *JSONResponse[T] {
	return &JSONResponse[T]{Data: data, Status: status}
}

// Encode implements the Encoder interface. Names such as "AT&T" are written
// as-is rather than HTML escaped.
func (j *JSONResponse[T]) Encode() ([]byte, string, error) {
	data, err := EncodeJSON(j.Data)
	if err != nil {
		return nil, "", err
	}
	return data, contentTypeJSON, nil
}

func (j *JSONResponse[T]) HTTPStatus() int {
	if j.Status == 0 {
		return http.StatusOK
	}
	return j.Status
}

// EncodeJSON marshals v without HTML escaping.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

type httpStatus interface {
	HTTPStatus() int
}

// statusOf picks the status for resp. A nil Encoder means 204.
func statusOf(resp Encoder) int {
	if resp == nil {
		return http.StatusNoContent
	}
	switch v := resp.(type) {
	case httpStatus:
		return v.HTTPStatus()
	case error:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// Respond writes resp to the client.
func Respond(ctx context.Context, w http.ResponseWriter, resp Encoder) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return errors.New("client disconnected, do not send response")
	}

	statusCode := statusOf(resp)
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	data, contentType, err := resp.Encode()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("respond: encode: %w", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("respond: write: %w", err)
	}

	return nil
}
