// Package fopbridge provides the shared response envelopes and query parsing
// for repository bridges.
package fopbridge

import (
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

const contentType = "application/json"

// CodeResponse provides a standard response with code and message
type CodeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewCodeResponse(code, message string) CodeResponse {
	return CodeResponse{Code: code, Message: message}
}

func (c CodeResponse) Encode() ([]byte, string, error) {
	data, err := web.EncodeJSON(c)
	return data, contentType, err
}

// RecordResponse wraps a single record
type RecordResponse[T any] struct {
	Record T `json:"record"`
}

func NewRecordResponse[T any](record T) RecordResponse[T] {
	return RecordResponse[T]{Record: record}
}

func (r RecordResponse[T]) Encode() ([]byte, string, error) {
	data, err := web.EncodeJSON(r)
	return data, contentType, err
}

// PaginatedResponse is one page of records and how to fetch the next.
type PaginatedResponse[T any] struct {
	Records  []T                      `json:"records"`
	PageInfo fop.PageInfoStringCursor `json:"pageInfo"`
}

// NewPaginatedResponse never encodes records as null.
func NewPaginatedResponse[T any](records []T, pageInfo fop.PageInfoStringCursor) PaginatedResponse[T] {
	if records == nil {
		records = []T{}
	}
	return PaginatedResponse[T]{
		Records:  records,
		PageInfo: pageInfo,
	}
}

func (p PaginatedResponse[T]) Encode() ([]byte, string, error) {
	data, err := web.EncodeJSON(p)
	return data, contentType, err
}
