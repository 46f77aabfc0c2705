package dto

import (
	"fmt"
	"time"
)

// PageRequest paginación y texto libre para listados.
type PageRequest struct {
	Q      string `query:"q"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse listado paginado.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewList arma la respuesta paginada; items nunca es null en el JSON.
func NewList[T any](items []T, p PageRequest, total int) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{Items: items, Page: PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// LayoutFecha formato de fechas en requests y respuestas.
const LayoutFecha = "2006-01-02"

// ParseFecha "" -> nil; formato YYYY-MM-DD.
func ParseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(LayoutFecha, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: use YYYY-MM-DD", s)
	}
	return &t, nil
}

// FormatFecha nil -> "".
func FormatFecha(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(LayoutFecha)
}
