package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/correlativo"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// CorrelativoMetrics contador de correlativos asignados; *metrics.Metrics lo implementa.
type CorrelativoMetrics interface {
	IncCorrelativo(serie string)
}

type nopMetrics struct{}

func (nopMetrics) IncCorrelativo(string) {}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func listFilter(p dto.PageRequest) repository.ListFilter {
	p.DefaultPage()
	return repository.ListFilter{Q: p.Q, Limit: p.Limit, Offset: p.Offset}
}

// fechaOHoy fecha de ingreso del request o el día actual.
func fechaOHoy(s string) (time.Time, error) {
	t, err := dto.ParseFecha(s)
	if err != nil {
		return time.Time{}, invalid("%v", err)
	}
	if t == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return *t, nil
}

func fechaOpcional(campo, s string) (*time.Time, error) {
	t, err := dto.ParseFecha(s)
	if err != nil {
		return nil, invalid("%s: %v", campo, err)
	}
	return t, nil
}

// siguiente reserva el próximo correlativo de la serie en el año y lo devuelve formateado.
func siguiente(ctx context.Context, repos repository.TxRepos, tabla, serie string, anio int) (int, string, error) {
	seq, err := repos.Correlativo.Next(ctx, tabla, serie, anio)
	if err != nil {
		return 0, "", err
	}
	return seq, correlativo.Format(serie, seq, anio), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
