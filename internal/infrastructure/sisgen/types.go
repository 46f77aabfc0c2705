// Package sisgen arma el XML de los instrumentos protocolares y los envía al web service SISGEN.
package sisgen

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// BuildContext datos necesarios para construir el XML de un kardex.
type BuildContext struct {
	Notaria      *entity.Notaria
	Kardex       *entity.Kardex
	Acto         *entity.TipoActo
	Contratantes []*entity.ContratanteDetalle
	Vehiculo     *entity.Vehiculo // solo kardex vehiculares
}

// SubmitResult respuesta de SISGEN a registrarDocumento.
type SubmitResult struct {
	Aceptado       bool // codigo "0"
	Codigo         string
	Mensaje        string
	NumeroRegistro string
	Observaciones  []string
	Fault          bool // SOAP Fault: Codigo/Mensaje traen faultcode/faultstring
}

// Submitter puerto de salida hacia el web service SISGEN; en tests se inyecta un fake.
type Submitter interface {
	Submit(ctx context.Context, documento []byte) (*SubmitResult, error)
}
