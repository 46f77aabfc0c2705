package entity

import "time"

// Estados de un envío a SISGEN.
const (
	EnvioAceptado  = "ACEPTADO"
	EnvioObservado = "OBSERVADO"
	EnvioError     = "ERROR"
	EnvioSimulado  = "SIMULADO"
	// EnvioSinCambios no se persiste: el XML coincide con el último envío aceptado.
	EnvioSinCambios = "SIN_CAMBIOS"
)

// EnvioSISGEN registro de cada intento de envío de un kardex a SISGEN.
type EnvioSISGEN struct {
	ID             string
	KardexID       string
	Estado         string
	Codigo         string
	Mensaje        string
	NumeroRegistro string
	Observaciones  []string
	Digest         string // SHA-256 hex del XML canónico
	XML            string
	UsuarioID      string
	Fecha          time.Time
}

// EstadoKardex estado SISGEN que el envío deja en el kardex.
func (e *EnvioSISGEN) EstadoKardex() string {
	switch e.Estado {
	case EnvioAceptado, EnvioSimulado:
		return SISGENEnviado
	case EnvioObservado:
		return SISGENObservado
	default:
		return SISGENError
	}
}
