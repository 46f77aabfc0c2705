package dto

import "time"

// ClienteRequest body de POST/PUT /api/clientes.
type ClienteRequest struct {
	TipoPersona     string `json:"tipo_persona" validate:"required,oneof=N J"`
	TipoDocumento   string `json:"tipo_documento" validate:"required,oneof=DNI RUC CE PAS CPP"`
	NumeroDocumento string `json:"numero_documento" validate:"required,max=15"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"omitempty,max=100"`
	ApellidoMaterno string `json:"apellido_materno" validate:"omitempty,max=100"`
	Nombres         string `json:"nombres" validate:"omitempty,max=150"`
	RazonSocial     string `json:"razon_social" validate:"omitempty,max=300"`
	Sexo            string `json:"sexo" validate:"omitempty,oneof=M F"`
	EstadoCivil     string `json:"estado_civil" validate:"omitempty,oneof=SOLTERO CASADO VIUDO DIVORCIADO CONVIVIENTE"`
	Nacionalidad    string `json:"nacionalidad" validate:"omitempty,max=60"`
	Profesion       string `json:"profesion" validate:"omitempty,max=100"`
	Direccion       string `json:"direccion" validate:"omitempty,max=300"`
	Ubigeo          string `json:"ubigeo" validate:"omitempty,len=6,numeric"`
	Distrito        string `json:"distrito"`
	Provincia       string `json:"provincia"`
	Departamento    string `json:"departamento"`
	Telefono        string `json:"telefono" validate:"omitempty,max=30"`
	Email           string `json:"email" validate:"omitempty,email"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID              string    `json:"id"`
	TipoPersona     string    `json:"tipo_persona"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	NombreCompleto  string    `json:"nombre_completo"`
	ApellidoPaterno string    `json:"apellido_paterno,omitempty"`
	ApellidoMaterno string    `json:"apellido_materno,omitempty"`
	Nombres         string    `json:"nombres,omitempty"`
	RazonSocial     string    `json:"razon_social,omitempty"`
	Sexo            string    `json:"sexo,omitempty"`
	EstadoCivil     string    `json:"estado_civil,omitempty"`
	Nacionalidad    string    `json:"nacionalidad,omitempty"`
	Profesion       string    `json:"profesion,omitempty"`
	Direccion       string    `json:"direccion,omitempty"`
	Ubigeo          string    `json:"ubigeo,omitempty"`
	Distrito        string    `json:"distrito,omitempty"`
	Provincia       string    `json:"provincia,omitempty"`
	Departamento    string    `json:"departamento,omitempty"`
	Telefono        string    `json:"telefono,omitempty"`
	Email           string    `json:"email,omitempty"`
	FechaNacimiento string    `json:"fecha_nacimiento,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
