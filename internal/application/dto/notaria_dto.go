package dto

// NotariaRequest body de PUT /api/notaria.
type NotariaRequest struct {
	Nombre       string `json:"nombre" validate:"required,max=200"`
	Notario      string `json:"notario" validate:"required,max=200"`
	Colegiatura  string `json:"colegiatura" validate:"omitempty,max=20"`
	RUC          string `json:"ruc" validate:"omitempty,len=11,numeric"`
	Direccion    string `json:"direccion" validate:"omitempty,max=300"`
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email" validate:"omitempty,email"`
	CodigoSISGEN string `json:"codigo_sisgen" validate:"omitempty,max=20"`
}

// NotariaResponse datos de la notaría.
type NotariaResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Notario      string `json:"notario"`
	Colegiatura  string `json:"colegiatura"`
	RUC          string `json:"ruc"`
	Direccion    string `json:"direccion"`
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	CodigoSISGEN string `json:"codigo_sisgen"`
}
