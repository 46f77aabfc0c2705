package dto

// CondicionResponse condición de intervención con sus cuatro formas.
type CondicionResponse struct {
	Codigo          string `json:"codigo"`
	Masculino       string `json:"masculino"`
	Femenino        string `json:"femenino"`
	PluralMasculino string `json:"plural_masculino"`
	PluralFemenino  string `json:"plural_femenino"`
	Lado            string `json:"lado"`
	CodigoSISGEN    string `json:"codigo_sisgen"`
}

// TipoActoRequest body de POST/PUT /api/tipos-acto.
type TipoActoRequest struct {
	Codigo       string `json:"codigo" validate:"required,max=10,alphanum"`
	Descripcion  string `json:"descripcion" validate:"required,max=200"`
	TipoKardex   string `json:"tipo_kardex" validate:"required,oneof=K V N G T"`
	CodigoSISGEN string `json:"codigo_sisgen" validate:"omitempty,max=10"`
	Plantilla    string `json:"plantilla" validate:"omitempty,endswith=.docx"`
	Activo       *bool  `json:"activo"`
}

// TipoActoResponse tipo de acto.
type TipoActoResponse struct {
	Codigo       string `json:"codigo"`
	Descripcion  string `json:"descripcion"`
	TipoKardex   string `json:"tipo_kardex"`
	CodigoSISGEN string `json:"codigo_sisgen"`
	Plantilla    string `json:"plantilla,omitempty"`
	Activo       bool   `json:"activo"`
}
