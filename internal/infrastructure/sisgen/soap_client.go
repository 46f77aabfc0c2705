package sisgen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/notaria-api/pkg/config"
)

// ── Constantes de entorno ──────────────────────────────────────────────────────

const (
	// EnvDev no envía: el orquestador registra el envío como SIMULADO.
	EnvDev = "dev"
	// EnvTest ambiente de pruebas SISGEN.
	EnvTest = "test"
	// EnvProd ambiente de producción SISGEN.
	EnvProd = "prod"

	soapURLTest = "https://sisgen-pruebas.notarios.org.pe/sisgen/ws/RegistroDocumentoService"
	soapURLProd = "https://sisgen.notarios.org.pe/sisgen/ws/RegistroDocumentoService"

	soapNS       = "http://schemas.xmlsoap.org/soap/envelope/"
	soapNSSISGEN = "urn:sisgen"
	// SOAPAction de la única operación usada.
	SOAPAction = "urn:sisgen#registrarDocumento"

	// CodigoAceptado código de respuesta de un registro exitoso.
	CodigoAceptado = "0"
)

// URLForEnv URL del servicio según el ambiente; override tiene prioridad.
func URLForEnv(env, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	switch env {
	case EnvTest:
		return soapURLTest, nil
	case EnvProd:
		return soapURLProd, nil
	default:
		return "", fmt.Errorf("sisgen: ambiente %q sin URL (usar 'test' o 'prod')", env)
	}
}

// ── Implementación SOAP ────────────────────────────────────────────────────────

var _ Submitter = (*SOAPClient)(nil)

// SOAPClient cliente del web service SISGEN (SOAP 1.1 sobre net/http).
type SOAPClient struct {
	httpClient *http.Client
	url        string
	usuario    string
	clave      string
}

// NewSOAPClient construye el cliente para SISGEN_ENV test o prod.
func NewSOAPClient(cfg config.SISGENConfig) (*SOAPClient, error) {
	url, err := URLForEnv(cfg.Env, cfg.URL)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &SOAPClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		usuario:    cfg.User,
		clave:      cfg.Password,
	}, nil
}

// ── Estructuras SOAP ──────────────────────────────────────────────────────────

type soapEnvelope struct {
	XMLName  xml.Name `xml:"soapenv:Envelope"`
	XmlnsEnv string   `xml:"xmlns:soapenv,attr"`
	XmlnsSis string   `xml:"xmlns:sis,attr"`
	Header   struct{} `xml:"soapenv:Header"`
	Body     soapBody `xml:"soapenv:Body"`
}

type soapBody struct {
	Registrar registrarDocumento `xml:"sis:registrarDocumento"`
}

type registrarDocumento struct {
	Usuario   string `xml:"usuario"`
	Clave     string `xml:"clave"`
	Documento string `xml:"documento"` // XML del instrumento en Base64
}

type soapResponseEnvelope struct {
	Body soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	Response *registrarDocumentoResponse `xml:"registrarDocumentoResponse"`
	Fault    *soapFault                  `xml:"Fault"`
}

type registrarDocumentoResponse struct {
	Return struct {
		Codigo         string   `xml:"codigo"`
		Mensaje        string   `xml:"mensaje"`
		NumeroRegistro string   `xml:"numeroRegistro"`
		Observaciones  []string `xml:"observaciones>observacion"`
	} `xml:"return"`
}

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

// ── Submit ────────────────────────────────────────────────────────────────────

// Submit envía el XML del instrumento. Devuelve error solo ante fallas de transporte o
// respuestas ilegibles; un Fault o un código distinto de "0" vienen en el resultado.
func (c *SOAPClient) Submit(ctx context.Context, documento []byte) (*SubmitResult, error) {
	payload, err := c.buildEnvelope(documento)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("soap: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", SOAPAction)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("soap: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("soap: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("soap: leer respuesta: %w", err)
	}
	return parseResponse(resp.StatusCode, rawBody)
}

func (c *SOAPClient) buildEnvelope(documento []byte) ([]byte, error) {
	env := soapEnvelope{
		XmlnsEnv: soapNS,
		XmlnsSis: soapNSSISGEN,
		Body: soapBody{Registrar: registrarDocumento{
			Usuario:   c.usuario,
			Clave:     c.clave,
			Documento: base64.StdEncoding.EncodeToString(documento),
		}},
	}
	out, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("soap: serializar envelope: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// parseResponse desempaqueta la respuesta. Los Fault llegan normalmente con HTTP 500.
func parseResponse(status int, rawBody []byte) (*SubmitResult, error) {
	var envResp soapResponseEnvelope
	if err := xml.Unmarshal(rawBody, &envResp); err != nil {
		return nil, fmt.Errorf("soap: respuesta ilegible (HTTP %d): %s", status, truncate(string(rawBody), 200))
	}

	if f := envResp.Body.Fault; f != nil {
		return &SubmitResult{
			Fault:   true,
			Codigo:  strings.TrimSpace(f.FaultCode),
			Mensaje: strings.TrimSpace(f.FaultString),
		}, nil
	}

	r := envResp.Body.Response
	if r == nil {
		return nil, fmt.Errorf("soap: respuesta vacía o inesperada (HTTP %d)", status)
	}
	codigo := strings.TrimSpace(r.Return.Codigo)
	return &SubmitResult{
		Aceptado:       codigo == CodigoAceptado,
		Codigo:         codigo,
		Mensaje:        strings.TrimSpace(r.Return.Mensaje),
		NumeroRegistro: strings.TrimSpace(r.Return.NumeroRegistro),
		Observaciones:  r.Return.Observaciones,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
