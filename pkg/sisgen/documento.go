package sisgen

import (
	"fmt"
	"strings"
)

// pesos SUNAT para el dígito verificador del RUC (10 primeros dígitos).
var rucWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// prefijos válidos: 10 persona natural, 15/16/17 casos especiales, 20 persona jurídica.
var rucPrefijos = map[string]bool{"10": true, "15": true, "16": true, "17": true, "20": true}

// ValidateRUC valida longitud, prefijo y dígito verificador (módulo 11) de un RUC.
func ValidateRUC(ruc string) error {
	digits := strings.TrimSpace(ruc)
	if len(digits) != 11 || !onlyDigits(digits) {
		return fmt.Errorf("sisgen: RUC debe tener 11 dígitos")
	}
	if !rucPrefijos[digits[:2]] {
		return fmt.Errorf("sisgen: prefijo de RUC inválido %q", digits[:2])
	}
	expected, err := ComputeRUCCheckDigit(digits[:10])
	if err != nil {
		return err
	}
	if digits[10] != expected {
		return fmt.Errorf("sisgen: dígito verificador del RUC inválido: esperado %c, recibido %c", expected, digits[10])
	}
	return nil
}

// ComputeRUCCheckDigit calcula el dígito verificador para los 10 primeros dígitos del RUC.
func ComputeRUCCheckDigit(base string) (byte, error) {
	if len(base) != 10 || !onlyDigits(base) {
		return 0, fmt.Errorf("sisgen: se requieren 10 dígitos para calcular el dígito verificador")
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(base[i]-'0') * rucWeights[i]
	}
	d := 11 - sum%11
	switch d {
	case 10:
		d = 0
	case 11:
		d = 1
	}
	return byte('0' + d), nil
}

// ValidateDocumento valida el número según el tipo de documento.
func ValidateDocumento(tipo, numero string) error {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return fmt.Errorf("sisgen: número de documento vacío")
	}
	switch tipo {
	case DocDNI:
		if len(numero) != 8 || !onlyDigits(numero) {
			return fmt.Errorf("sisgen: DNI debe tener 8 dígitos")
		}
	case DocRUC:
		return ValidateRUC(numero)
	case DocCE, DocPAS, DocCPP:
		if len(numero) > 15 {
			return fmt.Errorf("sisgen: %s admite hasta 15 caracteres", tipo)
		}
	default:
		return fmt.Errorf("sisgen: tipo de documento desconocido %q", tipo)
	}
	return nil
}

// onlyDigits solo acepta 0-9 ASCII; otros dígitos Unicode no valen para SUNAT/RENIEC.
func onlyDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
