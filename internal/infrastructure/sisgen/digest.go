package sisgen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"regexp"

	"github.com/ucarion/c14n"
)

var xmlDeclRe = regexp.MustCompile(`^\s*<\?xml[^>]*\?>\s*`)

// Canonicalize forma canónica C14N del XML (sin declaración, atributos ordenados).
func Canonicalize(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(xmlDeclRe.ReplaceAll(data, nil))
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("sisgen: canonicalizar XML: %w", err)
	}
	return out, nil
}

// Digest SHA-256 en hexadecimal de la forma canónica. Dos XML que solo difieren en la
// declaración, el orden de atributos o las comillas producen el mismo digest.
func Digest(data []byte) (string, error) {
	canon, err := Canonicalize(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
