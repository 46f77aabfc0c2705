package docx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/jhoicas/notaria-api/internal/domain"
)

// TemplateStore carga plantillas .docx por nombre de archivo desde un fs.FS (TEMPLATES_DIR).
type TemplateStore struct {
	fsys fs.FS
}

// NewTemplateStore construye el store sobre fsys.
func NewTemplateStore(fsys fs.FS) *TemplateStore {
	return &TemplateStore{fsys: fsys}
}

// NewDirTemplateStore store sobre un directorio del disco.
func NewDirTemplateStore(dir string) *TemplateStore {
	return NewTemplateStore(os.DirFS(dir))
}

// Load devuelve los bytes de la plantilla; domain.ErrTemplateNotFound si no existe o el nombre es inválido.
func (s *TemplateStore) Load(name string) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("docx: leer plantilla %s: %w", name, err)
	}
	return data, nil
}

// Exists indica si la plantilla está disponible.
func (s *TemplateStore) Exists(name string) bool {
	if !validName(name) {
		return false
	}
	_, err := fs.Stat(s.fsys, name)
	return err == nil
}

// First devuelve el primer nombre existente de la lista (plantilla específica y sus alternativas).
func (s *TemplateStore) First(names ...string) (string, error) {
	for _, n := range names {
		if n != "" && s.Exists(n) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, strings.Join(names, ", "))
}

// validName solo nombres de archivo planos con extensión .docx.
func validName(name string) bool {
	return fs.ValidPath(name) && path.Base(name) == name && strings.HasSuffix(strings.ToLower(name), ".docx")
}
