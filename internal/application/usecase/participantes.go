package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// resolverParticipantes valida roles y existencia de clientes y devuelve los participantes con su cliente.
func resolverParticipantes(ctx context.Context, clientes repository.ClienteRepository, in []dto.ParticipanteRequest, roles ...string) ([]entity.Participante, error) {
	validos := make(map[string]bool, len(roles))
	for _, r := range roles {
		validos[r] = true
	}
	ids := make([]string, 0, len(in))
	vistos := make(map[string]bool, len(in))
	for _, p := range in {
		rol := strings.ToUpper(p.Rol)
		if !validos[rol] {
			return nil, invalid("rol %q no válido (use %s)", p.Rol, strings.Join(roles, ", "))
		}
		clave := p.ClienteID + ":" + rol
		if vistos[clave] {
			return nil, invalid("cliente %s repetido con rol %s", p.ClienteID, rol)
		}
		vistos[clave] = true
		ids = append(ids, p.ClienteID)
	}
	found, err := clientes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Participante, 0, len(in))
	for _, p := range in {
		c, ok := found[p.ClienteID]
		if !ok {
			return nil, invalid("cliente %s no existe", p.ClienteID)
		}
		out = append(out, entity.Participante{ClienteID: p.ClienteID, Rol: strings.ToUpper(p.Rol), Cliente: c})
	}
	return out, nil
}

func toParticipantesResponse(ps []entity.Participante) []dto.ParticipanteResponse {
	out := make([]dto.ParticipanteResponse, 0, len(ps))
	for _, p := range ps {
		r := dto.ParticipanteResponse{ClienteID: p.ClienteID, Rol: p.Rol}
		if p.Cliente != nil {
			r.Nombre = p.Cliente.NombreCompleto()
			r.TipoDocumento = p.Cliente.TipoDocumento
			r.NumeroDocumento = p.Cliente.NumeroDocumento
		}
		out = append(out, r)
	}
	return out
}
