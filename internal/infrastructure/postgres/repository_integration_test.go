//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
	"github.com/jhoicas/notaria-api/pkg/config"
	"github.com/jhoicas/notaria-api/pkg/logger"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("notaria_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := NewMigrator(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func nuevoCliente(doc, nombres, paterno, sexo string) *entity.Cliente {
	now := time.Now()
	return &entity.Cliente{
		ID: uuid.NewString(), TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: doc,
		Nombres: nombres, ApellidoPaterno: paterno, Sexo: sexo, CreatedAt: now, UpdatedAt: now,
	}
}

func TestRepositorios_Integracion(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	t.Run("cliente busqueda sin tildes y duplicado", func(t *testing.T) {
		repo := NewClienteRepository(pool)
		require.NoError(t, repo.Create(ctx, nuevoCliente("45678912", "José", "Núñez", "M")))
		require.ErrorIs(t, repo.Create(ctx, nuevoCliente("45678912", "Otro", "Otro", "M")), domain.ErrDuplicate)

		list, total, err := repo.List(ctx, repository.ListFilter{Q: "jose nunez"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, list, 1)
		assert.Equal(t, "45678912", list[0].NumeroDocumento)

		c, err := repo.GetByID(ctx, "no-es-uuid")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("correlativos concurrentes sin huecos ni repetidos", func(t *testing.T) {
		runner := NewTxRunner(pool)
		const n = 10
		var wg sync.WaitGroup
		numeros := make(chan int, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := runner.Run(ctx, func(repos repository.TxRepos) error {
					sec, err := repos.Correlativo.Next(ctx, repository.TablaCartas, "CN", 2026)
					if err != nil {
						return err
					}
					now := time.Now()
					c := &entity.Carta{
						ID: uuid.NewString(), Numero: "CN" + uuid.NewString()[:6], Serie: "CN", Anio: 2026, Secuencia: sec,
						FechaIngreso: now, RemitenteNombre: "A", DestinatarioNombre: "B", DestinatarioDireccion: "C",
						Resultado: entity.CartaPendiente, Costo: decimal.NewFromInt(30), CreatedAt: now, UpdatedAt: now,
					}
					if err := repos.Cartas.Create(ctx, c); err != nil {
						return err
					}
					numeros <- sec
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		close(numeros)

		vistos := map[int]bool{}
		for s := range numeros {
			assert.False(t, vistos[s], "secuencia repetida %d", s)
			vistos[s] = true
		}
		for i := 1; i <= n; i++ {
			assert.True(t, vistos[i], "falta secuencia %d", i)
		}

		var sec int
		err := runner.Run(ctx, func(repos repository.TxRepos) error {
			var err error
			sec, err = repos.Correlativo.Next(ctx, repository.TablaCartas, "CN", 2027)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, sec, "la secuencia reinicia cada año")
	})

	t.Run("kardex con contratantes y vehiculo", func(t *testing.T) {
		clientes := NewClienteRepository(pool)
		vendedora := nuevoCliente("11111111", "ANA", "QUISPE", "F")
		comprador := nuevoCliente("22222222", "LUIS", "MAMANI", "M")
		require.NoError(t, clientes.Create(ctx, vendedora))
		require.NoError(t, clientes.Create(ctx, comprador))

		now := time.Now()
		k := &entity.Kardex{
			ID: uuid.NewString(), Numero: "V000001-2026", Serie: "V", Anio: 2026, Secuencia: 1,
			TipoKardex: entity.KardexVehicular, ActoCodigo: "TV", FechaIngreso: now,
			Importe: decimal.RequireFromString("15000.50"), Moneda: "PEN", Estado: entity.KardexEnProceso,
			SISGENEstado: entity.SISGENNoEnviado, CreatedAt: now, UpdatedAt: now,
		}
		repo := NewKardexRepository(pool)
		require.NoError(t, repo.Create(ctx, k))
		require.ErrorIs(t, repo.Create(ctx, &entity.Kardex{
			ID: uuid.NewString(), Numero: k.Numero, Serie: "V", Anio: 2026, Secuencia: 2, TipoKardex: "V",
			ActoCodigo: "TV", FechaIngreso: now, Moneda: "PEN", Estado: entity.KardexEnProceso,
			SISGENEstado: entity.SISGENNoEnviado, CreatedAt: now, UpdatedAt: now,
		}), domain.ErrDuplicate)

		for _, c := range []struct{ cliente, condicion string }{{vendedora.ID, "VENDEDOR"}, {comprador.ID, "COMPRADOR"}} {
			require.NoError(t, repo.AddContratante(ctx, &entity.Contratante{
				ID: uuid.NewString(), KardexID: k.ID, ClienteID: c.cliente, CondicionCodigo: c.condicion,
				Intervencion: entity.IntervencionPropio, CreatedAt: now, UpdatedAt: now,
			}))
		}
		cs, err := repo.ListContratantes(ctx, k.ID)
		require.NoError(t, err)
		require.Len(t, cs, 2)
		assert.Equal(t, "VENDEDORA", cs[0].Condicion.Femenino)
		assert.Equal(t, "ANA", cs[0].Cliente.Nombres)

		require.NoError(t, repo.SaveVehiculo(ctx, &entity.Vehiculo{
			KardexID: k.ID, Placa: "ABC-123", Precio: decimal.NewFromInt(15000), Moneda: "PEN",
			FormaPago: entity.FormaPagoContado, CreatedAt: now, UpdatedAt: now,
		}))
		v, err := repo.GetVehiculo(ctx, k.ID)
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, "ABC-123", v.Placa)

		got, err := repo.GetByID(ctx, k.ID)
		require.NoError(t, err)
		assert.True(t, got.Importe.Equal(decimal.RequireFromString("15000.50")))

		list, total, err := repo.List(ctx, repository.KardexFilter{ListFilter: repository.ListFilter{Q: "quispe"}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, list, 1)

		// el contrato con tildes se encuentra sin ellas tras el update
		got.Contrato = "TRANSFERENCIA DE VEHÍCULO"
		require.NoError(t, repo.Update(ctx, got))
		_, total, err = repo.List(ctx, repository.KardexFilter{ListFilter: repository.ListFilter{Q: "vehiculo"}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)

		assert.ErrorIs(t, clientes.Delete(ctx, vendedora.ID), domain.ErrConflict)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), domain.ErrNotFound)
	})

	t.Run("resumen del dia", func(t *testing.T) {
		resumen := NewResumenRepository(pool)
		hoy := time.Now()

		porTipo, err := resumen.KardexPorTipo(ctx, hoy, hoy)
		require.NoError(t, err)
		require.Len(t, porTipo, 1)
		assert.Equal(t, entity.KardexVehicular, porTipo[0].TipoKardex)
		assert.Equal(t, 1, porTipo[0].Cantidad)
		assert.True(t, porTipo[0].CuantiaPEN.Equal(decimal.RequireFromString("15000.50")))
		assert.True(t, porTipo[0].CuantiaUSD.IsZero())

		extra, err := resumen.Extraprotocolares(ctx, hoy, hoy)
		require.NoError(t, err)
		assert.Equal(t, 10, extra.Cartas)
		assert.Zero(t, extra.Poderes)

		sis, err := resumen.EstadoSISGEN(ctx)
		require.NoError(t, err)
		assert.Zero(t, sis.Pendientes, "sin escritura no cuenta como pendiente")
	})
}
