package transfer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/transfer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos del motor
// ──────────────────────────────────────────────────────────────────────────────

// fakeClock hora fija para que los timestamps sean deterministas.
type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

// fakeDirectory roles y bodegas gestionadas en memoria.
type fakeDirectory struct {
	roles   map[string]string
	manages map[string]string // actorID -> warehouseID que gestiona
}

func (d fakeDirectory) ResolveRole(actorID string) (string, error) {
	role, ok := d.roles[actorID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return role, nil
}

func (d fakeDirectory) ManagesWarehouse(actorID, warehouseID string) (bool, error) {
	return d.manages[actorID] == warehouseID, nil
}

var testNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func newTestEngine() *transfer.Engine {
	dir := fakeDirectory{
		roles: map[string]string{
			"admin-1":    entity.RoleAdmin,
			"gerente-n":  entity.RoleGerente,
			"gerente-s":  entity.RoleGerente,
			"vendedor-1": entity.RoleVendedor,
		},
		manages: map[string]string{
			"gerente-n": "wh-norte",
			"gerente-s": "wh-sur",
		},
	}
	return transfer.NewEngine(dir, fakeClock{t: testNow})
}

func validInput() transfer.CreateInput {
	return transfer.CreateInput{
		SourceWarehouse:      "wh-central",
		DestinationWarehouse: "wh-norte",
		Items: []entity.TransferItem{
			{ProductID: "P1", Name: "Arroz 5kg", SKU: "RICE-5KG", Quantity: 10},
			{ProductID: "P2", Name: "Aceite 1L", SKU: "OIL-1L", Quantity: 4},
		},
		Justification: "Reposición por aumento de demanda en sucursal norte",
	}
}

func validSnapshot() transfer.StockSnapshot {
	return transfer.StockSnapshot{"P1": 125, "P2": 25}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SolicitudValida(t *testing.T) {
	eng := newTestEngine()

	req, err := eng.Create(validInput(), "gerente-n", validSnapshot())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID, "debe asignarse un id nuevo")
	assert.Equal(t, entity.TransferPending, req.Status)
	assert.Equal(t, "gerente-n", req.CreatedBy)
	assert.Equal(t, testNow, req.CreatedAt)
	require.Len(t, req.History, 1, "la creación agrega exactamente una entrada de historial")
	assert.Equal(t, entity.ActionRequestCreated, req.History[0].Action)
	assert.Equal(t, entity.TransferPending, req.History[0].Status)
	assert.Nil(t, req.CompletedAt)
}

func TestCreate_MismaBodegaOrigenDestino(t *testing.T) {
	eng := newTestEngine()
	in := validInput()
	in.DestinationWarehouse = in.SourceWarehouse

	_, err := eng.Create(in, "gerente-n", validSnapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"origen y destino iguales deben fallar con error de validación")
}

func TestCreate_SinLineas(t *testing.T) {
	eng := newTestEngine()
	in := validInput()
	in.Items = nil

	_, err := eng.Create(in, "gerente-n", validSnapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_JustificacionVacia(t *testing.T) {
	eng := newTestEngine()
	in := validInput()
	in.Justification = ""

	_, err := eng.Create(in, "gerente-n", validSnapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadNoPositiva(t *testing.T) {
	eng := newTestEngine()
	in := validInput()
	in.Items[0].Quantity = 0

	_, err := eng.Create(in, "gerente-n", validSnapshot())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Pedir 20 de P1 con 15 disponibles falla con
// InsufficientStockError que nombra el producto y lo disponible, y no se crea
// ninguna solicitud (todo-o-nada).
func TestCreate_StockInsuficiente(t *testing.T) {
	eng := newTestEngine()
	in := validInput()
	in.Items = []entity.TransferItem{{ProductID: "P1", Name: "Arroz 5kg", SKU: "RICE-5KG", Quantity: 20}}

	req, err := eng.Create(in, "gerente-n", transfer.StockSnapshot{"P1": 15})
	require.Error(t, err)
	assert.Nil(t, req, "no debe crearse solicitud parcial")

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "P1", insufficient.ProductID)
	assert.Equal(t, int64(15), insufficient.Available)
	assert.Equal(t, int64(20), insufficient.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreate_ProductoSinSnapshotCuentaComoCero(t *testing.T) {
	eng := newTestEngine()
	in := validInput()

	// P2 no aparece en el snapshot: disponible 0.
	_, err := eng.Create(in, "gerente-n", transfer.StockSnapshot{"P1": 125})

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "P2", insufficient.ProductID)
	assert.Equal(t, int64(0), insufficient.Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject
// ──────────────────────────────────────────────────────────────────────────────

// Create seguido de approve deja status approved con
// exactamente dos entradas de historial y la última en approved.
func TestApprove_DespuesDeCreate(t *testing.T) {
	eng := newTestEngine()
	req, err := eng.Create(validInput(), "vendedor-1", validSnapshot())
	require.NoError(t, err)

	approved, err := eng.Approve(req, "admin-1", "Approved for transfer")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferApproved, approved.Status)
	assert.Equal(t, "admin-1", approved.ApprovedBy)
	require.Len(t, approved.History, 2)
	assert.Equal(t, entity.TransferApproved, approved.History[1].Status)
	assert.Equal(t, "Approved for transfer", approved.History[1].Comment)

	// El motor no muta la solicitud recibida.
	assert.Equal(t, entity.TransferPending, req.Status)
	assert.Len(t, req.History, 1)
}

func TestApprove_GerenteDeBodegaDestino(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	// gerente-n gestiona wh-norte, la bodega destino.
	approved, err := eng.Approve(req, "gerente-n", "")
	require.NoError(t, err)
	assert.Equal(t, "Request approved", approved.History[1].Comment,
		"comentario vacío usa el texto por defecto")
}

func TestApprove_GerenteDeOtraBodegaSinPermiso(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	_, err := eng.Approve(req, "gerente-s", "")
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"gerente de otra bodega no puede aprobar")

	var perm *domain.PermissionError
	require.True(t, errors.As(err, &perm))
	assert.Equal(t, "gerente-s", perm.Actor)
}

func TestApprove_VendedorSinPermiso(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	_, err := eng.Approve(req, "vendedor-1", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Aprobar dos veces falla la segunda con
// InvalidTransitionError y sin entrada duplicada de historial.
func TestApprove_DobleAprobacionFalla(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())
	approved, err := eng.Approve(req, "admin-1", "")
	require.NoError(t, err)

	_, err = eng.Approve(approved, "admin-1", "")
	require.Error(t, err)

	var invalid *domain.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, string(entity.TransferApproved), invalid.Current)
	assert.Equal(t, "approve", invalid.Attempted)
	assert.Len(t, approved.History, 2, "no debe haber entradas duplicadas")
}

// Reject con comentario vacío falla con error de
// validación y el estado queda intacto.
func TestReject_ComentarioObligatorio(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	_, err := eng.Reject(req, "admin-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.TransferPending, req.Status, "el estado no cambia en el fallo")
	assert.Len(t, req.History, 1)
}

func TestReject_ConMotivo(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	rejected, err := eng.Reject(req, "gerente-n", "Please follow defective item return process instead")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferRejected, rejected.Status)
	assert.True(t, rejected.Status.Terminal())
	require.Len(t, rejected.History, 2)
	assert.Equal(t, entity.ActionRequestRejected, rejected.History[1].Action)
}

func TestReject_DesdeEstadoNoPendingFalla(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())
	rejected, _ := eng.Reject(req, "admin-1", "motivo")

	_, err := eng.Approve(rejected, "admin-1", "")
	assert.ErrorIs(t, err, domain.ErrConflict, "rejected es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkInTransit / Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkInTransit_SoloDesdeApproved(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	_, err := eng.MarkInTransit(req, "gerente-n")
	assert.ErrorIs(t, err, domain.ErrConflict, "pending no permite despacho")

	approved, _ := eng.Approve(req, "admin-1", "")
	inTransit, err := eng.MarkInTransit(approved, "gerente-n")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferInTransit, inTransit.Status)
	assert.Equal(t, entity.ActionItemsDispatched, inTransit.History[2].Action)
}

// Complete desde pending siempre falla con
// InvalidTransitionError.
func TestComplete_DesdePendingFalla(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	_, err := eng.Complete(req, "gerente-n")
	require.Error(t, err)

	var invalid *domain.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, string(entity.TransferPending), invalid.Current)
	assert.Equal(t, "complete", invalid.Attempted)
}

func TestComplete_DesdeApproved(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())
	approved, _ := eng.Approve(req, "admin-1", "")

	completed, err := eng.Complete(approved, "gerente-n")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, testNow, *completed.CompletedAt)
	last := completed.History[len(completed.History)-1]
	assert.Equal(t, entity.ActionTransferCompleted, last.Action)
	assert.Equal(t, "Items received and verified", last.Comment)
}

func TestComplete_DesdeInTransit(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())
	approved, _ := eng.Approve(req, "admin-1", "")
	inTransit, _ := eng.MarkInTransit(approved, "gerente-n")

	completed, err := eng.Complete(inTransit, "gerente-n")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, completed.Status)
	assert.Len(t, completed.History, 4)
}

// Recibe el lado destino: ni siquiera un admin que no gestiona la bodega
// destino puede confirmar la recepción.
func TestComplete_SoloGerenteDeDestino(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())
	approved, _ := eng.Approve(req, "admin-1", "")

	_, err := eng.Complete(approved, "admin-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = eng.Complete(approved, "gerente-s")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestComplete_EstadoTerminalNoPermiteMasTransiciones(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())
	approved, _ := eng.Approve(req, "admin-1", "")
	completed, _ := eng.Complete(approved, "gerente-n")

	_, err := eng.Complete(completed, "gerente-n")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = eng.MarkInTransit(completed, "gerente-n")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Invariante: tras cada transición la última entrada del historial refleja el
// estado actual y el historial solo crece.
func TestHistorial_UltimaEntradaSiempreIgualAlEstado(t *testing.T) {
	eng := newTestEngine()
	req, _ := eng.Create(validInput(), "vendedor-1", validSnapshot())

	steps := []*entity.TransferRequest{req}
	approved, _ := eng.Approve(req, "admin-1", "")
	steps = append(steps, approved)
	inTransit, _ := eng.MarkInTransit(approved, "gerente-n")
	steps = append(steps, inTransit)
	completed, _ := eng.Complete(inTransit, "gerente-n")
	steps = append(steps, completed)

	for i, r := range steps {
		require.Len(t, r.History, i+1)
		assert.Equal(t, r.Status, r.History[len(r.History)-1].Status)
	}
}
