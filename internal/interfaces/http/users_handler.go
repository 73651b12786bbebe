package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-panel-api/internal/application/dto"
	"github.com/jhoicas/admin-panel-api/internal/application/notify"
	"github.com/jhoicas/admin-panel-api/internal/application/records"
	"github.com/jhoicas/admin-panel-api/internal/application/session"
	"github.com/jhoicas/admin-panel-api/internal/application/view"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/remote"
)

// UsersHandler sirve la tabla de usuarios: la vista combinada (remotos +
// locales) con búsqueda, filtros y affordances por fila.
type UsersHandler struct {
	sessions *session.UseCase
	records  *records.Store
	snapshot *remote.Snapshot
	engine   *view.Engine
	notifier *notify.Center
}

// NewUsersHandler construye el handler de usuarios.
func NewUsersHandler(sessions *session.UseCase, recs *records.Store, snap *remote.Snapshot, engine *view.Engine, notifier *notify.Center) *UsersHandler {
	return &UsersHandler{sessions: sessions, records: recs, snapshot: snap, engine: engine, notifier: notifier}
}

// rowResponse mapea un registro a fila con las affordances del rol activo.
func (h *UsersHandler) rowResponse(rec entity.Record) dto.UserRowResponse {
	canEdit, canDelete := view.Affordances(rec, h.records.Contains, h.sessions.Role())
	return dto.UserRowResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Company:   rec.Company,
		Website:   rec.Website,
		Origin:    rec.Origin,
		IsNew:     rec.IsNew(),
		CanEdit:   canEdit,
		CanDelete: canDelete,
	}
}

// ensureFetched dispara el fetch remoto la primera vez (o bajo ?refetch=true).
// Sin reintentos automáticos: el refetch es siempre decisión del cliente.
func (h *UsersHandler) ensureFetched(c *fiber.Ctx) {
	st := h.snapshot.Get()
	if st.Fetched && c.Query("refetch") != "true" {
		return
	}
	_ = h.snapshot.Refetch(c.Context()) // el error queda publicado en el snapshot
	h.engine.Invalidate()
}

// List godoc
// @Summary      Vista combinada de usuarios con búsqueda y filtros
// @Tags         users
// @Produce      json
// @Param        search   query  string  false  "substring sobre nombre, email o teléfono"
// @Param        status   query  string  false  "new | existing"
// @Param        source   query  string  false  "local | api"
// @Param        refetch  query  bool    false  "fuerza un nuevo fetch remoto"
// @Success      200  {object}  dto.UsersListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	h.ensureFetched(c)

	st := h.snapshot.Get()
	if st.Error != "" && len(st.Data) == 0 {
		// Estado de error a nivel de página; los registros locales no se tocan.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "FETCH_ERROR", Message: st.Error})
	}

	search := c.Query("search")
	filters := view.Filters{Status: c.Query("status"), Source: c.Query("source")}

	// La respuesta se calcula en el momento; el motor con debounce mantiene
	// además la vista cacheada que consume /users/view.
	h.engine.SetFilters(filters)
	h.engine.SetSearch(search)

	local := h.records.List()
	rows := view.ComputeView(st.Data, local, search, filters)

	out := dto.UsersListResponse{
		Users:    make([]dto.UserRowResponse, 0, len(rows)),
		Total:    len(rows),
		Combined: len(st.Data) + len(local),
		Loading:  st.Loading,
		Error:    st.Error,
	}
	for _, rec := range rows {
		out.Users = append(out.Users, h.rowResponse(rec))
	}
	return c.JSON(out)
}

// ViewRows godoc
// @Summary      Filas precalculadas por el motor (búsqueda debounced)
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UsersListResponse
// @Router       /api/users/view [get]
func (h *UsersHandler) ViewRows(c *fiber.Ctx) error {
	h.ensureFetched(c)

	st := h.snapshot.Get()
	local := h.records.List()
	rows := h.engine.Rows()

	out := dto.UsersListResponse{
		Users:    make([]dto.UserRowResponse, 0, len(rows)),
		Total:    len(rows),
		Combined: len(st.Data) + len(local),
		Loading:  st.Loading,
		Error:    st.Error,
	}
	for _, rec := range rows {
		out.Users = append(out.Users, h.rowResponse(rec))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear un registro local (requiere permiso create)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveUserRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UserRowResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validateSaveUser(in, false); errs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "revisa los campos", Fields: errs})
	}

	// El id nuevo se calcula sobre la vista combinada en este instante.
	st := h.snapshot.Get()
	merged := view.ComputeView(st.Data, h.records.List(), "", view.Filters{})
	rec := h.records.Create(records.Fields{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Website: in.Website,
	}, merged)
	h.engine.Invalidate()

	h.notifier.Success("Usuario \"" + rec.Name + "\" agregado correctamente")
	return c.Status(fiber.StatusCreated).JSON(h.rowResponse(rec))
}

// Update godoc
// @Summary      Editar un registro local (requiere permiso update)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "id del registro local"
// @Param        body  body  dto.SaveUserRequest  true  "campos a tocar"
// @Success      200   {object}  dto.UserRowResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validateSaveUser(in, true); errs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "revisa los campos", Fields: errs})
	}

	// Solo la colección local es editable; un id remoto cae aquí como no
	// encontrado, sea cual sea el rol.
	ok := h.records.Update(id, records.Fields{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Website: in.Website,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "el registro no está en la colección local"})
	}
	h.engine.Invalidate()

	var updated dto.UserRowResponse
	for _, rec := range h.records.List() {
		if rec.ID == id {
			updated = h.rowResponse(rec)
			break
		}
	}
	h.notifier.Success("Usuario \"" + updated.Name + "\" actualizado correctamente")
	return c.JSON(updated)
}

// Delete godoc
// @Summary      Borrar un registro local (requiere permiso delete)
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "id del registro local"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	if !h.records.Delete(id) {
		// Borrar un remoto (o un id ya borrado) es no-op para el store, pero
		// al cliente se le responde 404 para que no crea que mutó algo.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "el registro no está en la colección local"})
	}
	h.engine.Invalidate()

	h.notifier.Success("Usuario eliminado correctamente")
	return c.SendStatus(fiber.StatusNoContent)
}
