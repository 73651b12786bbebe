package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-panel-api/internal/application/dto"
	"github.com/jhoicas/admin-panel-api/internal/application/notify"
	"github.com/jhoicas/admin-panel-api/internal/application/records"
	"github.com/jhoicas/admin-panel-api/internal/application/session"
	"github.com/jhoicas/admin-panel-api/internal/application/settings"
	"github.com/jhoicas/admin-panel-api/internal/application/view"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/remote"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/admin-panel-api/internal/interfaces/http"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "admin-panel-test"
)

// remoteUsersJSON dos usuarios del endpoint demo.
const remoteUsersJSON = `[
  {"id":1,"name":"Leanne Graham","email":"Sincere@april.biz","phone":"1-770-736-8031","company":{"name":"Romaguera-Crona"}},
  {"id":2,"name":"Ervin Howell","email":"Shanna@melissa.tv","phone":"010-692-6593","company":{"name":"Deckow-Crist"}}
]`

type testEnv struct {
	app      *fiber.App
	sessions *session.UseCase
	records  *records.Store
}

// buildTestApp levanta la aplicación completa sobre storage temporal y un
// servidor remoto falso, con el modo demo activo (login sin registro y
// override de rol disponibles).
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(remoteUsersJSON))
	}))
	t.Cleanup(srv.Close)

	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	log := logger.Nop()

	sessions := session.New(kv, log, true)
	recs := records.New(kv, log)
	snap := remote.NewSnapshot(remote.NewClient(srv.URL, 2*time.Second, log))
	engine := view.NewEngine(
		func() []entity.Record { return snap.Get().Data },
		recs.List,
		10*time.Millisecond,
	)
	t.Cleanup(engine.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Sessions:  sessions,
		Records:   recs,
		Snapshot:  snap,
		Engine:    engine,
		Notifier:  notify.NewCenter(log),
		Prefs:     settings.New(kv, log),
		JWT:       apphttp.JWTSettings{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		AllowDemo: true,
	})
	return &testEnv{app: app, sessions: sessions, records: recs}
}

// doJSON lanza una petición con cuerpo JSON opcional y token opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// loginDemo entra con el login demo y devuelve el token.
func loginDemo(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: email, Password: "secreta1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests middleware de auth
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/users", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 2: token malformado → 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/users", "token.invalido.aqui", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests auth: login, registro, logout
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: login con campos inválidos → 422 con errores campo → mensaje.
func TestLogin_Validacion(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "no-es-email", Password: "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "email")
	assert.Contains(t, out.Fields, "password")
}

// Caso 4: el login demo entra como viewer y navega al dashboard.
func TestLogin_DemoEsViewer(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "demo@x.com", Password: "secreta1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, entity.RoleViewer, out.Role)
	assert.Equal(t, "/dashboard", out.Redirect)
	assert.Equal(t, "John Doe", out.User.Name)
}

// Caso 5: registro, login con la cuenta creada y duplicado rechazado con
// error de campo en email.
func TestRegister_FlujoYDuplicado(t *testing.T) {
	env := buildTestApp(t)
	reg := dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "Password1", ConfirmPassword: "Password1"}

	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", reg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.RegisterResponse](t, resp)
	assert.Equal(t, "/login", created.Redirect, "el registro no autentica")

	// Login con la credencial registrada.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "ana@x.com", Password: "Password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Mismo email otra vez → 409 y sin identidad nueva.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", reg)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EMAIL_EXISTS", out.Code)
	assert.Contains(t, out.Fields, "email")
	assert.Equal(t, 1, env.sessions.RegisteredCount())
}

// Caso 6: logout es idempotente y deja el rol en viewer.
func TestLogout_Idempotente(t *testing.T) {
	env := buildTestApp(t)
	loginDemo(t, env, "demo@x.com")
	require.True(t, env.sessions.IsAuthenticated())

	for i := 0; i < 2; i++ {
		resp := doJSON(t, env.app, http.MethodPost, "/api/auth/logout", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	assert.False(t, env.sessions.IsAuthenticated())
	assert.Equal(t, entity.RoleViewer, env.sessions.Role())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests usuarios: vista combinada y RBAC vivo
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: la vista combinada trae remotos + locales; la búsqueda filtra
// case-insensitive.
func TestUsers_ListaYBusqueda(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com")

	resp := doJSON(t, env.app, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.UsersListResponse](t, resp)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 2, out.Combined)

	resp = doJSON(t, env.app, http.MethodGet, "/api/users?search=LEANNE", token, nil)
	out = decode[dto.UsersListResponse](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Leanne Graham", out.Users[0].Name)

	resp = doJSON(t, env.app, http.MethodGet, "/api/users?search=zz", token, nil)
	out = decode[dto.UsersListResponse](t, resp)
	assert.Zero(t, out.Total)
}

// Caso 8: viewer no puede crear (403); con el override demo a admin la misma
// petición pasa — el permiso se evalúa con el rol vivo, no con el token.
func TestUsers_CrearGateadoPorRolVivo(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com") // viewer

	body := dto.SaveUserRequest{Name: "Nueva", Email: "nueva@x.com", Phone: "555", Company: "Acme"}
	resp := doJSON(t, env.app, http.MethodPost, "/api/users", token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPut, "/api/demo/role", token, dto.SetRoleRequest{Role: entity.RoleAdmin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/users", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserRowResponse](t, resp)
	assert.Equal(t, 3, created.ID, "max(1,2)+1 sobre la vista combinada")
	assert.Equal(t, entity.OriginLocal, created.Origin)
	assert.True(t, created.IsNew)
	assert.True(t, created.CanEdit)
	assert.True(t, created.CanDelete)
}

// Caso 9: un registro remoto jamás es editable ni borrable, ni siquiera para
// admin.
func TestUsers_RemotoNuncaEditable(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com")
	resp := doJSON(t, env.app, http.MethodPut, "/api/demo/role", token, dto.SetRoleRequest{Role: entity.RoleAdmin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El id 1 existe pero es remoto → no está en la colección local.
	resp = doJSON(t, env.app, http.MethodPut, "/api/users/1", token, dto.SaveUserRequest{Name: "Hack"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodDelete, "/api/users/1", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Y en la vista, sus affordances van apagadas aunque el rol sea admin.
	resp = doJSON(t, env.app, http.MethodGet, "/api/users?source=api", token, nil)
	out := decode[dto.UsersListResponse](t, resp)
	for _, row := range out.Users {
		assert.False(t, row.CanEdit)
		assert.False(t, row.CanDelete)
	}
}

// Caso 10: editor puede crear y editar pero no borrar.
func TestUsers_EditorSinDelete(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com")
	resp := doJSON(t, env.app, http.MethodPut, "/api/demo/role", token, dto.SetRoleRequest{Role: entity.RoleEditor})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/users", token,
		dto.SaveUserRequest{Name: "Mia", Email: "mia@x.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserRowResponse](t, resp)
	assert.True(t, created.CanEdit)
	assert.False(t, created.CanDelete, "editor edita pero no borra")

	resp = doJSON(t, env.app, http.MethodDelete, "/api/users/3", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// Caso 11: los filtros de estado y origen restringen la vista.
func TestUsers_Filtros(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com")
	resp := doJSON(t, env.app, http.MethodPut, "/api/demo/role", token, dto.SetRoleRequest{Role: entity.RoleAdmin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/users", token,
		dto.SaveUserRequest{Name: "Local Uno", Email: "l1@x.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/users?status=new", token, nil)
	out := decode[dto.UsersListResponse](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Local Uno", out.Users[0].Name)

	resp = doJSON(t, env.app, http.MethodGet, "/api/users?source=api", token, nil)
	out = decode[dto.UsersListResponse](t, resp)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 3, out.Combined)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests settings y notificaciones
// ──────────────────────────────────────────────────────────────────────────────

// Caso 12: tema y sidebar.
func TestSettings_TemaYSidebar(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com")

	resp := doJSON(t, env.app, http.MethodGet, "/api/settings", token, nil)
	prefs := decode[dto.PreferencesResponse](t, resp)
	assert.Equal(t, entity.ThemeLight, prefs.Theme)
	assert.True(t, prefs.SidebarOpen)

	resp = doJSON(t, env.app, http.MethodPut, "/api/settings/theme", token, dto.SetThemeRequest{Theme: "dark"})
	prefs = decode[dto.PreferencesResponse](t, resp)
	assert.Equal(t, entity.ThemeDark, prefs.Theme)

	resp = doJSON(t, env.app, http.MethodPut, "/api/settings/theme", token, dto.SetThemeRequest{Theme: "neon"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/settings/sidebar/toggle", token, nil)
	prefs = decode[dto.PreferencesResponse](t, resp)
	assert.False(t, prefs.SidebarOpen)
}

// Caso 13: las mutaciones dejan notificaciones consultables y Clear las vacía.
func TestNotifications_AcumulaYLimpia(t *testing.T) {
	env := buildTestApp(t)
	token := loginDemo(t, env, "demo@x.com")
	resp := doJSON(t, env.app, http.MethodPut, "/api/demo/role", token, dto.SetRoleRequest{Role: entity.RoleAdmin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/users", token,
		dto.SaveUserRequest{Name: "Mia", Email: "mia@x.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/notifications", token, nil)
	items := decode[[]notify.Notification](t, resp)
	assert.NotEmpty(t, items)

	resp = doJSON(t, env.app, http.MethodDelete, "/api/notifications", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/notifications", token, nil)
	items = decode[[]notify.Notification](t, resp)
	assert.Empty(t, items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests cambio de credencial
// ──────────────────────────────────────────────────────────────────────────────

// Caso 14: la credencial actual incorrecta produce error de campo; la correcta
// permite el cambio y el login posterior usa la nueva.
func TestChangePassword(t *testing.T) {
	env := buildTestApp(t)
	reg := dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "Password1", ConfirmPassword: "Password1"}
	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", reg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "ana@x.com", Password: "Password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[dto.LoginResponse](t, resp).Token

	resp = doJSON(t, env.app, http.MethodPut, "/api/me/password", token,
		dto.ChangePasswordRequest{CurrentPassword: "mala", NewPassword: "Password2", ConfirmPassword: "Password2"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, out.Fields, "current_password")

	resp = doJSON(t, env.app, http.MethodPut, "/api/me/password", token,
		dto.ChangePasswordRequest{CurrentPassword: "Password1", NewPassword: "Password2", ConfirmPassword: "Password2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// La identidad registrada quedó con la credencial nueva.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "ana@x.com", Password: "Password2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
