package session

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/admin-panel-api/internal/domain"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/storage"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

// state es el estado completo de sesión que round-tripea por storage como un
// solo valor JSON (identidad activa, rol, credencial e identidades registradas).
type state struct {
	Identity      *entity.Identity  `json:"identity,omitempty"`
	Role          string            `json:"role"`
	CredentialSum string            `json:"credential_hash,omitempty"` // bcrypt de la credencial activa
	Authenticated bool              `json:"authenticated"`
	Registered    []entity.Identity `json:"registered_users"`
}

// UseCase es la única fuente de verdad de "quién actúa y con qué rol".
// Toda mutación pasa por sus métodos; tras cada transición comprometida se
// persiste el estado completo como efecto explícito y tolerante a fallos.
type UseCase struct {
	mu        sync.Mutex
	st        state
	store     storage.Store
	log       *logger.Logger
	allowDemo bool
}

// Profile son los campos de perfil que el caller puede tocar. Campo vacío = sin cambio.
type Profile struct {
	Name  string
	Email string
}

// New rehidrata la sesión desde storage. Contenido ausente o corrupto se trata
// como "sin datos": sesión limpia con rol viewer, nunca un error al caller.
func New(store storage.Store, log *logger.Logger, allowDemo bool) *UseCase {
	uc := &UseCase{
		store:     store,
		log:       log.Component("session"),
		allowDemo: allowDemo,
		st:        state{Role: entity.RoleViewer},
	}

	raw, ok, err := store.Get(storage.KeyAuth)
	if err != nil {
		uc.log.Warn().Err(err).Msg("leyendo estado de sesión, se arranca vacío")
		return uc
	}
	if !ok {
		return uc
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		uc.log.Warn().Err(err).Msg("estado de sesión corrupto, se descarta")
		return uc
	}
	if !entity.ValidRole(st.Role) {
		st.Role = entity.RoleViewer
	}
	uc.st = st
	return uc
}

// persist serializa y guarda el estado completo. El fallo se registra y se
// traga: la transición en memoria ya está comprometida.
func (uc *UseCase) persist() {
	raw, err := json.Marshal(uc.st)
	if err != nil {
		uc.log.Error().Err(err).Msg("serializando estado de sesión")
		return
	}
	if err := uc.store.Put(storage.KeyAuth, raw); err != nil {
		uc.log.Error().Err(err).Msg("persistiendo estado de sesión")
	}
}

// Login establece la identidad activa y su rol (viewer si la identidad no trae
// uno). Guarda el bcrypt de la credencial para verificaciones posteriores.
func (uc *UseCase) Login(identity entity.Identity, credential string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	role := identity.Role
	if !entity.ValidRole(role) {
		role = entity.RoleViewer
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Error().Err(err).Msg("hasheando credencial en login")
	}
	identity.CredentialHash = "" // nunca viaja en la identidad activa

	uc.st.Identity = &identity
	uc.st.Role = role
	uc.st.CredentialSum = string(hash)
	uc.st.Authenticated = true
	uc.persist()

	uc.log.Info().Str("user_id", identity.ID).Str("role", role).Msg("login")
}

// Authenticate resuelve email+credencial contra las identidades registradas y,
// si procede, hace Login. Con allowDemo activo, un email no registrado entra
// con la identidad demo (comportamiento del panel de demostración).
func (uc *UseCase) Authenticate(email, credential string) (entity.Identity, error) {
	registered, found := uc.FindByEmail(email)
	if found {
		if bcrypt.CompareHashAndPassword([]byte(registered.CredentialHash), []byte(credential)) != nil {
			return entity.Identity{}, domain.ErrCredentialMismatch
		}
		uc.Login(registered, credential)
		return registered, nil
	}
	if !uc.allowDemo {
		return entity.Identity{}, domain.ErrCredentialMismatch
	}
	demo := entity.Identity{
		ID:        "1",
		Name:      "John Doe",
		Email:     email,
		CreatedAt: time.Now(),
	}
	uc.Login(demo, credential)
	return demo, nil
}

// Logout limpia identidad, credencial y flag; el rol vuelve a viewer.
// Idempotente: puede llamarse en cualquier momento. Las identidades
// registradas sobreviven para futuros logins.
func (uc *UseCase) Logout() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.st.Identity = nil
	uc.st.CredentialSum = ""
	uc.st.Authenticated = false
	uc.st.Role = entity.RoleViewer
	uc.persist()
}

// Register construye una identidad nueva y la añade a la colección de
// registradas. El chequeo de email duplicado corre antes de construir nada.
// No autentica: el caller debe invocar Login con la identidad devuelta.
func (uc *UseCase) Register(profile Profile, credential string) (entity.Identity, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, id := range uc.st.Registered {
		if strings.EqualFold(id.Email, profile.Email) {
			return entity.Identity{}, domain.ErrEmailAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return entity.Identity{}, err
	}
	identity := entity.Identity{
		ID:             uuid.New().String(),
		Name:           profile.Name,
		Email:          profile.Email,
		CredentialHash: string(hash),
		CreatedAt:      time.Now(),
	}
	uc.st.Registered = append(uc.st.Registered, identity)
	uc.persist()

	uc.log.Info().Str("user_id", identity.ID).Msg("identidad registrada")
	return identity, nil
}

// UpdateProfile hace merge superficial sobre la identidad activa.
// No-op si no hay sesión autenticada.
func (uc *UseCase) UpdateProfile(p Profile) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.st.Authenticated || uc.st.Identity == nil {
		return
	}
	if p.Name != "" {
		uc.st.Identity.Name = p.Name
	}
	if p.Email != "" {
		uc.st.Identity.Email = p.Email
	}
	uc.persist()
}

// VerifyCredential compara el candidato contra la credencial almacenada.
func (uc *UseCase) VerifyCredential(candidate string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.st.CredentialSum == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(uc.st.CredentialSum), []byte(candidate)) == nil
}

// UpdateCredential sobrescribe la credencial activa sin condiciones
// (sin cadena de re-hash ni historial).
func (uc *UseCase) UpdateCredential(newCredential string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(newCredential), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	uc.st.CredentialSum = string(hash)
	// Si la identidad activa está registrada, su credencial también se actualiza.
	if uc.st.Identity != nil {
		for i := range uc.st.Registered {
			if strings.EqualFold(uc.st.Registered[i].Email, uc.st.Identity.Email) {
				uc.st.Registered[i].CredentialHash = string(hash)
			}
		}
	}
	uc.persist()
	return nil
}

// SetRole sobrescribe el rol activo. Afordance de demo/test: en un diseño de
// producción el rol se deriva solo de la fuente autoritativa.
func (uc *UseCase) SetRole(role string) error {
	if !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.st.Role = role
	uc.persist()
	return nil
}

// Current devuelve la identidad activa, si la hay.
func (uc *UseCase) Current() (entity.Identity, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.st.Identity == nil {
		return entity.Identity{}, false
	}
	return *uc.st.Identity, true
}

// Role devuelve el rol activo (viewer cuando no hay sesión).
func (uc *UseCase) Role() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.st.Role
}

// IsAuthenticated indica si hay una sesión activa.
func (uc *UseCase) IsAuthenticated() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.st.Authenticated
}

// FindByEmail busca en las identidades registradas (case-insensitive).
func (uc *UseCase) FindByEmail(email string) (entity.Identity, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, id := range uc.st.Registered {
		if strings.EqualFold(id.Email, email) {
			return id, true
		}
	}
	return entity.Identity{}, false
}

// RegisteredCount devuelve cuántas identidades hay registradas.
func (uc *UseCase) RegisteredCount() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.st.Registered)
}
