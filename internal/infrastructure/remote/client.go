package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/admin-panel-api/internal/domain"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

// userPayload es la forma del endpoint demo (/users de jsonplaceholder).
// Solo se decodifica lo que la vista consume.
type userPayload struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
}

// Client consume la colección remota de solo lectura. Una petición GET por
// montaje de vista; sin reintentos automáticos.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente con el timeout configurado.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.Component("remote"),
	}
}

// FetchUsers trae la colección de usuarios demo y la mapea a Records con
// origin=remote, freshness=existing. El caller es dueño del slice devuelto;
// los registros remotos nunca se mutan in place.
func (c *Client) FetchUsers(ctx context.Context) ([]entity.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("fetch de usuarios remotos")
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Msg("fetch de usuarios remotos")
		return nil, fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var payload []userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	out := make([]entity.Record, 0, len(payload))
	for _, u := range payload {
		out = append(out, entity.Record{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			Company:   u.Company.Name,
			Website:   u.Website,
			Origin:    entity.OriginRemote,
			Freshness: entity.FreshnessExisting,
		})
	}
	c.log.Debug().Int("count", len(out)).Msg("usuarios remotos recibidos")
	return out, nil
}
