// Package client talks to the aerocode API and keeps the snapshot the
// terminal screens render from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/models"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type API struct {
	baseURL string
	doer    Doer
}

func NewAPI(baseURL string, doer Doer) *API {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), doer: doer}
}

type AircraftInput struct {
	Code     string              `json:"codigo"`
	Model    string              `json:"modelo"`
	Type     models.AircraftType `json:"tipo"`
	Capacity int                 `json:"capacidade"`
	Range    int                 `json:"alcance"`
}

type PartInput struct {
	Name     string          `json:"nome"`
	Type     models.PartType `json:"tipo"`
	Supplier string          `json:"fornecedor"`
}

type StageInput struct {
	Name   string `json:"nome"`
	Date   string `json:"data"`
	Status string `json:"status,omitempty"`
}

type TestInput struct {
	Type   models.TestType   `json:"tipo"`
	Result models.TestResult `json:"resultado"`
}

type EmployeeInput struct {
	ID       string             `json:"id"`
	Name     string             `json:"nome"`
	Phone    string             `json:"telefone"`
	Address  string             `json:"endereco"`
	Username string             `json:"usuario"`
	Password string             `json:"senha"`
	Level    models.AccessLevel `json:"nivel"`
}

// do sends in as the JSON body and decodes the reply into out. Error replies
// come back as *apierr.Error; transport failures are wrapped as-is.
func (a *API) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var envelope apierr.Body
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
		kind := apierr.KindInternal
		if resp.StatusCode == http.StatusNotFound {
			kind = apierr.KindNotFound
		}
		e := &apierr.Error{Kind: kind, Message: http.StatusText(resp.StatusCode)}
		return e.WithStatus(resp.StatusCode)
	}
	return envelope.Error.WithStatus(resp.StatusCode)
}

func (a *API) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	var out []models.Aircraft
	return out, a.do(ctx, http.MethodGet, "/aeronaves", nil, &out)
}

func (a *API) ListParts(ctx context.Context) ([]models.Part, error) {
	var out []models.Part
	return out, a.do(ctx, http.MethodGet, "/pecas", nil, &out)
}

func (a *API) ListStages(ctx context.Context) ([]models.Stage, error) {
	var out []models.Stage
	return out, a.do(ctx, http.MethodGet, "/etapas", nil, &out)
}

func (a *API) ListTests(ctx context.Context) ([]models.Test, error) {
	var out []models.Test
	return out, a.do(ctx, http.MethodGet, "/testes", nil, &out)
}

func (a *API) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	return out, a.do(ctx, http.MethodGet, "/funcionarios", nil, &out)
}

func (a *API) CreateAircraft(ctx context.Context, in AircraftInput) (*models.Aircraft, error) {
	var out models.Aircraft
	if err := a.do(ctx, http.MethodPost, "/aeronaves", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) CreatePart(ctx context.Context, in PartInput) (*models.Part, error) {
	var out models.Part
	if err := a.do(ctx, http.MethodPost, "/pecas", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) CreateStage(ctx context.Context, in StageInput) (*models.Stage, error) {
	var out models.Stage
	if err := a.do(ctx, http.MethodPost, "/etapas", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) CreateTest(ctx context.Context, in TestInput) (*models.Test, error) {
	var out models.Test
	if err := a.do(ctx, http.MethodPost, "/testes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	var out models.Employee
	if err := a.do(ctx, http.MethodPost, "/funcionarios", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Associate posts body to /associacoes/<path>.
func (a *API) Associate(ctx context.Context, path string, body map[string]interface{}) error {
	return a.do(ctx, http.MethodPost, "/associacoes/"+path, body, nil)
}

// UpdateStageStatus sends the display label, the form the endpoint expects.
func (a *API) UpdateStageStatus(ctx context.Context, stageID uint, status models.StageStatus) (*models.Stage, error) {
	var out models.Stage
	path := fmt.Sprintf("/etapas/%d/status", stageID)
	if err := a.do(ctx, http.MethodPut, path, map[string]string{"status": status.Label()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks GET /status.
func (a *API) Ping(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/status", nil, nil)
}
