package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"aerocode/internal/apierr"
	"aerocode/internal/models"

	"golang.org/x/sync/errgroup"
)

// Link is one association row: Source is the part, stage, test or employee
// id, Target the aircraft or stage it belongs to.
type Link struct {
	Source string
	Target uint
}

// Snapshot is everything the screens show, as of the last FetchAll.
type Snapshot struct {
	Aircraft  []models.Aircraft
	Parts     []models.Part
	Stages    []models.Stage
	Tests     []models.Test
	Employees []models.Employee

	PartAircraft  []Link
	StageAircraft []Link
	TestAircraft  []Link
	EmployeeStage []Link
}

type AssociationKind string

const (
	AssocPartAircraft  AssociationKind = "peca-aeronave"
	AssocStageAircraft AssociationKind = "etapa-aeronave"
	AssocTestAircraft  AssociationKind = "teste-aeronave"
	AssocEmployeeStage AssociationKind = "funcionario-etapa"
)

// AssociationKinds lists the kinds in menu order.
var AssociationKinds = []AssociationKind{
	AssocPartAircraft,
	AssocStageAircraft,
	AssocTestAircraft,
	AssocEmployeeStage,
}

type associationRoute struct {
	path          string
	sourceField   string
	targetField   string
	numericSource bool
}

var associationRoutes = map[AssociationKind]associationRoute{
	AssocPartAircraft:  {path: "peca", sourceField: "pecaId", targetField: "aeronaveId", numericSource: true},
	AssocStageAircraft: {path: "etapa", sourceField: "etapaId", targetField: "aeronaveId", numericSource: true},
	AssocTestAircraft:  {path: "teste", sourceField: "testeId", targetField: "aeronaveId", numericSource: true},
	AssocEmployeeStage: {path: "funcionario", sourceField: "funcionarioId", targetField: "etapaId"},
}

// Label is the menu text of the kind.
func (k AssociationKind) Label() string {
	switch k {
	case AssocPartAircraft:
		return "Peça → Aeronave"
	case AssocStageAircraft:
		return "Etapa → Aeronave"
	case AssocTestAircraft:
		return "Teste → Aeronave"
	case AssocEmployeeStage:
		return "Funcionário → Etapa"
	}
	return string(k)
}

// Store keeps the latest snapshot. Every mutation goes to the API and is
// followed by a full reload; nothing is patched locally except HideEmployee.
type Store struct {
	api *API

	mu   sync.RWMutex
	snap Snapshot
}

func NewStore(api *API) *Store {
	return &Store{api: api}
}

// FetchAll loads the five collections in parallel and swaps the snapshot in
// one step. On error the previous snapshot is kept.
func (s *Store) FetchAll(ctx context.Context) error {
	var next Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		next.Aircraft, err = s.api.ListAircraft(ctx)
		return err
	})
	g.Go(func() (err error) {
		next.Parts, err = s.api.ListParts(ctx)
		return err
	})
	g.Go(func() (err error) {
		next.Stages, err = s.api.ListStages(ctx)
		return err
	})
	g.Go(func() (err error) {
		next.Tests, err = s.api.ListTests(ctx)
		return err
	})
	g.Go(func() (err error) {
		next.Employees, err = s.api.ListEmployees(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	deriveLinks(&next)

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
	return nil
}

func deriveLinks(snap *Snapshot) {
	for _, a := range snap.Aircraft {
		for _, p := range a.Parts {
			snap.PartAircraft = append(snap.PartAircraft, Link{Source: uintString(p.ID), Target: a.ID})
		}
		for _, st := range a.Stages {
			snap.StageAircraft = append(snap.StageAircraft, Link{Source: uintString(st.ID), Target: a.ID})
		}
		for _, t := range a.Tests {
			snap.TestAircraft = append(snap.TestAircraft, Link{Source: uintString(t.ID), Target: a.ID})
		}
	}
	for _, st := range snap.Stages {
		for _, e := range st.Employees {
			snap.EmployeeStage = append(snap.EmployeeStage, Link{Source: e.ID, Target: st.ID})
		}
	}
}

// Snapshot returns a copy of the current snapshot. The top-level slices are
// copied; nested relations are shared and must not be modified.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Aircraft:      append([]models.Aircraft(nil), s.snap.Aircraft...),
		Parts:         append([]models.Part(nil), s.snap.Parts...),
		Stages:        append([]models.Stage(nil), s.snap.Stages...),
		Tests:         append([]models.Test(nil), s.snap.Tests...),
		Employees:     append([]models.Employee(nil), s.snap.Employees...),
		PartAircraft:  append([]Link(nil), s.snap.PartAircraft...),
		StageAircraft: append([]Link(nil), s.snap.StageAircraft...),
		TestAircraft:  append([]Link(nil), s.snap.TestAircraft...),
		EmployeeStage: append([]Link(nil), s.snap.EmployeeStage...),
	}
}

// HideEmployee drops an employee from the local view only. The server keeps
// the row and the next FetchAll brings it back.
func (s *Store) HideEmployee(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snap.Employees[:0:0]
	for _, e := range s.snap.Employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.snap.Employees = kept
}

func (s *Store) CreateAircraft(ctx context.Context, in AircraftInput) error {
	if _, err := s.api.CreateAircraft(ctx, in); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

func (s *Store) CreatePart(ctx context.Context, in PartInput) error {
	if _, err := s.api.CreatePart(ctx, in); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

func (s *Store) CreateStage(ctx context.Context, in StageInput) error {
	if _, err := s.api.CreateStage(ctx, in); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

func (s *Store) CreateTest(ctx context.Context, in TestInput) error {
	if _, err := s.api.CreateTest(ctx, in); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

func (s *Store) CreateEmployee(ctx context.Context, in EmployeeInput) error {
	if _, err := s.api.CreateEmployee(ctx, in); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

// Associate links sourceID to targetID using the endpoint registered for
// kind. Ids are checked locally so typos never reach the server.
func (s *Store) Associate(ctx context.Context, kind AssociationKind, sourceID, targetID string) error {
	route, ok := associationRoutes[kind]
	if !ok {
		return apierr.Validation(fmt.Sprintf("Tipo de associação desconhecido: %s", kind))
	}

	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return apierr.Validation("Informe o item a associar")
	}
	target, err := parseID(targetID)
	if err != nil {
		return err
	}

	body := map[string]interface{}{route.targetField: target}
	if route.numericSource {
		source, err := parseID(sourceID)
		if err != nil {
			return err
		}
		body[route.sourceField] = source
	} else {
		body[route.sourceField] = sourceID
	}

	if err := s.api.Associate(ctx, route.path, body); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

func (s *Store) UpdateStageStatus(ctx context.Context, stageID uint, status models.StageStatus) error {
	if _, err := s.api.UpdateStageStatus(ctx, stageID, status); err != nil {
		return err
	}
	return s.FetchAll(ctx)
}

// AdvanceStage moves a stage to the next status of its lifecycle.
func (s *Store) AdvanceStage(ctx context.Context, stage models.Stage) error {
	next, ok := stage.Status.Next()
	if !ok {
		return apierr.Validation(fmt.Sprintf("Etapa %q não pode avançar de %s", stage.Name, stage.Status.Label()))
	}
	return s.UpdateStageStatus(ctx, stage.ID, next)
}

func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, apierr.Validation(fmt.Sprintf("ID inválido: %q", raw))
	}
	return uint(n), nil
}

func uintString(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
