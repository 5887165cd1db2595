package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/client"
	"aerocode/internal/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label string
	input textinput.Model
}

type form struct {
	entity entity
	fields []formField
	focus  int
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func field(label, placeholder string) formField {
	return formField{label: label, input: newInput(placeholder)}
}

// newForm builds the create form of e with the first field focused.
func newForm(e entity) *form {
	f := &form{entity: e}

	switch e {
	case entityAircraft:
		f.fields = []formField{
			field("Código", "B737"),
			field("Modelo", "737-800"),
			field("Tipo", "Comercial | Militar"),
			field("Capacidade", "189"),
			field("Alcance (km)", "5400"),
		}
	case entityParts:
		f.fields = []formField{
			field("Nome", "Motor CFM56"),
			field("Tipo", "Nacional | Importada"),
			field("Fornecedor", "CFM International"),
		}
	case entityStages:
		f.fields = []formField{
			field("Nome", "Montagem"),
			field("Data", "AAAA-MM-DD"),
			field("Status", "vazio = Pendente"),
		}
	case entityTests:
		f.fields = []formField{
			field("Tipo", "Eletrico | Hidraulico | Aerodinamico"),
			field("Resultado", "Aprovado | Reprovado"),
		}
	case entityEmployees:
		password := field("Senha", "")
		password.input.EchoMode = textinput.EchoPassword
		f.fields = []formField{
			field("ID", "F-100"),
			field("Nome", ""),
			field("Telefone", ""),
			field("Endereço", ""),
			field("Usuário", ""),
			password,
			field("Nível", "1 - Admin | 2 - Engenheiro | 3 - Operador"),
		}
	}

	f.fields[0].input.Focus()
	return f
}

func (f *form) move(step int) {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + step + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) onLast() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// submission turns the form into a store call. Only what the screen can
// check by itself (numbers) is checked here; the rest is up to the API.
func (f *form) submission(store *client.Store) (string, func(context.Context) error, error) {
	switch f.entity {
	case entityAircraft:
		capacity, err := atoi("Capacidade", f.value(3))
		if err != nil {
			return "", nil, err
		}
		rng, err := atoi("Alcance", f.value(4))
		if err != nil {
			return "", nil, err
		}
		in := client.AircraftInput{
			Code:     f.value(0),
			Model:    f.value(1),
			Type:     models.AircraftType(f.value(2)),
			Capacity: capacity,
			Range:    rng,
		}
		return "Aeronave cadastrada: " + in.Code, func(ctx context.Context) error {
			return store.CreateAircraft(ctx, in)
		}, nil

	case entityParts:
		in := client.PartInput{
			Name:     f.value(0),
			Type:     models.PartType(f.value(1)),
			Supplier: f.value(2),
		}
		return "Peça cadastrada: " + in.Name, func(ctx context.Context) error {
			return store.CreatePart(ctx, in)
		}, nil

	case entityStages:
		in := client.StageInput{Name: f.value(0), Date: f.value(1), Status: f.value(2)}
		return "Etapa cadastrada: " + in.Name, func(ctx context.Context) error {
			return store.CreateStage(ctx, in)
		}, nil

	case entityTests:
		in := client.TestInput{
			Type:   models.TestType(f.value(0)),
			Result: models.TestResult(f.value(1)),
		}
		return "Teste cadastrado", func(ctx context.Context) error {
			return store.CreateTest(ctx, in)
		}, nil

	case entityEmployees:
		in := client.EmployeeInput{
			ID:       f.value(0),
			Name:     f.value(1),
			Phone:    f.value(2),
			Address:  f.value(3),
			Username: f.value(4),
			Password: f.fields[5].input.Value(),
			Level:    models.ParseAccessLevel(f.value(6)),
		}
		return "Funcionário cadastrado: " + in.Name, func(ctx context.Context) error {
			return store.CreateEmployee(ctx, in)
		}, nil
	}
	return "", nil, apierr.Validation("Formulário desconhecido")
}

func atoi(label, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.Validation(fmt.Sprintf("%s deve ser um número", label))
	}
	return n, nil
}
