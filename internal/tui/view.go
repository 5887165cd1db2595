package tui

import (
	"errors"
	"fmt"
	"strings"

	"aerocode/internal/apierr"
	"aerocode/internal/client"
	"aerocode/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func (a *App) View() string {
	var content, help string

	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
		help = "enter abrir · r recarregar · q sair"
	case stateList:
		content = a.renderList()
		help = "n novo · ↑/↓ navegar · r recarregar · esc voltar"
		if a.entity == entityEmployees {
			help = "n novo · d remover da lista · ↑/↓ navegar · r recarregar · esc voltar"
		}
	case stateForm:
		content = a.renderForm()
		help = "tab próximo campo · enter salvar no último campo · esc cancelar"
	case stateAssociate:
		content = a.renderAssociate()
		help = "tab trocar campo · ←/→ tipo · enter associar · esc voltar"
	case stateProduction:
		content = a.renderProduction()
		help = "enter selecionar · esc voltar"
		if a.prod.aircraftID != 0 {
			help = "s iniciar · f finalizar · ↑/↓ navegar · esc aeronaves"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		content,
		"",
		a.renderStatusLine(),
		mutedStyle.Render(help),
	)
}

func (a *App) renderStatusLine() string {
	if a.err != nil {
		return errorStyle.Render(describeError(a.err))
	}
	if a.statusMsg != "" {
		return okStyle.Render(a.statusMsg)
	}
	return ""
}

// describeError names the likely cause from the error kind.
func describeError(err error) string {
	var e *apierr.Error
	if !errors.As(err, &e) {
		return "Não foi possível contatar o servidor: " + err.Error()
	}
	switch e.Kind {
	case apierr.KindConflict:
		return "Registro duplicado: " + e.Message
	case apierr.KindValidation:
		return "Dados inválidos: " + e.Message
	case apierr.KindNotFound:
		return "Não encontrado: " + e.Message
	}
	return "Erro no servidor: " + e.Message
}

// renderTable lays rows out in padded columns and marks the selected row.
// selected < 0 marks nothing.
func renderTable(headers []string, rows [][]string, selected int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.Join(parts, "  ")
	}

	out := []string{"  " + headerStyle.Render(line(headers))}
	if len(rows) == 0 {
		out = append(out, mutedStyle.Render("  (nenhum registro)"))
	}
	for i, r := range rows {
		if i == selected {
			out = append(out, selectedStyle.Render("› "+line(r)))
			continue
		}
		out = append(out, "  "+line(r))
	}
	return strings.Join(out, "\n")
}

func (a *App) renderList() string {
	headers, rows := entityTable(a.entity, a.store.Snapshot())
	return titleStyle.Render(a.entity.title()) + "\n" + renderTable(headers, rows, a.cursor)
}

func entityTable(e entity, snap client.Snapshot) ([]string, [][]string) {
	var rows [][]string

	switch e {
	case entityAircraft:
		for _, x := range snap.Aircraft {
			rows = append(rows, []string{
				fmt.Sprint(x.ID), x.Code, x.Model, string(x.Type),
				fmt.Sprint(x.Capacity), fmt.Sprintf("%d km", x.Range),
			})
		}
		return []string{"ID", "Código", "Modelo", "Tipo", "Capacidade", "Alcance"}, rows
	case entityParts:
		for _, x := range snap.Parts {
			rows = append(rows, []string{fmt.Sprint(x.ID), x.Name, string(x.Type), x.Supplier})
		}
		return []string{"ID", "Nome", "Tipo", "Fornecedor"}, rows
	case entityStages:
		for _, x := range snap.Stages {
			rows = append(rows, []string{
				fmt.Sprint(x.ID), x.Name, x.Date, x.Status.Label(), employeeNames(x.Employees),
			})
		}
		return []string{"ID", "Nome", "Data", "Status", "Funcionários"}, rows
	case entityTests:
		for _, x := range snap.Tests {
			rows = append(rows, []string{fmt.Sprint(x.ID), x.Type.Label(), string(x.Result)})
		}
		return []string{"ID", "Tipo", "Resultado"}, rows
	case entityEmployees:
		for _, x := range snap.Employees {
			rows = append(rows, []string{x.ID, x.Name, x.Username, string(x.Level), x.Phone})
		}
		return []string{"ID", "Nome", "Usuário", "Nível", "Telefone"}, rows
	}
	return nil, nil
}

func employeeNames(emps []models.Employee) string {
	if len(emps) == 0 {
		return "-"
	}
	names := make([]string, len(emps))
	for i, e := range emps {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}

func (a *App) renderForm() string {
	if a.form == nil {
		return ""
	}
	lines := []string{titleStyle.Render("Nova entrada · " + a.form.entity.title())}
	for i, f := range a.form.fields {
		label := fmt.Sprintf("%-14s", f.label)
		if i == a.form.focus {
			label = selectedStyle.Render(label)
		}
		lines = append(lines, label+" "+f.input.View())
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderAssociate() string {
	v := a.assoc
	if v == nil {
		return ""
	}
	snap := a.store.Snapshot()

	kinds := make([]string, len(client.AssociationKinds))
	for i, k := range client.AssociationKinds {
		kinds[i] = k.Label()
		if i == v.kindIndex {
			kinds[i] = selectedStyle.Render("[" + k.Label() + "]")
		}
	}
	kindLine := strings.Join(kinds, "  ")
	if v.focus == assocFocusKind {
		kindLine = "› " + kindLine
	} else {
		kindLine = "  " + kindLine
	}

	rows := [][]string{}
	for _, l := range v.links(snap) {
		rows = append(rows, []string{l.Source, fmt.Sprint(l.Target)})
	}

	return strings.Join([]string{
		titleStyle.Render("Associações"),
		kindLine,
		"",
		"  Item    " + v.source.View(),
		"  Destino " + v.target.View(),
		"",
		boxStyle.Render(renderTable([]string{"Item", "Destino"}, rows, -1)),
	}, "\n")
}

func (a *App) renderProduction() string {
	snap := a.store.Snapshot()
	p := a.prod

	if p.aircraftID == 0 {
		var rows [][]string
		for _, x := range snap.Aircraft {
			done := 0
			for _, s := range x.Stages {
				if s.Status == models.StageCompleted {
					done++
				}
			}
			rows = append(rows, []string{x.Code, x.Model, fmt.Sprintf("%d/%d", done, len(x.Stages))})
		}
		return titleStyle.Render("Produção") + "\n" +
			renderTable([]string{"Código", "Modelo", "Etapas concluídas"}, rows, p.aircraftCursor)
	}

	aircraft, ok := p.aircraft(snap)
	if !ok {
		return mutedStyle.Render("Aeronave não encontrada")
	}

	var stageRows [][]string
	for _, s := range aircraft.Stages {
		stageRows = append(stageRows, []string{s.Name, s.Date, s.Status.Label(), actionHint(s.Status)})
	}
	var partRows [][]string
	for _, x := range aircraft.Parts {
		partRows = append(partRows, []string{x.Name, string(x.Type), x.Supplier})
	}
	var testRows [][]string
	for _, x := range aircraft.Tests {
		testRows = append(testRows, []string{x.Type.Label(), string(x.Result)})
	}

	return strings.Join([]string{
		titleStyle.Render(fmt.Sprintf("Produção · %s (%s)", aircraft.Code, aircraft.Model)),
		boxStyle.Render(renderTable([]string{"Etapa", "Data", "Status", "Ação"}, stageRows, p.stageCursor)),
		boxStyle.Render(renderTable([]string{"Peça", "Tipo", "Fornecedor"}, partRows, -1)),
		boxStyle.Render(renderTable([]string{"Teste", "Resultado"}, testRows, -1)),
	}, "\n")
}
