// Package tui is the terminal front end of aerocode. It renders the client
// snapshot and sends every change through client.Store, which reloads the
// snapshot once the server accepted it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"aerocode/internal/client"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// appState is the screen being shown
type appState int

const (
	stateMainMenu appState = iota
	stateList              // one entity table
	stateForm              // create form of the current entity
	stateAssociate         // association management
	stateProduction        // production console
)

type entity int

const (
	entityAircraft entity = iota
	entityParts
	entityStages
	entityTests
	entityEmployees
)

func (e entity) title() string {
	switch e {
	case entityAircraft:
		return "Aeronaves"
	case entityParts:
		return "Peças"
	case entityStages:
		return "Etapas"
	case entityTests:
		return "Testes"
	case entityEmployees:
		return "Funcionários"
	}
	return ""
}

type menuAction int

const (
	actionList menuAction = iota
	actionAssociate
	actionProduction
	actionQuit
)

type menuItem struct {
	title  string
	desc   string
	action menuAction
	entity entity
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// refreshedMsg arrives after a FetchAll started by the screens.
type refreshedMsg struct{ err error }

// mutationMsg arrives after a create, association or status change.
type mutationMsg struct {
	done string
	err  error
}

type App struct {
	ctx   context.Context
	store *client.Store

	state    appState
	mainMenu list.Model

	entity entity
	cursor int

	form  *form
	assoc *assocView
	prod  productionView

	statusMsg string
	err       error

	width  int
	height int
}

func NewApp(ctx context.Context, store *client.Store) *App {
	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "✈ AEROCODE"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	return &App{
		ctx:      ctx,
		store:    store,
		state:    stateMainMenu,
		mainMenu: mainMenu,
	}
}

func buildMainMenu() []list.Item {
	items := []list.Item{}
	for _, e := range []entity{entityAircraft, entityParts, entityStages, entityTests, entityEmployees} {
		items = append(items, menuItem{
			title:  e.title(),
			desc:   fmt.Sprintf("Listar e cadastrar %s", strings.ToLower(e.title())),
			action: actionList,
			entity: e,
		})
	}
	return append(items,
		menuItem{title: "Associações", desc: "Ligar peças, etapas e testes às aeronaves", action: actionAssociate},
		menuItem{title: "Produção", desc: "Iniciar e finalizar etapas por aeronave", action: actionProduction},
		menuItem{title: "Sair", desc: "Encerrar o aerocode", action: actionQuit},
	)
}

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: a.store.FetchAll(a.ctx)}
	}
}

// mutate runs fn off the event loop and reports back with a mutationMsg.
func (a *App) mutate(done string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{done: done, err: fn(a.ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-4), max(0, msg.Height-6))
		return a, nil

	case refreshedMsg:
		a.err = msg.err
		if msg.err == nil {
			a.statusMsg = "Dados atualizados"
		}
		a.clampCursors()
		return a, nil

	case mutationMsg:
		return a.handleMutation(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			return a.back()
		}
		switch a.state {
		case stateMainMenu:
			return a.updateMainMenu(msg)
		case stateList:
			return a.updateList(msg)
		case stateForm:
			return a.updateForm(msg)
		case stateAssociate:
			return a.updateAssociate(msg)
		case stateProduction:
			return a.updateProduction(msg)
		}
	}

	if a.state == stateMainMenu {
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.err = msg.err
		a.statusMsg = ""
		return a, nil
	}
	a.err = nil
	a.statusMsg = msg.done

	switch a.state {
	case stateForm:
		a.form = nil
		a.state = stateList
	case stateAssociate:
		if a.assoc != nil {
			a.assoc.clearInputs()
		}
	}
	a.clampCursors()
	return a, nil
}

// back walks one level up: form → list, stage view → aircraft list,
// everything else → main menu.
func (a *App) back() (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMainMenu:
		return a, nil
	case stateForm:
		a.form = nil
		a.state = stateList
	case stateProduction:
		if a.prod.aircraftID != 0 {
			a.prod.aircraftID = 0
			a.prod.stageCursor = 0
			break
		}
		a.state = stateMainMenu
	default:
		a.state = stateMainMenu
		a.assoc = nil
	}
	a.err = nil
	a.statusMsg = ""
	return a, nil
}

func (a *App) updateMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		a.statusMsg = "Atualizando..."
		return a, a.refresh()
	case "enter":
		return a.handleMainMenuSelection()
	}
	var cmd tea.Cmd
	a.mainMenu, cmd = a.mainMenu.Update(msg)
	return a, cmd
}

func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	a.err = nil
	a.statusMsg = ""

	switch item.action {
	case actionList:
		a.entity = item.entity
		a.cursor = 0
		a.state = stateList
	case actionAssociate:
		a.assoc = newAssocView()
		a.state = stateAssociate
	case actionProduction:
		a.prod = productionView{}
		a.state = stateProduction
	case actionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.entityRowCount()

	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < rows-1 {
			a.cursor++
		}
	case "n":
		a.form = newForm(a.entity)
		a.state = stateForm
		a.err = nil
		a.statusMsg = ""
	case "r":
		a.statusMsg = "Atualizando..."
		return a, a.refresh()
	case "d":
		if a.entity != entityEmployees {
			break
		}
		emps := a.store.Snapshot().Employees
		if a.cursor < len(emps) {
			hidden := emps[a.cursor]
			a.store.HideEmployee(hidden.ID)
			a.statusMsg = fmt.Sprintf("%s removido da lista (r recarrega)", hidden.Name)
			a.clampCursors()
		}
	}
	return a, nil
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.state = stateList
		return a, nil
	}

	switch msg.String() {
	case "tab", "down":
		a.form.move(1)
		return a, nil
	case "shift+tab", "up":
		a.form.move(-1)
		return a, nil
	case "enter":
		if !a.form.onLast() {
			a.form.move(1)
			return a, nil
		}
		done, run, err := a.form.submission(a.store)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.statusMsg = "Salvando..."
		return a, a.mutate(done, run)
	}
	return a, a.form.update(msg)
}

func (a *App) updateAssociate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.assoc == nil {
		a.assoc = newAssocView()
	}
	v := a.assoc

	switch msg.String() {
	case "tab":
		v.moveFocus(1)
		return a, nil
	case "shift+tab":
		v.moveFocus(-1)
		return a, nil
	case "left", "right":
		if v.focus == assocFocusKind {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			v.cycleKind(step)
			return a, nil
		}
	case "enter":
		kind := v.kind()
		source, target := v.values()
		a.statusMsg = "Associando..."
		return a, a.mutate("Associação criada: "+kind.Label(), func(ctx context.Context) error {
			return a.store.Associate(ctx, kind, source, target)
		})
	}
	return a, v.update(msg)
}

func (a *App) entityRowCount() int {
	snap := a.store.Snapshot()
	switch a.entity {
	case entityAircraft:
		return len(snap.Aircraft)
	case entityParts:
		return len(snap.Parts)
	case entityStages:
		return len(snap.Stages)
	case entityTests:
		return len(snap.Tests)
	case entityEmployees:
		return len(snap.Employees)
	}
	return 0
}

// clampCursors keeps selections inside the data after a reload.
func (a *App) clampCursors() {
	if n := a.entityRowCount(); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
	a.prod.clamp(a.store.Snapshot())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
