package tui

import (
	"strings"

	"aerocode/internal/client"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	assocFocusKind = iota
	assocFocusSource
	assocFocusTarget
)

type assocView struct {
	kindIndex int
	source    textinput.Model
	target    textinput.Model
	focus     int
}

func newAssocView() *assocView {
	v := &assocView{
		source: newInput("ID do item"),
		target: newInput("ID do destino"),
	}
	v.applyPlaceholders()
	return v
}

func (v *assocView) kind() client.AssociationKind {
	return client.AssociationKinds[v.kindIndex]
}

func (v *assocView) cycleKind(step int) {
	n := len(client.AssociationKinds)
	v.kindIndex = (v.kindIndex + step + n) % n
	v.applyPlaceholders()
}

func (v *assocView) applyPlaceholders() {
	if v.kind() == client.AssocEmployeeStage {
		v.source.Placeholder = "ID do funcionário"
		v.target.Placeholder = "ID da etapa"
		return
	}
	v.source.Placeholder = "ID " + strings.ToLower(strings.Split(v.kind().Label(), " ")[0])
	v.target.Placeholder = "ID da aeronave"
}

func (v *assocView) moveFocus(step int) {
	v.focus = (v.focus + step + 3) % 3
	v.source.Blur()
	v.target.Blur()
	switch v.focus {
	case assocFocusSource:
		v.source.Focus()
	case assocFocusTarget:
		v.target.Focus()
	}
}

func (v *assocView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case assocFocusSource:
		v.source, cmd = v.source.Update(msg)
	case assocFocusTarget:
		v.target, cmd = v.target.Update(msg)
	}
	return cmd
}

func (v *assocView) values() (string, string) {
	return v.source.Value(), v.target.Value()
}

func (v *assocView) clearInputs() {
	v.source.SetValue("")
	v.target.SetValue("")
}

// links returns the existing pairs of the selected kind.
func (v *assocView) links(snap client.Snapshot) []client.Link {
	switch v.kind() {
	case client.AssocPartAircraft:
		return snap.PartAircraft
	case client.AssocStageAircraft:
		return snap.StageAircraft
	case client.AssocTestAircraft:
		return snap.TestAircraft
	case client.AssocEmployeeStage:
		return snap.EmployeeStage
	}
	return nil
}
