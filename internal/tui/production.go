package tui

import (
	"context"
	"fmt"

	"aerocode/internal/client"
	"aerocode/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// productionView lists aircraft; once one is picked (aircraftID != 0) it
// shows that aircraft's stages, parts and tests.
type productionView struct {
	aircraftCursor int
	aircraftID     uint
	stageCursor    int
}

func (p *productionView) aircraft(snap client.Snapshot) (models.Aircraft, bool) {
	for _, a := range snap.Aircraft {
		if a.ID == p.aircraftID {
			return a, true
		}
	}
	return models.Aircraft{}, false
}

func (p *productionView) clamp(snap client.Snapshot) {
	if p.aircraftCursor >= len(snap.Aircraft) {
		p.aircraftCursor = max(0, len(snap.Aircraft)-1)
	}
	if p.aircraftID == 0 {
		return
	}
	a, ok := p.aircraft(snap)
	if !ok {
		p.aircraftID = 0
		p.stageCursor = 0
		return
	}
	if p.stageCursor >= len(a.Stages) {
		p.stageCursor = max(0, len(a.Stages)-1)
	}
}

// stageAction maps a key to the status it moves a stage to: "s" starts a
// pending stage, "f" finishes one in progress.
func stageAction(key string) (models.StageStatus, bool) {
	switch key {
	case "s":
		return models.StageInProgress, true
	case "f":
		return models.StageCompleted, true
	}
	return "", false
}

// actionHint is the key shown next to a stage, empty when none applies.
func actionHint(s models.StageStatus) string {
	next, ok := s.Next()
	if !ok {
		return ""
	}
	if next == models.StageInProgress {
		return "[s] iniciar"
	}
	return "[f] finalizar"
}

func (a *App) updateProduction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := a.store.Snapshot()
	p := &a.prod
	key := msg.String()

	if p.aircraftID == 0 {
		switch key {
		case "up", "k":
			if p.aircraftCursor > 0 {
				p.aircraftCursor--
			}
		case "down", "j":
			if p.aircraftCursor < len(snap.Aircraft)-1 {
				p.aircraftCursor++
			}
		case "enter":
			if p.aircraftCursor < len(snap.Aircraft) {
				p.aircraftID = snap.Aircraft[p.aircraftCursor].ID
				p.stageCursor = 0
			}
		case "r":
			return a, a.refresh()
		}
		return a, nil
	}

	aircraft, ok := p.aircraft(snap)
	if !ok {
		p.aircraftID = 0
		return a, nil
	}

	switch key {
	case "up", "k":
		if p.stageCursor > 0 {
			p.stageCursor--
		}
		return a, nil
	case "down", "j":
		if p.stageCursor < len(aircraft.Stages)-1 {
			p.stageCursor++
		}
		return a, nil
	case "r":
		return a, a.refresh()
	}

	target, ok := stageAction(key)
	if !ok || p.stageCursor >= len(aircraft.Stages) {
		return a, nil
	}
	stage := aircraft.Stages[p.stageCursor]

	// only the next status of the lifecycle is offered
	if next, ok := stage.Status.Next(); !ok || next != target {
		a.err = nil
		a.statusMsg = fmt.Sprintf("Etapa %q está %s: ação indisponível", stage.Name, stage.Status.Label())
		return a, nil
	}

	a.statusMsg = "Atualizando etapa..."
	done := fmt.Sprintf("Etapa %q: %s", stage.Name, target.Label())
	return a, a.mutate(done, func(ctx context.Context) error {
		return a.store.UpdateStageStatus(ctx, stage.ID, target)
	})
}
