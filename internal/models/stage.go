package models

import (
	"time"

	"gorm.io/gorm"
)

// StageStatus is the stored code of a production stage status.
type StageStatus string

const (
	StagePending    StageStatus = "Pendente"
	StageInProgress StageStatus = "Em_Andamento"
	StageCompleted  StageStatus = "Concluida"
)

// display labels shown to operators
const (
	LabelPending    = "Pendente"
	LabelInProgress = "Em Andamento"
	LabelCompleted  = "Concluída"
)

// ParseStageStatus encodes a display label (with or without the accent) into
// the stored code. Unknown input is returned unchanged.
func ParseStageStatus(label string) StageStatus {
	switch label {
	case LabelPending:
		return StagePending
	case LabelInProgress, string(StageInProgress):
		return StageInProgress
	case LabelCompleted, string(StageCompleted):
		return StageCompleted
	}
	return StageStatus(label)
}

// Label decodes the stored code back to the display label.
func (s StageStatus) Label() string {
	switch s {
	case StagePending:
		return LabelPending
	case StageInProgress:
		return LabelInProgress
	case StageCompleted:
		return LabelCompleted
	}
	return string(s)
}

func (s StageStatus) Valid() bool {
	switch s {
	case StagePending, StageInProgress, StageCompleted:
		return true
	}
	return false
}

// Next returns the only forward transition allowed from s.
// Completed (and anything unknown) has none.
func (s StageStatus) Next() (StageStatus, bool) {
	switch s {
	case StagePending:
		return StageInProgress, true
	case StageInProgress:
		return StageCompleted, true
	}
	return "", false
}

type Stage struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null" json:"nome"`
	Date        string      `gorm:"size:10;not null" json:"data"` // YYYY-MM-DD
	Status      StageStatus `gorm:"type:varchar(50);not null" json:"status"`
	StatusLabel string      `gorm:"-" json:"statusLabel"`

	Employees []Employee `gorm:"many2many:etapa_funcionarios;" json:"funcionarios"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Stage) TableName() string { return "etapas" }

func (s *Stage) AfterFind(tx *gorm.DB) error {
	s.StatusLabel = s.Status.Label()
	return nil
}

func (s *Stage) AfterSave(tx *gorm.DB) error {
	s.StatusLabel = s.Status.Label()
	return nil
}
