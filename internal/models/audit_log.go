package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EmployeeID string `gorm:"size:64" json:"funcionarioId,omitempty"` // empty when nobody is logged in

	Entity   string `gorm:"size:50;not null" json:"entidade"` // "aeronave", "etapa", ...
	EntityID string `gorm:"size:64" json:"entidadeId"`
	Action   string `gorm:"size:50;not null" json:"acao"` // "create", "status_change", "associate" ...
	Details  string `gorm:"type:text" json:"detalhes"`
}

func (AuditLog) TableName() string { return "auditoria" }
