package models

import "time"

type PartType string

const (
	PartDomestic PartType = "Nacional"
	PartImported PartType = "Importada"
)

func (t PartType) Valid() bool {
	return t == PartDomestic || t == PartImported
}

type Part struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `gorm:"size:255;not null" json:"nome"`
	Type     PartType `gorm:"type:varchar(20);not null" json:"tipo"`
	Supplier string   `gorm:"size:255" json:"fornecedor"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Part) TableName() string { return "pecas" }
