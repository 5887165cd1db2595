package models

import "time"

type AircraftType string

const (
	AircraftCommercial AircraftType = "Comercial"
	AircraftMilitary   AircraftType = "Militar"
)

func (t AircraftType) Valid() bool {
	return t == AircraftCommercial || t == AircraftMilitary
}

type Aircraft struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Code     string       `gorm:"size:32;uniqueIndex;not null" json:"codigo"`
	Model    string       `gorm:"size:255;not null" json:"modelo"`
	Type     AircraftType `gorm:"type:varchar(20);not null" json:"tipo"`
	Capacity int          `json:"capacidade"`
	Range    int          `json:"alcance"` // km

	Parts  []Part  `gorm:"many2many:aeronave_pecas;" json:"pecas"`
	Stages []Stage `gorm:"many2many:aeronave_etapas;" json:"etapas"`
	Tests  []Test  `gorm:"many2many:aeronave_testes;" json:"testes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Aircraft) TableName() string { return "aeronaves" }
