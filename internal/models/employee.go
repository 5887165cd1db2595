package models

import (
	"strings"
	"time"
)

type AccessLevel string

const (
	LevelAdmin    AccessLevel = "Admin"
	LevelEngineer AccessLevel = "Engenheiro"
	LevelOperator AccessLevel = "Operador"
)

// ParseAccessLevel accepts both the stored value and the numbered labels
// used by the registration form ("1 - Admin", "2 - Engenheiro", "3 - Operador").
func ParseAccessLevel(s string) AccessLevel {
	s = strings.TrimSpace(s)
	switch s {
	case "1 - Admin":
		return LevelAdmin
	case "2 - Engenheiro":
		return LevelEngineer
	case "3 - Operador":
		return LevelOperator
	}
	return AccessLevel(s)
}

func (l AccessLevel) Valid() bool {
	switch l {
	case LevelAdmin, LevelEngineer, LevelOperator:
		return true
	}
	return false
}

// Employee ids are registration numbers assigned outside the system.
type Employee struct {
	ID           string      `gorm:"primaryKey;size:64" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"nome"`
	Phone        string      `gorm:"size:50" json:"telefone"`
	Address      string      `gorm:"size:255" json:"endereco"`
	Username     string      `gorm:"uniqueIndex;size:50;not null" json:"usuario"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Level        AccessLevel `gorm:"type:varchar(20);not null" json:"nivel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employee) TableName() string { return "funcionarios" }
