package models

import "time"

type TestType string
type TestResult string

const (
	TestElectrical  TestType = "Eletrico"
	TestHydraulic   TestType = "Hidraulico"
	TestAerodynamic TestType = "Aerodinamico"

	ResultApproved TestResult = "Aprovado"
	ResultRejected TestResult = "Reprovado"
)

func (t TestType) Valid() bool {
	switch t {
	case TestElectrical, TestHydraulic, TestAerodynamic:
		return true
	}
	return false
}

// Label returns the accented name used on screens.
func (t TestType) Label() string {
	switch t {
	case TestElectrical:
		return "Elétrico"
	case TestHydraulic:
		return "Hidráulico"
	case TestAerodynamic:
		return "Aerodinâmico"
	}
	return string(t)
}

func (r TestResult) Valid() bool {
	return r == ResultApproved || r == ResultRejected
}

// Test is a quality test run against an aircraft.
type Test struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	Type   TestType   `gorm:"type:varchar(20);not null" json:"tipo"`
	Result TestResult `gorm:"type:varchar(20);not null" json:"resultado"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Test) TableName() string { return "testes" }
