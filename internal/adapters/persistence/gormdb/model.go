package gormdb

import (
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
)

// ExampleModel is the row stored in the example table.
type ExampleModel struct {
	// Seq keeps insertion order. The database assigns it on insert, so the
	// order holds across replicas and clock adjustments.
	Seq int64 `gorm:"column:created_seq;primaryKey;autoIncrement"`

	ID   string `gorm:"type:varchar(36);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(255);not null"`
	Age  int    `gorm:"not null"`
}

// TableName implements gorm's tabler.
func (ExampleModel) TableName() string {
	return "example"
}

// ExampleMapper converts between Example and ExampleModel.
type ExampleMapper struct{}

// ToModel implements ports.ModelMapper.
func (ExampleMapper) ToModel(e *example.Example) ExampleModel {
	return ExampleModel{
		ID:   e.ID().Value(),
		Name: e.Name(),
		Age:  e.Age(),
	}
}

// ToDomain implements ports.ModelMapper. Rows that no longer satisfy the
// example rules are rejected.
func (ExampleMapper) ToDomain(m ExampleModel) (*example.Example, error) {
	return example.Rehydrate(m.ID, m.Name, m.Age)
}
