package dto

import (
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
)

// CreateExampleRequest is the body of POST /examples. Presence is checked
// here; the example rules are enforced by the domain.
type CreateExampleRequest struct {
	Name *string `json:"name" validate:"required"`
	Age  *int    `json:"age"  validate:"required"`
}

// ChangeExampleRequest is the body of PATCH /examples/:id.
type ChangeExampleRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

// IDsRequest carries a list of example identifiers.
type IDsRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// ExampleResponse is the representation of an example.
type ExampleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// ExamplesResponse lists examples without paging.
type ExamplesResponse struct {
	Items []ExampleResponse `json:"items"`
}

// ExistsResponse partitions the requested identifiers.
type ExistsResponse struct {
	Exists    []string `json:"exists"`
	NotExists []string `json:"notExists"`
}

// FromExample converts an aggregate.
func FromExample(e *example.Example) ExampleResponse {
	return ExampleResponse{ID: e.ID().Value(), Name: e.Name(), Age: e.Age()}
}

// FromExamples converts aggregates, never returning nil.
func FromExamples(items []*example.Example) []ExampleResponse {
	out := make([]ExampleResponse, 0, len(items))
	for _, e := range items {
		out = append(out, FromExample(e))
	}

	return out
}

// FromExistsResult converts a repository existence check.
func FromExistsResult(r domain.ExistsResult[example.ID]) ExistsResponse {
	return ExistsResponse{Exists: idValues(r.Exists), NotExists: idValues(r.NotExists)}
}

func idValues(ids []example.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Value())
	}

	return out
}
