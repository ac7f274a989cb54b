// Package mocks holds testify mocks for the ports and repositories.
//
// mockery cannot expand the generic repository alias, so this file is kept
// by hand in the same expecter layout as the generated mocks.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
)

// MockExampleRepository is a mock type for the ExampleRepository type
type MockExampleRepository struct {
	mock.Mock
}

type MockExampleRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockExampleRepository) EXPECT() *MockExampleRepository_Expecter {
	return &MockExampleRepository_Expecter{mock: &_m.Mock}
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockExampleRepository) Delete(ctx context.Context, id example.ID) error {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, example.ID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockExampleRepository_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockExampleRepository_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) Delete(ctx interface{}, id interface{}) *MockExampleRepository_Delete_Call {
	return &MockExampleRepository_Delete_Call{Call: _e.mock.On("Delete", ctx, id)}
}

func (_c *MockExampleRepository_Delete_Call) Run(run func(ctx context.Context, id example.ID)) *MockExampleRepository_Delete_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(example.ID))
	})
	return _c
}

func (_c *MockExampleRepository_Delete_Call) Return(_a0 error) *MockExampleRepository_Delete_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockExampleRepository_Delete_Call) RunAndReturn(run func(context.Context, example.ID) error) *MockExampleRepository_Delete_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteManyByIDs provides a mock function with given fields: ctx, ids
func (_m *MockExampleRepository) DeleteManyByIDs(ctx context.Context, ids []example.ID) error {
	ret := _m.Called(ctx, ids)

	if len(ret) == 0 {
		panic("no return value specified for DeleteManyByIDs")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []example.ID) error); ok {
		r0 = rf(ctx, ids)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockExampleRepository_DeleteManyByIDs_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteManyByIDs'
type MockExampleRepository_DeleteManyByIDs_Call struct {
	*mock.Call
}

// DeleteManyByIDs is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) DeleteManyByIDs(ctx interface{}, ids interface{}) *MockExampleRepository_DeleteManyByIDs_Call {
	return &MockExampleRepository_DeleteManyByIDs_Call{Call: _e.mock.On("DeleteManyByIDs", ctx, ids)}
}

func (_c *MockExampleRepository_DeleteManyByIDs_Call) Run(run func(ctx context.Context, ids []example.ID)) *MockExampleRepository_DeleteManyByIDs_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]example.ID))
	})
	return _c
}

func (_c *MockExampleRepository_DeleteManyByIDs_Call) Return(_a0 error) *MockExampleRepository_DeleteManyByIDs_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockExampleRepository_DeleteManyByIDs_Call) RunAndReturn(run func(context.Context, []example.ID) error) *MockExampleRepository_DeleteManyByIDs_Call {
	_c.Call.Return(run)
	return _c
}

// EntityName provides a mock function with given fields: 
func (_m *MockExampleRepository) EntityName() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for EntityName")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// MockExampleRepository_EntityName_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'EntityName'
type MockExampleRepository_EntityName_Call struct {
	*mock.Call
}

// EntityName is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) EntityName() *MockExampleRepository_EntityName_Call {
	return &MockExampleRepository_EntityName_Call{Call: _e.mock.On("EntityName")}
}

func (_c *MockExampleRepository_EntityName_Call) Run(run func()) *MockExampleRepository_EntityName_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockExampleRepository_EntityName_Call) Return(_a0 string) *MockExampleRepository_EntityName_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockExampleRepository_EntityName_Call) RunAndReturn(run func() string) *MockExampleRepository_EntityName_Call {
	_c.Call.Return(run)
	return _c
}

// ExistsByID provides a mock function with given fields: ctx, ids
func (_m *MockExampleRepository) ExistsByID(ctx context.Context, ids []example.ID) (domain.ExistsResult[example.ID], error) {
	ret := _m.Called(ctx, ids)

	if len(ret) == 0 {
		panic("no return value specified for ExistsByID")
	}

	var r0 domain.ExistsResult[example.ID]
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []example.ID) (domain.ExistsResult[example.ID], error)); ok {
		return rf(ctx, ids)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []example.ID) domain.ExistsResult[example.ID]); ok {
		r0 = rf(ctx, ids)
	} else {
		r0 = ret.Get(0).(domain.ExistsResult[example.ID])
	}

	if rf, ok := ret.Get(1).(func(context.Context, []example.ID) error); ok {
		r1 = rf(ctx, ids)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockExampleRepository_ExistsByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ExistsByID'
type MockExampleRepository_ExistsByID_Call struct {
	*mock.Call
}

// ExistsByID is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) ExistsByID(ctx interface{}, ids interface{}) *MockExampleRepository_ExistsByID_Call {
	return &MockExampleRepository_ExistsByID_Call{Call: _e.mock.On("ExistsByID", ctx, ids)}
}

func (_c *MockExampleRepository_ExistsByID_Call) Run(run func(ctx context.Context, ids []example.ID)) *MockExampleRepository_ExistsByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]example.ID))
	})
	return _c
}

func (_c *MockExampleRepository_ExistsByID_Call) Return(_a0 domain.ExistsResult[example.ID], _a1 error) *MockExampleRepository_ExistsByID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockExampleRepository_ExistsByID_Call) RunAndReturn(run func(context.Context, []example.ID) (domain.ExistsResult[example.ID], error)) *MockExampleRepository_ExistsByID_Call {
	_c.Call.Return(run)
	return _c
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *MockExampleRepository) FindByID(ctx context.Context, id example.ID) (*example.Example, bool, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindByID")
	}

	var r0 *example.Example
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, example.ID) (*example.Example, bool, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, example.ID) *example.Example); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*example.Example)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, example.ID) bool); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, example.ID) error); ok {
		r2 = rf(ctx, id)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// MockExampleRepository_FindByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByID'
type MockExampleRepository_FindByID_Call struct {
	*mock.Call
}

// FindByID is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) FindByID(ctx interface{}, id interface{}) *MockExampleRepository_FindByID_Call {
	return &MockExampleRepository_FindByID_Call{Call: _e.mock.On("FindByID", ctx, id)}
}

func (_c *MockExampleRepository_FindByID_Call) Run(run func(ctx context.Context, id example.ID)) *MockExampleRepository_FindByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(example.ID))
	})
	return _c
}

func (_c *MockExampleRepository_FindByID_Call) Return(_a0 *example.Example, _a1 bool, _a2 error) *MockExampleRepository_FindByID_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *MockExampleRepository_FindByID_Call) RunAndReturn(run func(context.Context, example.ID) (*example.Example, bool, error)) *MockExampleRepository_FindByID_Call {
	_c.Call.Return(run)
	return _c
}

// FindMany provides a mock function with given fields: ctx
func (_m *MockExampleRepository) FindMany(ctx context.Context) ([]*example.Example, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for FindMany")
	}

	var r0 []*example.Example
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]*example.Example, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []*example.Example); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*example.Example)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockExampleRepository_FindMany_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindMany'
type MockExampleRepository_FindMany_Call struct {
	*mock.Call
}

// FindMany is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) FindMany(ctx interface{}) *MockExampleRepository_FindMany_Call {
	return &MockExampleRepository_FindMany_Call{Call: _e.mock.On("FindMany", ctx)}
}

func (_c *MockExampleRepository_FindMany_Call) Run(run func(ctx context.Context)) *MockExampleRepository_FindMany_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockExampleRepository_FindMany_Call) Return(_a0 []*example.Example, _a1 error) *MockExampleRepository_FindMany_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockExampleRepository_FindMany_Call) RunAndReturn(run func(context.Context) ([]*example.Example, error)) *MockExampleRepository_FindMany_Call {
	_c.Call.Return(run)
	return _c
}

// FindManyByIDs provides a mock function with given fields: ctx, ids
func (_m *MockExampleRepository) FindManyByIDs(ctx context.Context, ids []example.ID) ([]*example.Example, error) {
	ret := _m.Called(ctx, ids)

	if len(ret) == 0 {
		panic("no return value specified for FindManyByIDs")
	}

	var r0 []*example.Example
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []example.ID) ([]*example.Example, error)); ok {
		return rf(ctx, ids)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []example.ID) []*example.Example); ok {
		r0 = rf(ctx, ids)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*example.Example)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, []example.ID) error); ok {
		r1 = rf(ctx, ids)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockExampleRepository_FindManyByIDs_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindManyByIDs'
type MockExampleRepository_FindManyByIDs_Call struct {
	*mock.Call
}

// FindManyByIDs is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) FindManyByIDs(ctx interface{}, ids interface{}) *MockExampleRepository_FindManyByIDs_Call {
	return &MockExampleRepository_FindManyByIDs_Call{Call: _e.mock.On("FindManyByIDs", ctx, ids)}
}

func (_c *MockExampleRepository_FindManyByIDs_Call) Run(run func(ctx context.Context, ids []example.ID)) *MockExampleRepository_FindManyByIDs_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]example.ID))
	})
	return _c
}

func (_c *MockExampleRepository_FindManyByIDs_Call) Return(_a0 []*example.Example, _a1 error) *MockExampleRepository_FindManyByIDs_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockExampleRepository_FindManyByIDs_Call) RunAndReturn(run func(context.Context, []example.ID) ([]*example.Example, error)) *MockExampleRepository_FindManyByIDs_Call {
	_c.Call.Return(run)
	return _c
}

// Save provides a mock function with given fields: ctx, aggregate
func (_m *MockExampleRepository) Save(ctx context.Context, aggregate *example.Example) error {
	ret := _m.Called(ctx, aggregate)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *example.Example) error); ok {
		r0 = rf(ctx, aggregate)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockExampleRepository_Save_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Save'
type MockExampleRepository_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) Save(ctx interface{}, aggregate interface{}) *MockExampleRepository_Save_Call {
	return &MockExampleRepository_Save_Call{Call: _e.mock.On("Save", ctx, aggregate)}
}

func (_c *MockExampleRepository_Save_Call) Run(run func(ctx context.Context, aggregate *example.Example)) *MockExampleRepository_Save_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*example.Example))
	})
	return _c
}

func (_c *MockExampleRepository_Save_Call) Return(_a0 error) *MockExampleRepository_Save_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockExampleRepository_Save_Call) RunAndReturn(run func(context.Context, *example.Example) error) *MockExampleRepository_Save_Call {
	_c.Call.Return(run)
	return _c
}

// SaveMany provides a mock function with given fields: ctx, aggregates
func (_m *MockExampleRepository) SaveMany(ctx context.Context, aggregates []*example.Example) error {
	ret := _m.Called(ctx, aggregates)

	if len(ret) == 0 {
		panic("no return value specified for SaveMany")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []*example.Example) error); ok {
		r0 = rf(ctx, aggregates)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockExampleRepository_SaveMany_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SaveMany'
type MockExampleRepository_SaveMany_Call struct {
	*mock.Call
}

// SaveMany is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) SaveMany(ctx interface{}, aggregates interface{}) *MockExampleRepository_SaveMany_Call {
	return &MockExampleRepository_SaveMany_Call{Call: _e.mock.On("SaveMany", ctx, aggregates)}
}

func (_c *MockExampleRepository_SaveMany_Call) Run(run func(ctx context.Context, aggregates []*example.Example)) *MockExampleRepository_SaveMany_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]*example.Example))
	})
	return _c
}

func (_c *MockExampleRepository_SaveMany_Call) Return(_a0 error) *MockExampleRepository_SaveMany_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockExampleRepository_SaveMany_Call) RunAndReturn(run func(context.Context, []*example.Example) error) *MockExampleRepository_SaveMany_Call {
	_c.Call.Return(run)
	return _c
}

// Update provides a mock function with given fields: ctx, aggregate
func (_m *MockExampleRepository) Update(ctx context.Context, aggregate *example.Example) error {
	ret := _m.Called(ctx, aggregate)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *example.Example) error); ok {
		r0 = rf(ctx, aggregate)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockExampleRepository_Update_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Update'
type MockExampleRepository_Update_Call struct {
	*mock.Call
}

// Update is a helper method to define mock.On call
func (_e *MockExampleRepository_Expecter) Update(ctx interface{}, aggregate interface{}) *MockExampleRepository_Update_Call {
	return &MockExampleRepository_Update_Call{Call: _e.mock.On("Update", ctx, aggregate)}
}

func (_c *MockExampleRepository_Update_Call) Run(run func(ctx context.Context, aggregate *example.Example)) *MockExampleRepository_Update_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*example.Example))
	})
	return _c
}

func (_c *MockExampleRepository_Update_Call) Return(_a0 error) *MockExampleRepository_Update_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockExampleRepository_Update_Call) RunAndReturn(run func(context.Context, *example.Example) error) *MockExampleRepository_Update_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockExampleRepository creates a new instance of MockExampleRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockExampleRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExampleRepository {
	m := &MockExampleRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
