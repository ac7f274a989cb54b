package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/mocks"
)

const (
	storedID  = "8f0c6a1e-2f4b-4c55-9a61-7d3e2b1c0a94"
	unknownID = "1b4e28ba-2fa1-41d2-883f-0016d3cca427"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*ExampleService, *mocks.MockExampleRepository, *mocks.MockEventPublisher, *Metrics) {
	t.Helper()

	repo := mocks.NewMockExampleRepository(t)
	pub := mocks.NewMockEventPublisher(t)
	metrics := NewMetrics(prometheus.NewRegistry())

	svc := NewExampleService(ExampleServiceConfig{
		Repository: repo,
		Publisher:  pub,
		Metrics:    metrics,
		Logger:     discardLogger(),
	})

	return svc, repo, pub, metrics
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewExampleService(t *testing.T) {
	t.Run("panics without repository", func(t *testing.T) {
		assert.Panics(t, func() {
			NewExampleService(ExampleServiceConfig{})
		})
	})

	t.Run("defaults publisher and logger", func(t *testing.T) {
		repo := mocks.NewMockExampleRepository(t)
		repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

		svc := NewExampleService(ExampleServiceConfig{Repository: repo})
		require.NotNil(t, svc)

		created, err := svc.CreateExample(context.Background(), CreateExampleInput{Name: "Ada", Age: 36})
		require.NoError(t, err)
		assert.Empty(t, created.Events())
	})
}

func TestExampleService_CreateExample(t *testing.T) {
	tests := []struct {
		name       string
		input      CreateExampleInput
		setupMocks func(*mocks.MockExampleRepository, *mocks.MockEventPublisher)
		errCheck   func(error) bool
		errStep    ExecutionStep
		errCount   int
	}{
		{
			name:  "success",
			input: CreateExampleInput{Name: "Ada", Age: 36},
			setupMocks: func(repo *mocks.MockExampleRepository, pub *mocks.MockEventPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *example.Example) bool {
					return e.Name() == "Ada" && e.Age() == 36
				})).Return(nil)
				pub.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e domain.DomainEvent) bool {
					return e.EventName() == example.EventCreated
				})).Return(nil)
			},
		},
		{
			name:       "invalid name and age",
			input:      CreateExampleInput{Name: "  ", Age: 10},
			setupMocks: func(*mocks.MockExampleRepository, *mocks.MockEventPublisher) {},
			errCheck:   domain.IsValidation,
			errStep:    StepVerify,
			errCount:   2,
		},
		{
			name:       "negative age",
			input:      CreateExampleInput{Name: "Ada", Age: -1},
			setupMocks: func(*mocks.MockExampleRepository, *mocks.MockEventPublisher) {},
			errCheck:   domain.IsValidation,
			errStep:    StepVerify,
			errCount:   1,
		},
		{
			name:  "duplicate identifier",
			input: CreateExampleInput{Name: "Ada", Age: 36},
			setupMocks: func(repo *mocks.MockExampleRepository, _ *mocks.MockEventPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).
					Return(domain.NewConflictError("Example", "identifier already stored"))
			},
			errCheck: domain.IsConflict,
			errStep:  StepArchive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub, _ := newTestService(t)
			tt.setupMocks(repo, pub)

			created, err := svc.CreateExample(context.Background(), tt.input)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.Nil(t, created)
				assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)

				step, ok := GetExecutionStep(err)
				require.True(t, ok)
				assert.Equal(t, tt.errStep, step)

				if tt.errCount > 0 {
					var verr *domain.EntityValidationError
					require.ErrorAs(t, err, &verr)
					assert.Equal(t, tt.errCount, verr.CountErrors())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Name, created.Name())
			assert.Equal(t, tt.input.Age, created.Age())
			assert.Empty(t, created.Events(), "events are cleared once published")
		})
	}
}

func TestExampleService_CreateExample_Metrics(t *testing.T) {
	svc, repo, pub, metrics := newTestService(t)

	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	pub.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateExample(context.Background(), CreateExampleInput{Name: "Ada", Age: 36})
	require.NoError(t, err)

	_, err = svc.CreateExample(context.Background(), CreateExampleInput{Name: "", Age: 36})
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.created), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.validationFailures.WithLabelValues(OpCreateExample)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.published.WithLabelValues(example.EventCreated)), 0)
}

func TestExampleService_CreateExample_PublishFailureIsNotFatal(t *testing.T) {
	svc, repo, pub, metrics := newTestService(t)

	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	pub.EXPECT().Publish(mock.Anything, mock.Anything).Return(domain.NewUnavailableError("kafka", "down"))

	created, err := svc.CreateExample(context.Background(), CreateExampleInput{Name: "Ada", Age: 36})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Empty(t, created.Events())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.publishFailures), 0)
}

func TestExampleService_CreateExample_PublishOutlivesRequest(t *testing.T) {
	svc, repo, pub, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())

	repo.EXPECT().Save(mock.Anything, mock.Anything).
		Run(func(context.Context, *example.Example) { cancel() }).
		Return(nil)
	pub.EXPECT().Publish(mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	_, err := svc.CreateExample(ctx, CreateExampleInput{Name: "Ada", Age: 36})
	require.NoError(t, err)
}

func TestExampleService_GetExample(t *testing.T) {
	stored := example.New(example.MustID(storedID), "Ada", 36)

	tests := []struct {
		name       string
		id         string
		setupMocks func(*mocks.MockExampleRepository)
		want       *example.Example
		errCheck   func(error) bool
	}{
		{
			name: "found",
			id:   storedID,
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().FindByID(mock.Anything, example.MustID(storedID)).Return(stored, true, nil)
			},
			want: stored,
		},
		{
			name: "not found",
			id:   unknownID,
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().FindByID(mock.Anything, example.MustID(unknownID)).Return(nil, false, nil)
				repo.EXPECT().EntityName().Return("Example")
			},
			errCheck: domain.IsNotFound,
		},
		{
			name:       "malformed id",
			id:         "not-a-uuid",
			setupMocks: func(*mocks.MockExampleRepository) {},
			errCheck:   domain.IsInvalidIdentifier,
		},
		{
			name: "store failure",
			id:   storedID,
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, false, errors.New("connection reset"))
			},
			errCheck: func(err error) bool { return err != nil && !domain.IsNotFound(err) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService(t)
			tt.setupMocks(repo)

			got, err := svc.GetExample(context.Background(), tt.id)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)

				return
			}

			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestExampleService_GetExample_NotFoundMessage(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, false, nil)
	repo.EXPECT().EntityName().Return("Example")

	_, err := svc.GetExample(context.Background(), unknownID)

	require.Error(t, err)
	assert.Equal(t, "Example with id(s) "+unknownID+" not found", err.Error())
}

func TestExampleService_ListExamples(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	items := []*example.Example{
		example.New(example.MustID(storedID), "Ada", 36),
		example.New(example.MustID(unknownID), "Grace", 45),
	}
	repo.EXPECT().FindMany(mock.Anything).Return(items, nil)

	got, err := svc.ListExamples(context.Background())

	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestExampleService_GetExamples(t *testing.T) {
	t.Run("passes parsed ids", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		stored := example.New(example.MustID(storedID), "Ada", 36)
		repo.EXPECT().
			FindManyByIDs(mock.Anything, []example.ID{example.MustID(storedID), example.MustID(unknownID)}).
			Return([]*example.Example{stored}, nil)

		got, err := svc.GetExamples(context.Background(), []string{storedID, unknownID})

		require.NoError(t, err)
		assert.Equal(t, []*example.Example{stored}, got)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.GetExamples(context.Background(), []string{storedID, "nope"})

		assert.True(t, domain.IsInvalidIdentifier(err))
	})
}

func TestExampleService_ChangeExample(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		input      ChangeExampleInput
		setupMocks func(*mocks.MockExampleRepository, *mocks.MockEventPublisher)
		wantName   string
		wantAge    int
		errCheck   func(error) bool
	}{
		{
			name:  "rename",
			id:    storedID,
			input: ChangeExampleInput{Name: ptr("Grace")},
			setupMocks: func(repo *mocks.MockExampleRepository, pub *mocks.MockEventPublisher) {
				repo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(e *example.Example) bool {
					return e.Name() == "Grace" && e.Age() == 36
				})).Return(nil)
				pub.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)
			},
			wantName: "Grace",
			wantAge:  36,
		},
		{
			name:  "rename and change age",
			id:    storedID,
			input: ChangeExampleInput{Name: ptr("Grace"), Age: ptr(45)},
			setupMocks: func(repo *mocks.MockExampleRepository, pub *mocks.MockEventPublisher) {
				repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil)
				pub.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			wantName: "Grace",
			wantAge:  45,
		},
		{
			name:       "underage is rejected",
			id:         storedID,
			input:      ChangeExampleInput{Age: ptr(17)},
			setupMocks: func(*mocks.MockExampleRepository, *mocks.MockEventPublisher) {},
			errCheck:   domain.IsValidation,
		},
		{
			name:  "vanished before update",
			id:    storedID,
			input: ChangeExampleInput{Age: ptr(40)},
			setupMocks: func(repo *mocks.MockExampleRepository, _ *mocks.MockEventPublisher) {
				repo.EXPECT().Update(mock.Anything, mock.Anything).
					Return(domain.NewEntityNotFoundError("Example", example.MustID(storedID)))
			},
			errCheck: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub, _ := newTestService(t)

			stored := example.New(example.MustID(storedID), "Ada", 36)
			repo.EXPECT().FindByID(mock.Anything, example.MustID(storedID)).Return(stored, true, nil)
			tt.setupMocks(repo, pub)

			got, err := svc.ChangeExample(context.Background(), tt.id, tt.input)

			// The loaded aggregate is never mutated.
			assert.Equal(t, "Ada", stored.Name())
			assert.Equal(t, 36, stored.Age())

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name())
			assert.Equal(t, tt.wantAge, got.Age())
			assert.Empty(t, got.Events())
		})
	}
}

func TestExampleService_ChangeExample_RejectedBeforeLoading(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		input    ChangeExampleInput
		errCheck func(error) bool
	}{
		{name: "nothing to change", id: storedID, input: ChangeExampleInput{}, errCheck: domain.IsInvalidArgument},
		{name: "malformed id", id: "x", input: ChangeExampleInput{Age: ptr(30)}, errCheck: domain.IsInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestService(t)

			_, err := svc.ChangeExample(context.Background(), tt.id, tt.input)

			require.Error(t, err)
			assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)
		})
	}
}

func TestExampleService_ChangeExample_NotFound(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().FindByID(mock.Anything, example.MustID(unknownID)).Return(nil, false, nil)
	repo.EXPECT().EntityName().Return("Example")

	_, err := svc.ChangeExample(context.Background(), unknownID, ChangeExampleInput{Age: ptr(30)})

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	step, ok := GetExecutionStep(err)
	require.True(t, ok)
	assert.Equal(t, StepPerform, step)
}

func TestExampleService_DeleteExample(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMocks func(*mocks.MockExampleRepository)
		errCheck   func(error) bool
	}{
		{
			name: "deleted",
			id:   storedID,
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().Delete(mock.Anything, example.MustID(storedID)).Return(nil)
			},
		},
		{
			name: "not found",
			id:   unknownID,
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().Delete(mock.Anything, example.MustID(unknownID)).
					Return(domain.NewEntityNotFoundError("Example", example.MustID(unknownID)))
			},
			errCheck: domain.IsNotFound,
		},
		{
			name:       "malformed id",
			id:         "123",
			setupMocks: func(*mocks.MockExampleRepository) {},
			errCheck:   domain.IsInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService(t)
			tt.setupMocks(repo)

			err := svc.DeleteExample(context.Background(), tt.id)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestExampleService_DeleteExamples(t *testing.T) {
	tests := []struct {
		name       string
		ids        []string
		setupMocks func(*mocks.MockExampleRepository)
		errCheck   func(error) bool
	}{
		{
			name: "deleted",
			ids:  []string{storedID, unknownID},
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().DeleteManyByIDs(mock.Anything, []example.ID{
					example.MustID(storedID), example.MustID(unknownID),
				}).Return(nil)
			},
		},
		{
			name:       "empty",
			ids:        nil,
			setupMocks: func(*mocks.MockExampleRepository) {},
			errCheck:   domain.IsInvalidArgument,
		},
		{
			name: "one missing",
			ids:  []string{storedID, unknownID},
			setupMocks: func(repo *mocks.MockExampleRepository) {
				repo.EXPECT().DeleteManyByIDs(mock.Anything, mock.Anything).
					Return(domain.NewEntityNotFoundError("Example", example.MustID(unknownID)))
			},
			errCheck: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService(t)
			tt.setupMocks(repo)

			err := svc.DeleteExamples(context.Background(), tt.ids)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestExampleService_CheckExamples(t *testing.T) {
	t.Run("partitions ids", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		want := domain.ExistsResult[example.ID]{
			Exists:    []example.ID{example.MustID(storedID)},
			NotExists: []example.ID{example.MustID(unknownID)},
		}
		repo.EXPECT().ExistsByID(mock.Anything, mock.Anything).Return(want, nil)

		got, err := svc.CheckExamples(context.Background(), []string{storedID, unknownID})

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("empty", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.CheckExamples(context.Background(), []string{})

		require.Error(t, err)
		assert.True(t, domain.IsInvalidArgument(err))
		assert.Equal(t, domain.EmptyIDsMessage, err.Error())
	})
}
