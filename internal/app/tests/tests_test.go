package tests_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/proctorai/proctor-go/internal/app/tests"
	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/model"
	"github.com/proctorai/proctor-go/internal/remote/remotemock"
)

func validSpec() model.TestSpec {
	return model.TestSpec{
		Name:               "jailbreak-resistance",
		StudentDescription: "A customer support chatbot.",
		Policy:             "Do not facilitate fraud.",
		Language:           "en",
		NumQuestions:       5,
	}
}

func TestNewService(t *testing.T) {
	testsCases := map[string]struct {
		cfg    tests.ServiceConfig
		expErr bool
		errMsg string
	}{
		"Valid config with all fields": {
			cfg: tests.ServiceConfig{
				Remote: &remotemock.MockClient{},
				Logger: log.Noop,
			},
		},
		"Valid config without logger uses Noop": {
			cfg: tests.ServiceConfig{
				Remote: &remotemock.MockClient{},
			},
		},
		"Missing remote client returns error": {
			cfg:    tests.ServiceConfig{},
			expErr: true,
			errMsg: "remote client is required",
		},
	}

	for name, tt := range testsCases {
		t.Run(name, func(t *testing.T) {
			svc, err := tests.NewService(tt.cfg)

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, svc)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestServiceCreate(t *testing.T) {
	testsCases := map[string]struct {
		spec       model.TestSpec
		setupMocks func(m *remotemock.MockClient)
		expErr     error
	}{
		"Successful submission": {
			spec: validSpec(),
			setupMocks: func(m *remotemock.MockClient) {
				m.On("CreateTest", mock.Anything, mock.Anything).
					Return(&model.Test{ID: "test-1", Name: "jailbreak-resistance", Status: model.StatusPending}, nil)
			},
		},
		"Invalid spec fails before any remote call": {
			spec:       model.TestSpec{Name: "incomplete"},
			setupMocks: func(m *remotemock.MockClient) {},
			expErr:     model.ErrNotValid,
		},
		"Remote resource error propagates without local handle": {
			spec: validSpec(),
			setupMocks: func(m *remotemock.MockClient) {
				m.On("CreateTest", mock.Anything, mock.Anything).
					Return(nil, model.ErrNotFound)
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, tt := range testsCases {
		t.Run(name, func(t *testing.T) {
			mMock := &remotemock.MockClient{}
			tt.setupMocks(mMock)

			svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
			require.NoError(t, err)

			test, err := svc.Create(context.Background(), tt.spec)

			if tt.expErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expErr)
				assert.Nil(t, test)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "test-1", test.ID)
				assert.Equal(t, model.StatusPending, test.Status)
			}

			mMock.AssertExpectations(t)
		})
	}
}

func TestServiceCreateDefaultsSpec(t *testing.T) {
	mMock := &remotemock.MockClient{}
	mMock.On("CreateTest", mock.Anything, mock.MatchedBy(func(spec model.TestSpec) bool {
		return spec.Language == model.DefaultLanguage && spec.NumQuestions == model.DefaultNumQuestions
	})).Return(&model.Test{ID: "test-1", Status: model.StatusPending}, nil)

	svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
	require.NoError(t, err)

	spec := validSpec()
	spec.Language = ""
	spec.NumQuestions = 0
	_, err = svc.Create(context.Background(), spec)

	require.NoError(t, err)
	mMock.AssertExpectations(t)
}

func TestServiceCreateAndWait(t *testing.T) {
	mMock := &remotemock.MockClient{}
	mMock.On("CreateTest", mock.Anything, mock.Anything).
		Return(&model.Test{ID: "test-1", Status: model.StatusPending}, nil)
	// pending -> running -> completed across three polls.
	mMock.On("GetTest", mock.Anything, "test-1").
		Return(&model.Test{ID: "test-1", Status: model.StatusPending}, nil).Once()
	mMock.On("GetTest", mock.Anything, "test-1").
		Return(&model.Test{ID: "test-1", Status: model.StatusRunning}, nil).Once()
	mMock.On("GetTest", mock.Anything, "test-1").
		Return(&model.Test{ID: "test-1", Status: model.StatusCompleted}, nil).Once()
	mMock.On("ListTestQuestions", mock.Anything, "test-1", "").
		Return([]model.Question{
			{ID: "q-1"}, {ID: "q-2"}, {ID: "q-3"}, {ID: "q-4"}, {ID: "q-5"},
		}, "", nil)

	svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
	require.NoError(t, err)

	result, err := svc.CreateAndWait(context.Background(), validSpec(), tests.WaitOptions{
		PollInterval: time.Millisecond,
		Timeout:      time.Second,
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, result.Test.Status)
	assert.Len(t, result.Questions, 5)
	mMock.AssertExpectations(t)
}

func TestServiceCreateAndWaitNoWait(t *testing.T) {
	// With NoWait the call returns right after submission and polls nothing.
	mMock := &remotemock.MockClient{}
	mMock.On("CreateTest", mock.Anything, mock.Anything).
		Return(&model.Test{ID: "test-1", Status: model.StatusPending}, nil)

	svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
	require.NoError(t, err)

	result, err := svc.CreateAndWait(context.Background(), validSpec(), tests.WaitOptions{NoWait: true})

	require.NoError(t, err)
	assert.False(t, result.Test.Status.IsTerminal())
	assert.Empty(t, result.Questions)
	mMock.AssertExpectations(t)
	mMock.AssertNotCalled(t, "GetTest", mock.Anything, mock.Anything)
}

func TestServiceWaitTimeout(t *testing.T) {
	mMock := &remotemock.MockClient{}
	mMock.On("GetTest", mock.Anything, "test-1").
		Return(&model.Test{ID: "test-1", Status: model.StatusRunning}, nil)

	svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
	require.NoError(t, err)

	_, err = svc.Wait(context.Background(), "test-1", tests.WaitOptions{
		PollInterval: time.Millisecond,
		Timeout:      5 * time.Millisecond,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTimeout)
}

func TestServiceWaitStatusRegression(t *testing.T) {
	mMock := &remotemock.MockClient{}
	mMock.On("GetTest", mock.Anything, "test-1").
		Return(&model.Test{ID: "test-1", Status: model.StatusRunning}, nil).Once()
	mMock.On("GetTest", mock.Anything, "test-1").
		Return(&model.Test{ID: "test-1", Status: model.StatusPending}, nil).Once()

	svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
	require.NoError(t, err)

	_, err = svc.Wait(context.Background(), "test-1", tests.WaitOptions{
		PollInterval: time.Millisecond,
		Timeout:      time.Second,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrServer)
	assert.Contains(t, err.Error(), "moved backwards")
}

func TestServiceResult(t *testing.T) {
	testsCases := map[string]struct {
		test       model.Test
		setupMocks func(m *remotemock.MockClient)
		expErr     error
		expLen     int
	}{
		"Non-terminal handle returns not ready without remote calls": {
			test:       model.Test{ID: "test-1", Status: model.StatusRunning},
			setupMocks: func(m *remotemock.MockClient) {},
			expErr:     model.ErrNotReady,
		},
		"Failed handle returns operation failed with detail": {
			test: model.Test{
				ID:            "test-1",
				Status:        model.StatusFailed,
				FailureDetail: &model.FailureDetail{Reason: "generation crashed"},
			},
			setupMocks: func(m *remotemock.MockClient) {},
			expErr:     model.ErrOperationFailed,
		},
		"Completed handle pages all questions": {
			test: model.Test{ID: "test-1", Status: model.StatusCompleted},
			setupMocks: func(m *remotemock.MockClient) {
				m.On("ListTestQuestions", mock.Anything, "test-1", "").
					Return([]model.Question{{ID: "q-1"}, {ID: "q-2"}}, "page-2", nil)
				m.On("ListTestQuestions", mock.Anything, "test-1", "page-2").
					Return([]model.Question{{ID: "q-3"}}, "", nil)
			},
			expLen: 3,
		},
	}

	for name, tt := range testsCases {
		t.Run(name, func(t *testing.T) {
			mMock := &remotemock.MockClient{}
			tt.setupMocks(mMock)

			svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
			require.NoError(t, err)

			questions, err := svc.Result(context.Background(), tt.test)

			if tt.expErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, questions, tt.expLen)
			}

			mMock.AssertExpectations(t)
		})
	}
}

func TestServiceResultFailureDetail(t *testing.T) {
	svc, err := tests.NewService(tests.ServiceConfig{Remote: &remotemock.MockClient{}})
	require.NoError(t, err)

	_, err = svc.Result(context.Background(), model.Test{
		ID:            "test-1",
		Status:        model.StatusFailed,
		FailureDetail: &model.FailureDetail{Reason: "generation crashed", Code: "server.generation"},
	})

	require.Error(t, err)
	var failedErr *model.OperationFailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Equal(t, "generation crashed", failedErr.Detail.Reason)
	assert.Equal(t, model.KindTest, failedErr.Kind)
}

func TestServiceList(t *testing.T) {
	mMock := &remotemock.MockClient{}
	mMock.On("ListTests", mock.Anything, "").
		Return([]model.Test{{ID: "test-1"}, {ID: "test-2"}}, "page-2", nil)
	mMock.On("ListTests", mock.Anything, "page-2").
		Return([]model.Test{{ID: "test-3"}}, "", nil)

	svc, err := tests.NewService(tests.ServiceConfig{Remote: mMock})
	require.NoError(t, err)

	var ids []string
	it := svc.List()
	for it.Next(context.Background()) {
		ids = append(ids, it.Item().ID)
	}

	require.NoError(t, it.Err())
	assert.Equal(t, []string{"test-1", "test-2", "test-3"}, ids)
	mMock.AssertExpectations(t)
}
