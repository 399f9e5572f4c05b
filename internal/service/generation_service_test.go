package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "draftgen/backend/internal/errors"
	"draftgen/backend/internal/model"
	"draftgen/backend/internal/repository"
	repomocks "draftgen/backend/internal/repository/mocks"
	"draftgen/backend/internal/service"
	streammocks "draftgen/backend/internal/stream/mocks"
)

// fastSettings keeps the reconnect schedule tight so tests finish quickly.
var fastSettings = service.ReconnectSettings{
	MaxRetries:      3,
	InitialDelay:    2 * time.Millisecond,
	MaxDelay:        10 * time.Millisecond,
	PollingInterval: 5 * time.Millisecond,
}

func setupGenerationService(t *testing.T, rc service.ReconnectSettings) (*service.GenerationService, *repomocks.MockGenerationStore, *streammocks.MockSource) {
	mockStore := repomocks.NewMockGenerationStore(t)
	mockSource := streammocks.NewMockSource(t)
	svc := service.NewGenerationService(mockStore, mockSource, rc)
	return svc, mockStore, mockSource
}

func sseBody(frames ...string) io.ReadCloser {
	var b strings.Builder
	for _, f := range frames {
		b.WriteString("data: ")
		b.WriteString(f)
		b.WriteString("\n\n")
	}
	return io.NopCloser(strings.NewReader(b.String()))
}

// runStream drives one session to completion and returns everything sent on
// the updates channel. Sends never block because the channel is buffered.
func runStream(ctx context.Context, svc *service.GenerationService, req *model.GenerationRequest) []model.StreamUpdate {
	updates := make(chan model.StreamUpdate, 64)
	svc.Stream(ctx, req, updates)
	var out []model.StreamUpdate
	for u := range updates {
		out = append(out, u)
	}
	return out
}

func TestGenerationService_Stream_HappyPathPersists(t *testing.T) {
	svc, mockStore, mockSource := setupGenerationService(t, fastSettings)

	mockSource.On("OpenStream", mock.Anything, mock.Anything, "").
		Return(sseBody(
			`{"type":"token","content":"Drafted "}`,
			`{"type":"token","content":"answer"}`,
			`{"type":"citation","number":1,"document_name":"Handbook"}`,
			`{"type":"done","generation_id":"gen-1","confidence":0.9,"sources_used":2}`,
		), nil).Once()
	mockStore.On("SaveGeneration", mock.Anything, mock.MatchedBy(func(gen *model.Generation) bool {
		return gen.ID == "gen-1" &&
			gen.KnowledgeBaseID == "kb-1" &&
			gen.Status == model.StatusComplete &&
			gen.Content == "Drafted answer" &&
			len(gen.Citations) == 1 &&
			gen.CompletedAt != nil
	})).Return(nil).Once()

	req := &model.GenerationRequest{GenerationID: "gen-1", KnowledgeBaseID: "kb-1", Mode: "draft"}
	updates := runStream(context.Background(), svc, req)

	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.True(t, last.Done)
	assert.Equal(t, "done", last.Type)
}

func TestGenerationService_Stream_AssignsGenerationID(t *testing.T) {
	svc, mockStore, mockSource := setupGenerationService(t, fastSettings)

	var sentReq *model.GenerationRequest
	mockSource.On("OpenStream", mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			sentReq = args.Get(1).(*model.GenerationRequest)
		}).
		Return(sseBody(`{"type":"done","generation_id":"","confidence":1,"sources_used":0}`), nil).Once()
	mockStore.On("SaveGeneration", mock.Anything, mock.Anything).Return(nil).Once()

	req := &model.GenerationRequest{KnowledgeBaseID: "kb-1", Mode: "answer"}
	runStream(context.Background(), svc, req)

	require.NotNil(t, sentReq)
	assert.NotEmpty(t, sentReq.GenerationID, "an id is assigned before the request goes out")
}

func TestGenerationService_Stream_FailedGenerationPersistsAsFailed(t *testing.T) {
	svc, mockStore, mockSource := setupGenerationService(t, fastSettings)

	mockSource.On("OpenStream", mock.Anything, mock.Anything, "").
		Return(sseBody(
			`{"type":"token","content":"partial"}`,
			`{"type":"error","message":"Insufficient sources"}`,
		), nil).Once()
	mockStore.On("SaveGeneration", mock.Anything, mock.MatchedBy(func(gen *model.Generation) bool {
		return gen.Status == model.StatusFailed &&
			gen.Error != nil && *gen.Error == "Insufficient sources" &&
			gen.Content == "partial"
	})).Return(nil).Once()

	req := &model.GenerationRequest{GenerationID: "gen-1", KnowledgeBaseID: "kb-1", Mode: "draft"}
	updates := runStream(context.Background(), svc, req)

	last := updates[len(updates)-1]
	assert.Equal(t, "error", last.Type)
	assert.Equal(t, "Insufficient sources", last.Error)
}

func TestGenerationService_Stream_ReconnectsAfterTransportFailure(t *testing.T) {
	svc, mockStore, mockSource := setupGenerationService(t, fastSettings)

	// The first open fails at the transport level; the retry succeeds and the
	// session runs to completion.
	mockSource.On("OpenStream", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()
	mockSource.On("OpenStream", mock.Anything, mock.Anything, mock.Anything).
		Return(sseBody(
			`{"type":"token","content":"recovered"}`,
			`{"type":"done","generation_id":"gen-1","confidence":0.7,"sources_used":1}`,
		), nil).Once()
	mockStore.On("SaveGeneration", mock.Anything, mock.MatchedBy(func(gen *model.Generation) bool {
		return gen.Status == model.StatusComplete && gen.Content == "recovered"
	})).Return(nil).Once()

	req := &model.GenerationRequest{GenerationID: "gen-1", KnowledgeBaseID: "kb-1", Mode: "draft"}
	updates := runStream(context.Background(), svc, req)

	require.NotEmpty(t, updates)
	assert.True(t, updates[len(updates)-1].Done)
}

func TestGenerationService_Stream_FallsBackToPolling(t *testing.T) {
	rc := fastSettings
	rc.MaxRetries = 1
	svc, mockStore, mockSource := setupGenerationService(t, rc)

	conf := 0.8
	used := 2

	// Initial attempt plus the single allowed retry both fail; the budget is
	// spent and the service degrades to polling the generation resource.
	mockSource.On("OpenStream", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Twice()
	mockSource.On("FetchGeneration", mock.Anything, "gen-1").
		Return(&model.Generation{
			ID:          "gen-1",
			Content:     "polled result",
			Status:      model.StatusComplete,
			Confidence:  &conf,
			SourcesUsed: &used,
		}, nil)
	mockStore.On("SaveGeneration", mock.Anything, mock.MatchedBy(func(gen *model.Generation) bool {
		return gen.ID == "gen-1" && gen.Status == model.StatusComplete && gen.Content == "polled result"
	})).Return(nil).Once()

	req := &model.GenerationRequest{GenerationID: "gen-1", KnowledgeBaseID: "kb-1", Mode: "draft"}
	updates := runStream(context.Background(), svc, req)

	require.NotEmpty(t, updates)
	var sawPollingStatus bool
	for _, u := range updates {
		if u.Type == "status" && strings.Contains(u.Status, "polling") {
			sawPollingStatus = true
		}
	}
	assert.True(t, sawPollingStatus, "clients are told the stream degraded to polling")
	last := updates[len(updates)-1]
	assert.True(t, last.Done)
	assert.Equal(t, "gen-1", last.GenerationID)
}

func TestGenerationService_Stream_ContextCancelledDuringRetryWait(t *testing.T) {
	rc := fastSettings
	rc.InitialDelay = 500 * time.Millisecond
	svc, mockStore, mockSource := setupGenerationService(t, rc)
	_ = mockStore // nothing must be persisted

	mockSource.On("OpenStream", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan model.StreamUpdate, 64)
	done := make(chan struct{})
	go func() {
		svc.Stream(ctx, &model.GenerationRequest{GenerationID: "gen-1", KnowledgeBaseID: "kb-1", Mode: "draft"}, updates)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after context cancellation")
	}
}

func TestGenerationService_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mockStore, _ := setupGenerationService(t, fastSettings)
		expected := &model.Generation{ID: "gen-1"}
		mockStore.On("GetGeneration", mock.Anything, "gen-1").Return(expected, nil).Once()

		gen, err := svc.Get(context.Background(), "gen-1")
		require.NoError(t, err)
		assert.Equal(t, expected, gen)
	})

	t.Run("Failure - not found is mapped", func(t *testing.T) {
		svc, mockStore, _ := setupGenerationService(t, fastSettings)
		mockStore.On("GetGeneration", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestGenerationService_List(t *testing.T) {
	svc, mockStore, _ := setupGenerationService(t, fastSettings)
	expected := []*model.Generation{{ID: "gen-2"}, {ID: "gen-1"}}
	mockStore.On("ListGenerations", mock.Anything, "kb-1").Return(expected, nil).Once()

	generations, err := svc.List(context.Background(), "kb-1")
	require.NoError(t, err)
	assert.Equal(t, expected, generations)
}

func TestGenerationService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mockStore, _ := setupGenerationService(t, fastSettings)
		mockStore.On("DeleteGeneration", mock.Anything, "gen-1").Return(nil).Once()

		assert.NoError(t, svc.Delete(context.Background(), "gen-1"))
	})

	t.Run("Failure - not found is mapped", func(t *testing.T) {
		svc, mockStore, _ := setupGenerationService(t, fastSettings)
		mockStore.On("DeleteGeneration", mock.Anything, "missing").Return(repository.ErrNotFound).Once()

		err := svc.Delete(context.Background(), "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}
