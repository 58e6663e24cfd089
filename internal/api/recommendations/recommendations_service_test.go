package recommendations

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/encontros-app/date-spots-api/app/observability/metrics"
	"github.com/encontros-app/date-spots-api/internal/api/completion"
	"github.com/encontros-app/date-spots-api/internal/types"
)

// MockCompletionClient is a mock implementation of completion.Client.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) Source() string {
	args := m.Called()
	return args.String(0)
}

func newTestService(client completion.Client) *ServiceImpl {
	metrics.InitAppMetrics()
	logger := slog.New(slog.DiscardHandler)
	return NewServiceImpl(client, PromptStrict, logger)
}

func TestSearchPlaces_Success(t *testing.T) {
	mockClient := new(MockCompletionClient)
	svc := newTestService(mockClient)

	raw := `{"recommendations": [
		{"name": "Restaurante Azul", "address": "Rua das Flores, 10 - Centro", "description": "Jantar romântico [1].", "rating": 4.5},
		{"name": "Bar do Porto", "description": "Vista para o mar."}
	]}`
	mockClient.On("Complete", mock.Anything, systemPrompt, mock.MatchedBy(func(prompt string) bool {
		return prompt != ""
	})).Return(raw, nil).Once()
	mockClient.On("Source").Return("perplexity-search").Once()

	resp, err := svc.SearchPlaces(context.Background(), testFilters())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 2, resp.TotalFound)
	assert.Equal(t, "perplexity-search", resp.Source)
	require.Len(t, resp.Places, 2)
	assert.True(t, resp.Places[0].AIRecommended)
	assert.Equal(t, "Jantar romântico.", resp.Places[0].Description)
	assert.Contains(t, resp.Places[0].MapURL, url.QueryEscape("Restaurante Azul"))
	mockClient.AssertExpectations(t)
}

func TestSearchPlaces_IncompleteFiltersSkipsCompletion(t *testing.T) {
	mockClient := new(MockCompletionClient)
	svc := newTestService(mockClient)

	filters := testFilters()
	filters.Latitude = nil

	resp, err := svc.SearchPlaces(context.Background(), filters)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, types.ErrIncompleteFilters))
	mockClient.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchPlaces_PromptCarriesFilters(t *testing.T) {
	mockClient := new(MockCompletionClient)
	svc := newTestService(mockClient)

	filters := testFilters()
	filters.Distancia = types.DistanceNear

	var captured string
	mockClient.On("Complete", mock.Anything, systemPrompt, mock.MatchedBy(func(prompt string) bool {
		captured = prompt
		return true
	})).Return(`{"recommendations": [{"name": "X"}]}`, nil).Once()
	mockClient.On("Source").Return("perplexity-search").Once()

	_, err := svc.SearchPlaces(context.Background(), filters)
	require.NoError(t, err)
	assert.Contains(t, captured, "NO MÁXIMO 3 QUILÔMETROS")
	assert.Contains(t, captured, "Latitude -2.53")
}

func TestSearchPlaces_CompletionFailurePropagates(t *testing.T) {
	mockClient := new(MockCompletionClient)
	svc := newTestService(mockClient)

	mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", &completion.StatusError{StatusCode: 502}).Once()

	resp, err := svc.SearchPlaces(context.Background(), testFilters())
	require.Error(t, err)
	assert.Nil(t, resp)

	var statusErr *completion.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 502, statusErr.StatusCode)
	mockClient.AssertNotCalled(t, "Source")
}

func TestSearchPlaces_MalformedCompletionFails(t *testing.T) {
	mockClient := new(MockCompletionClient)
	svc := newTestService(mockClient)

	mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("desculpe, não consegui encontrar lugares", nil).Once()

	resp, err := svc.SearchPlaces(context.Background(), testFilters())
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}
