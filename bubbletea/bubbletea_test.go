package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragview"
	bt "github.com/fwojciec/ragview/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, fetch bt.FetchFunc) bt.Model {
	t.Helper()
	return initModelWithSize(t, fetch, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, fetch bt.FetchFunc, width, height int) bt.Model {
	t.Helper()
	m := bt.New(fetch, "how do we deploy?", ragview.DefaultTheme())
	t.Cleanup(m.Close)
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// answerFetch returns a fixed query response.
func answerFetch(answer string) bt.FetchFunc {
	return func(context.Context) (ragview.Response, error) {
		return ragview.QueryResponse{
			Status:             ragview.StatusOK,
			Answer:             answer,
			Provider:           "BEDROCK",
			RetrievedPageCount: 3,
			RootPageURLs:       []string{"https://wiki/pages/1"},
		}, nil
	}
}

// blockingFetch waits for cancellation.
func blockingFetch(ctx context.Context) (ragview.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
