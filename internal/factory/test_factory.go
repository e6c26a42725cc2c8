package factory

import (
	"time"

	"github.com/uolchat/batepapo/internal/dependencies/mocks"
	"github.com/uolchat/batepapo/internal/services/presence"
	"github.com/uolchat/batepapo/internal/storage/memory"
	"github.com/uolchat/batepapo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, presence.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
