package factory

import (
	"time"

	"github.com/darknight08zz/protocol456/internal/dependencies/mocks"
	"github.com/darknight08zz/protocol456/internal/services/admin"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	"github.com/darknight08zz/protocol456/internal/storage/memory"
	"github.com/darknight08zz/protocol456/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(gameCfg ledger.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, gameCfg, testutil.NopLogger())
	adminService, _ := admin.New("test-passphrase")
	app.AdminService = adminService

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
