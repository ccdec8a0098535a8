package eventlog

import (
	"context"

	"github.com/babygoats/BabyGoats_Go/internal/event"
)

// TestHooks reaches the service's unexported bus handler from external
// test packages. Compiled only into test binaries.
type TestHooks struct {
	svc *service
}

func NewTestHooks(s Service) *TestHooks {
	return &TestHooks{svc: s.(*service)}
}

func (h *TestHooks) HandleEvent(ctx context.Context, evt event.Event) error {
	return h.svc.handleEvent(ctx, evt)
}
