package notifier

import (
	"context"

	"github.com/mauv0809/pelada-pro/internal/pelada"
)

// Mock is a configurable spy implementation of Notifier for tests.
type Mock struct {
	InviteMessageFunc   func(ctx context.Context, details pelada.MatchDetails) string
	ReminderMessageFunc func(ctx context.Context, details pelada.MatchDetails, confirmed []pelada.Player) string

	// Call records
	InviteCalls   []pelada.MatchDetails
	ReminderCalls []pelada.MatchDetails
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) InviteMessage(ctx context.Context, details pelada.MatchDetails) string {
	m.InviteCalls = append(m.InviteCalls, details)
	if m.InviteMessageFunc != nil {
		return m.InviteMessageFunc(ctx, details)
	}
	return "convite"
}

func (m *Mock) ReminderMessage(ctx context.Context, details pelada.MatchDetails, confirmed []pelada.Player) string {
	m.ReminderCalls = append(m.ReminderCalls, details)
	if m.ReminderMessageFunc != nil {
		return m.ReminderMessageFunc(ctx, details, confirmed)
	}
	return "lembrete"
}
