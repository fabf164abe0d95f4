package notifier

import (
	"context"

	"github.com/mauv0809/pelada-pro/internal/pelada"
)

// Notifier produces WhatsApp-ready announcement text for a match. Message
// generation never fails; implementations degrade to a static template when
// the backing service is unavailable.
type Notifier interface {
	InviteMessage(ctx context.Context, details pelada.MatchDetails) string
	ReminderMessage(ctx context.Context, details pelada.MatchDetails, confirmed []pelada.Player) string
}
