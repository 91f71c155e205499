package stream

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/repositories"
	"github.com/tc2000/fantasy/userctx"
)

// Notifier is the façade request handlers use to record a significant
// action: one immutable audit entry plus one live-feed notification per
// call, sharing the same descriptive fields. The audit write is
// fire-and-forget so a persistence failure never alters the outcome of the
// request that triggered it.
type Notifier struct {
	bus   *Bus
	audit repositories.AuditRepository
}

// NewNotifier creates a notifier writing to the given bus and audit trail
func NewNotifier(bus *Bus, audit repositories.AuditRepository) *Notifier {
	return &Notifier{bus: bus, audit: audit}
}

// Emit records action both as an audit entry and as a live notification.
// Actor identity and IP are taken from the request context; an absent
// identity (failed login, anonymous access) is recorded as a NULL actor.
func (n *Notifier) Emit(ctx context.Context, action, message, resourceType, resourceID string, details map[string]any, result string) {
	entry := &models.AuditEntry{
		ActorIP:      userctx.GetClientIP(ctx),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Result:       result,
	}

	if id := userctx.GetUserID(ctx); id != "" {
		if actorID, err := strconv.Atoi(id); err == nil {
			entry.ActorID = &actorID
		}
	}

	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = string(data)
		}
	}

	// Audit asynchronously to avoid blocking the request
	go func() {
		if err := n.audit.Create(entry); err != nil {
			log.WithError(err).Error("failed to create audit log")
		}
	}()

	n.bus.Publish(models.Notification{
		Type:         strings.ToLower(action),
		Message:      message,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		Result:       result,
	})
}
