package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/userctx"
)

// captureAuditRepo records entries in memory for assertions
type captureAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	err     error
}

func (r *captureAuditRepo) Create(entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *captureAuditRepo) all() []models.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditEntry(nil), r.entries...)
}

func TestEmitProducesOneAuditEntryAndOneNotification(t *testing.T) {
	bus := NewBus(10, time.Second)
	audit := &captureAuditRepo{}
	notifier := NewNotifier(bus, audit)

	ctx := userctx.SetUser(context.Background(), "42", models.RoleAdmin)
	ctx = userctx.SetClientIP(ctx, "10.0.0.7")

	notifier.Emit(ctx, "PILOT_CREATE", "pilot created", "pilots", "7",
		map[string]any{"name": "Leonel Pernía"}, models.AuditSuccess)

	// Exactly one notification with matching fields
	consumeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := bus.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, "pilot_create", msg.Type)
	assert.Equal(t, "pilots", msg.ResourceType)
	assert.Equal(t, "7", msg.ResourceID)
	assert.Equal(t, models.AuditSuccess, msg.Result)

	// Exactly one audit entry, correctly attributed
	require.Eventually(t, func() bool {
		return len(audit.all()) == 1
	}, time.Second, 10*time.Millisecond)

	entries := audit.all()
	entry := entries[0]
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, 42, *entry.ActorID)
	assert.Equal(t, "10.0.0.7", entry.ActorIP)
	assert.Equal(t, "PILOT_CREATE", entry.Action)
	assert.Equal(t, "pilots", entry.ResourceType)
	assert.Equal(t, "7", entry.ResourceID)
	assert.Contains(t, entry.Details, "Leonel Pernía")
	assert.Equal(t, models.AuditSuccess, entry.Result)
}

func TestEmitWithoutActorRecordsNullActor(t *testing.T) {
	bus := NewBus(10, time.Second)
	audit := &captureAuditRepo{}
	notifier := NewNotifier(bus, audit)

	ctx := userctx.SetClientIP(context.Background(), "192.0.2.1")

	notifier.Emit(ctx, "LOGIN_FAIL", "invalid credentials", "users", "",
		map[string]any{"username": "ghost"}, models.AuditFail)

	require.Eventually(t, func() bool {
		return len(audit.all()) == 1
	}, time.Second, 10*time.Millisecond)

	entry := audit.all()[0]
	assert.Nil(t, entry.ActorID, "failed logins must not be attributed to a sentinel identity")
	assert.Equal(t, "192.0.2.1", entry.ActorIP)
	assert.Equal(t, models.AuditFail, entry.Result)
}

func TestEmitSurvivesAuditFailure(t *testing.T) {
	bus := NewBus(10, time.Second)
	audit := &captureAuditRepo{err: assert.AnError}
	notifier := NewNotifier(bus, audit)

	// Must not panic and must still publish
	notifier.Emit(context.Background(), "TEAM_DELETE", "team deleted", "teams", "3", nil, models.AuditSuccess)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := bus.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "team_delete", msg.Type)
}

func TestConcurrentEmitsKeepAttribution(t *testing.T) {
	bus := NewBus(100, time.Second)
	audit := &captureAuditRepo{}
	notifier := NewNotifier(bus, audit)

	ctxA := userctx.SetUser(context.Background(), "1", models.RoleAdmin)
	ctxB := userctx.SetUser(context.Background(), "2", models.RoleAdmin)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		notifier.Emit(ctxA, "TEAM_CREATE", "team created", "teams", "10", nil, models.AuditSuccess)
	}()
	go func() {
		defer wg.Done()
		notifier.Emit(ctxB, "PILOT_CREATE", "pilot created", "pilots", "20", nil, models.AuditSuccess)
	}()
	wg.Wait()

	require.Eventually(t, func() bool {
		return len(audit.all()) == 2
	}, time.Second, 10*time.Millisecond)

	byAction := map[string]models.AuditEntry{}
	for _, entry := range audit.all() {
		byAction[entry.Action] = entry
	}

	require.NotNil(t, byAction["TEAM_CREATE"].ActorID)
	require.NotNil(t, byAction["PILOT_CREATE"].ActorID)
	assert.Equal(t, 1, *byAction["TEAM_CREATE"].ActorID)
	assert.Equal(t, 2, *byAction["PILOT_CREATE"].ActorID)
}
