package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fxbot/internal/adapters"
	"fxbot/internal/domain"

	"github.com/sirupsen/logrus"
)

const ownerKey = "owner:chat_id"

// OwnerAuthorizer lets exactly one correspondent talk to the bot. With a pinned id
// only that id is accepted; otherwise the first correspondent is bound in the store.
type OwnerAuthorizer struct {
	store  adapters.Store
	pinned string
	mu     sync.Mutex
}

func (a *OwnerAuthorizer) Allow(ctx context.Context, correspondentID string) (bool, error) {
	if correspondentID == "" {
		return false, nil
	}
	if a.pinned != "" {
		return correspondentID == a.pinned, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	owner, err := a.store.Get(ctx, ownerKey)
	switch {
	case err == nil:
		return string(owner) == correspondentID, nil
	case errors.Is(err, domain.ErrKeyNotFound):
		if err = a.store.Put(ctx, ownerKey, []byte(correspondentID)); err != nil {
			return false, fmt.Errorf("failed to bind owner: %w", err)
		}
		logrus.WithField("chat_id", correspondentID).Info("Bot bound to its owner")
		return true, nil
	default:
		return false, fmt.Errorf("failed to load owner: %w", err)
	}
}

func NewOwnerAuthorizer(store adapters.Store, pinned string) *OwnerAuthorizer {
	return &OwnerAuthorizer{store: store, pinned: pinned}
}
