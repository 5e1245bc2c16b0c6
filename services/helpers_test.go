package services_test

import (
	"SteamProfile/repositories"
	"SteamProfile/testhelpers"
	"sync"
	"testing"

	"gorm.io/gorm"
)

type sentEvent struct {
	Username string
	Event    string
}

// recordingNotifier keeps every event it is asked to deliver
type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(username, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{Username: username, Event: event})
}

func (n *recordingNotifier) Events() []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentEvent(nil), n.events...)
}

func setupStore(t *testing.T) (*gorm.DB, *repositories.Store) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return db, repositories.NewStore(db)
}
