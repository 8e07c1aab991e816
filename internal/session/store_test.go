package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
)

// fakeAuthenticator resolves a fixed user, optionally blocking until
// released so tests can hold an operation in flight.
type fakeAuthenticator struct {
	user    *domain.User
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeAuthenticator) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthenticator) Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error) {
	return f.Login(ctx, email, password)
}

// failingSlot errors on every operation.
type failingSlot struct{}

func (failingSlot) Load(ctx context.Context) ([]byte, error)    { return nil, errors.New("disk gone") }
func (failingSlot) Save(ctx context.Context, data []byte) error { return errors.New("disk gone") }
func (failingSlot) Clear(ctx context.Context) error             { return errors.New("disk gone") }

func testUser() *domain.User {
	return &domain.User{ID: "u1", Email: "kai@example.com", Name: "Kai", Role: domain.RoleTrainee}
}

func TestStoreStateProgression(t *testing.T) {
	store := NewStore(&fakeAuthenticator{user: testUser()}, NewMemorySlot())
	assert.Equal(t, StateUnknown, store.State())

	store.Restore(context.Background())
	assert.Equal(t, StateAnonymous, store.State())

	_, err := store.Login(context.Background(), "kai@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, store.State())

	store.Logout(context.Background())
	assert.Equal(t, StateAnonymous, store.State())
}

func TestStoreLoginPersistsAndRestores(t *testing.T) {
	slot := NewMemorySlot()
	store := NewStore(&fakeAuthenticator{user: testUser()}, slot)
	store.Restore(context.Background())

	user, err := store.Login(context.Background(), "kai@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	// A fresh store over the same slot picks the identity back up.
	next := NewStore(&fakeAuthenticator{}, slot)
	restored := next.Restore(context.Background())
	require.NotNil(t, restored)
	assert.Equal(t, "u1", restored.ID)
	assert.Equal(t, StateAuthenticated, next.State())
}

func TestStoreRestoreMalformedSlotFailsOpen(t *testing.T) {
	slot := NewMemorySlot()
	require.NoError(t, slot.Save(context.Background(), []byte("{not json")))

	store := NewStore(&fakeAuthenticator{}, slot)
	assert.Nil(t, store.Restore(context.Background()))
	assert.Equal(t, StateAnonymous, store.State())
}

func TestStoreRestoreUnreadableSlotFailsOpen(t *testing.T) {
	store := NewStore(&fakeAuthenticator{}, failingSlot{})
	assert.Nil(t, store.Restore(context.Background()))
	assert.Equal(t, StateAnonymous, store.State())
}

func TestStoreLoginFailureKeepsPriorIdentity(t *testing.T) {
	slot := NewMemorySlot()
	store := NewStore(&fakeAuthenticator{user: testUser()}, slot)
	store.Restore(context.Background())

	_, err := store.Login(context.Background(), "kai@example.com", "pw")
	require.NoError(t, err)

	failing := NewStore(&fakeAuthenticator{err: errors.New("bad credentials")}, slot)
	restored := failing.Restore(context.Background())
	require.NotNil(t, restored)

	_, err = failing.Login(context.Background(), "kai@example.com", "wrong")
	require.Error(t, err)
	current := failing.Current()
	require.NotNil(t, current, "a failed login must not drop the current identity")
	assert.Equal(t, "u1", current.ID)
}

func TestStoreRejectsConcurrentOperations(t *testing.T) {
	auth := &fakeAuthenticator{
		user:    testUser(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := NewStore(auth, NewMemorySlot())
	store.Restore(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := store.Login(context.Background(), "kai@example.com", "pw")
		assert.NoError(t, err)
	}()

	<-auth.started
	_, err := store.Login(context.Background(), "kai@example.com", "pw")
	assert.ErrorIs(t, err, ErrOperationInFlight)
	_, err = store.Register(context.Background(), "kai@example.com", "Kai", domain.RoleTrainee, "pw")
	assert.ErrorIs(t, err, ErrOperationInFlight)

	close(auth.release)
	wg.Wait()

	// With the first operation finished, the next one proceeds.
	auth.started = nil
	auth.release = nil
	_, err = store.Login(context.Background(), "kai@example.com", "pw")
	assert.NoError(t, err)
}

func TestStoreLogoutIdempotentOnSlotFailure(t *testing.T) {
	store := NewStore(&fakeAuthenticator{user: testUser()}, failingSlot{})
	store.Restore(context.Background())

	_, err := store.Login(context.Background(), "kai@example.com", "pw")
	require.NoError(t, err, "slot write failure must not fail the login")
	require.NotNil(t, store.Current())

	store.Logout(context.Background())
	assert.Nil(t, store.Current(), "logout drops the identity even when the slot cannot be cleared")
	store.Logout(context.Background())
	assert.Equal(t, StateAnonymous, store.State())
}

func TestStoreCurrentReturnsCopy(t *testing.T) {
	store := NewStore(&fakeAuthenticator{user: testUser()}, NewMemorySlot())
	store.Restore(context.Background())
	_, err := store.Login(context.Background(), "kai@example.com", "pw")
	require.NoError(t, err)

	first := store.Current()
	first.Name = "mutated"
	assert.Equal(t, "Kai", store.Current().Name)
}
