package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/model"
	"github.com/mediatrack/media-billboard/internal/queue"
	"github.com/mediatrack/media-billboard/internal/repository"
)

// noopBoardStore satisfies billboard.Store; the service only needs the
// engine to accept RecordTicketSale calls.
type noopBoardStore struct {
	increments int
}

func (s *noopBoardStore) IncrementEntry(context.Context, uint64, int, int, uint64) (bool, error) {
	s.increments++
	return true, nil
}
func (s *noopBoardStore) InsertEntry(context.Context, *model.BillboardEntry) error { return nil }
func (s *noopBoardStore) PartitionCount(context.Context, int, int, model.MediaType) (int, error) {
	return 1, nil
}
func (s *noopBoardStore) ListPartition(context.Context, int, int, model.MediaType) ([]billboard.Entry, error) {
	return nil, nil
}
func (s *noopBoardStore) UpdateRank(context.Context, uint64, int) error { return nil }
func (s *noopBoardStore) SeedCandidates(context.Context, model.MediaType) ([]model.Media, error) {
	return nil, nil
}
func (s *noopBoardStore) FirstAvailableVenue(context.Context, uint64) (*model.Venue, error) {
	return nil, nil
}
func (s *noopBoardStore) IncrementViewCount(context.Context, uint64) error { return nil }

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error   { t.committed = true; return nil }
func (t *fakeTx) Rollback() error { t.rolledBack = true; return nil }

// fakePurchaseStore holds purchase state in memory and mimics the
// conditional inventory decrements of the SQL implementation.
type fakePurchaseStore struct {
	media    map[uint64]*model.Media
	venues   map[uint64]*model.Venue
	attached map[[2]uint64]bool

	tx      *fakeTx
	tickets []*model.Ticket
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{
		media:    map[uint64]*model.Media{},
		venues:   map[uint64]*model.Venue{},
		attached: map[[2]uint64]bool{},
	}
}

func (f *fakePurchaseStore) Begin(context.Context) (repository.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}

func (f *fakePurchaseStore) MediaByID(_ context.Context, id uint64) (*model.Media, error) {
	m, ok := f.media[id]
	if !ok {
		return nil, repository.ErrMediaNotFound
	}
	return m, nil
}

func (f *fakePurchaseStore) VenueAttached(_ context.Context, mediaID, venueID uint64) (bool, error) {
	return f.attached[[2]uint64{mediaID, venueID}], nil
}

func (f *fakePurchaseStore) VenueForUpdate(_ context.Context, _ repository.Tx, venueID uint64) (*model.Venue, error) {
	v, ok := f.venues[venueID]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakePurchaseStore) DecrementSeats(_ context.Context, _ repository.Tx, venueID uint64, qty int) error {
	v := f.venues[venueID]
	if v.AvailableSeats == nil || *v.AvailableSeats < qty {
		return repository.ErrInsufficientInventory
	}
	*v.AvailableSeats -= qty
	return nil
}

func (f *fakePurchaseStore) DecrementStock(_ context.Context, _ repository.Tx, venueID uint64, qty int) error {
	v := f.venues[venueID]
	if v.BookStock == nil || *v.BookStock < qty {
		return repository.ErrInsufficientInventory
	}
	*v.BookStock -= qty
	return nil
}

func (f *fakePurchaseStore) InsertTicket(_ context.Context, _ repository.Tx, t *model.Ticket) (uint64, error) {
	cp := *t
	cp.ID = uint64(len(f.tickets) + 1)
	f.tickets = append(f.tickets, &cp)
	return cp.ID, nil
}

func (f *fakePurchaseStore) IncrementMediaTickets(_ context.Context, _ repository.Tx, mediaID uint64, qty int) error {
	f.media[mediaID].TotalTickets += uint64(qty)
	return nil
}

var _ PurchaseStore = (*fakePurchaseStore)(nil)

func cinemaFixture() *fakePurchaseStore {
	store := newFakePurchaseStore()
	seats := 10
	capacity := 50
	store.media[1] = &model.Media{ID: 1, Title: "heist movie", Type: model.MediaTypeMovie}
	store.venues[2] = &model.Venue{
		ID: 2, Name: "grand hall", Type: model.VenueCinema, Price: 8,
		Capacity: &capacity, AvailableSeats: &seats, IsAvailable: true,
	}
	store.attached[[2]uint64{1, 2}] = true
	return store
}

func newService(store PurchaseStore, publish Publisher) *TicketService {
	return NewTicketService(store, billboard.New(&noopBoardStore{}, 5), publish)
}

func TestPurchaseCinema(t *testing.T) {
	store := cinemaFixture()
	var published []queue.TicketPurchasedEvent
	svc := newService(store, func(_ context.Context, ev queue.TicketPurchasedEvent) error {
		published = append(published, ev)
		return nil
	})

	ticket, err := svc.Purchase(context.Background(), 42, 1, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), ticket.UserID)
	assert.Equal(t, 3, ticket.Quantity)
	assert.InDelta(t, 24.0, ticket.TotalPrice, 1e-9)
	assert.Equal(t, model.TicketCompleted, ticket.Status)
	assert.NotEmpty(t, ticket.Reference)

	assert.Equal(t, 7, *store.venues[2].AvailableSeats)
	assert.Equal(t, uint64(3), store.media[1].TotalTickets)
	assert.True(t, store.tx.committed)
	assert.False(t, store.tx.rolledBack)

	require.Len(t, published, 1)
	assert.Equal(t, ticket.Reference, published[0].Reference)
	assert.Equal(t, "heist movie", published[0].MediaTitle)
}

func TestPurchaseBookstore(t *testing.T) {
	store := newFakePurchaseStore()
	stock := 5
	store.media[1] = &model.Media{ID: 1, Title: "long novel", Type: model.MediaTypeBook}
	store.venues[3] = &model.Venue{
		ID: 3, Name: "corner shop", Type: model.VenueBookstore, Price: 15,
		BookStock: &stock, IsAvailable: true,
	}
	store.attached[[2]uint64{1, 3}] = true
	svc := newService(store, nil)

	ticket, err := svc.Purchase(context.Background(), 7, 1, 3, 2)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, ticket.TotalPrice, 1e-9)
	assert.Equal(t, 3, *store.venues[3].BookStock)
}

func TestPurchaseInvalidQuantity(t *testing.T) {
	svc := newService(cinemaFixture(), nil)
	_, err := svc.Purchase(context.Background(), 1, 1, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.Purchase(context.Background(), 1, 1, 2, -4)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestPurchaseUnknownMedia(t *testing.T) {
	svc := newService(cinemaFixture(), nil)
	_, err := svc.Purchase(context.Background(), 1, 99, 2, 1)
	assert.ErrorIs(t, err, repository.ErrMediaNotFound)
}

func TestPurchaseVenueNotAttached(t *testing.T) {
	store := cinemaFixture()
	store.attached = map[[2]uint64]bool{}
	svc := newService(store, nil)

	_, err := svc.Purchase(context.Background(), 1, 1, 2, 1)
	assert.ErrorIs(t, err, repository.ErrVenueNotAttached)
	assert.Nil(t, store.tx, "no transaction should start for a detached venue")
}

func TestPurchaseVenueUnavailable(t *testing.T) {
	store := cinemaFixture()
	store.venues[2].IsAvailable = false
	svc := newService(store, nil)

	_, err := svc.Purchase(context.Background(), 1, 1, 2, 1)
	assert.ErrorIs(t, err, repository.ErrVenueUnavailable)
	require.NotNil(t, store.tx)
	assert.True(t, store.tx.rolledBack)
	assert.False(t, store.tx.committed)
}

func TestPurchaseInsufficientInventory(t *testing.T) {
	store := cinemaFixture()
	svc := newService(store, nil)

	_, err := svc.Purchase(context.Background(), 1, 1, 2, 11)
	assert.ErrorIs(t, err, repository.ErrInsufficientInventory)
	assert.True(t, store.tx.rolledBack)
	assert.Empty(t, store.tickets)
	assert.Equal(t, uint64(0), store.media[1].TotalTickets)
}
