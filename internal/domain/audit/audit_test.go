package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"blood-ledger/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory, un ring por instalación)
// -------------------------

type testRepo struct {
	mu    sync.Mutex
	rings map[string]*Ring
	seq   map[string]int64
}

func newTestRepo() *testRepo {
	return &testRepo{rings: map[string]*Ring{}, seq: map[string]int64{}}
}

func (r *testRepo) Append(ctx context.Context, e Entry) (Entry, error) {
	ring, ok := r.rings[e.FacilityID]
	if !ok {
		ring = NewRing(Capacity)
		r.rings[e.FacilityID] = ring
	}
	r.seq[e.FacilityID]++
	e.Seq = r.seq[e.FacilityID]
	ring.Push(e)
	return e, nil
}

func (r *testRepo) ListByFacility(ctx context.Context, facilityID string) ([]Entry, error) {
	ring, ok := r.rings[facilityID]
	if !ok {
		return []Entry{}, nil
	}
	return ring.Items(), nil
}

func (r *testRepo) RunAuditTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(ctx, r)
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []Entry
	fail    bool
}

func (p *recordingPublisher) Publish(ctx context.Context, e Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.entries = append(p.entries, e)
	return nil
}

// -------------------------
// Ring
// -------------------------

func TestRing_EvictsOldestFirst(t *testing.T) {
	r := NewRing(3)

	for i := 1; i <= 3; i++ {
		_, evicted := r.Push(Entry{Seq: int64(i)})
		assert.False(t, evicted)
	}

	old, evicted := r.Push(Entry{Seq: 4})
	require.True(t, evicted)
	assert.Equal(t, int64(1), old.Seq)

	items := r.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int64{2, 3, 4}, seqs(items))
}

func TestRing_CloneIsIndependent(t *testing.T) {
	r := NewRing(2)
	r.Push(Entry{Seq: 1})

	c := r.Clone()
	r.Push(Entry{Seq: 2})
	r.Push(Entry{Seq: 3})

	assert.Equal(t, []int64{1}, seqs(c.Items()))
	assert.Equal(t, []int64{2, 3}, seqs(r.Items()))
}

// -------------------------
// Service
// -------------------------

func TestService_Append_BoundedToCapacity(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < Capacity+7; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		_, err := svc.Append(context.Background(), AppendInput{
			FacilityID:  "lab-1",
			EventType:   EventStockUpdate,
			Description: fmt.Sprintf("credit #%d", i),
		})
		require.NoError(t, err)
	}

	got, err := svc.Read(context.Background(), "lab-1")
	require.NoError(t, err)
	require.Len(t, got, Capacity)

	// más reciente primero: seq 57 ... 8
	assert.Equal(t, int64(Capacity+7), got[0].Seq)
	assert.Equal(t, int64(8), got[len(got)-1].Seq)
}

func TestService_Read_SortsByDateDescending(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	dates := []time.Time{
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		d := d
		svc.now = func() time.Time { return d }
		_, err := svc.Append(context.Background(), AppendInput{FacilityID: "h-1", EventType: EventDonation})
		require.NoError(t, err)
	}

	got, err := svc.Read(context.Background(), "h-1")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, seqs(got))

	// el orden guardado sigue siendo el de inserción
	stored, _ := repo.ListByFacility(context.Background(), "h-1")
	assert.Equal(t, []int64{1, 2, 3}, seqs(stored))
}

func TestService_Append_Validation(t *testing.T) {
	svc := NewService(newTestRepo(), nil, nil)

	_, err := svc.Append(context.Background(), AppendInput{FacilityID: " ", EventType: EventDonation})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Append(context.Background(), AppendInput{FacilityID: "lab-1"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Read(context.Background(), "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestService_Append_ConcurrentKeepsExactBound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Append(context.Background(), AppendInput{FacilityID: "lab-1", EventType: EventStockUpdate})
		}()
	}
	wg.Wait()

	got, err := svc.Read(context.Background(), "lab-1")
	require.NoError(t, err)
	assert.Len(t, got, Capacity)
}

func TestNotifier_PublishesAfterAppend_AndToleratesFailures(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(newTestRepo(), nil, NewNotifier(pub, nil))

	e, err := svc.Append(context.Background(), AppendInput{FacilityID: "lab-1", EventType: EventStockUpdate})
	require.NoError(t, err)
	require.Len(t, pub.entries, 1)
	assert.Equal(t, e, pub.entries[0])

	pub.fail = true
	_, err = svc.Append(context.Background(), AppendInput{FacilityID: "lab-1", EventType: EventStockUpdate})
	assert.NoError(t, err)

	var nilNotifier *Notifier
	assert.NotPanics(t, func() { nilNotifier.Notify(context.Background(), e) })
}

func seqs(entries []Entry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Seq)
	}
	return out
}
