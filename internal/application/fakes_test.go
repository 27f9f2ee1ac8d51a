package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	accommodationDomain "github.com/sharebnb/service-reservation/internal/domain/accommodation"
	memberDomain "github.com/sharebnb/service-reservation/internal/domain/member"
	pictureDomain "github.com/sharebnb/service-reservation/internal/domain/picture"
	reservationDomain "github.com/sharebnb/service-reservation/internal/domain/reservation"
)

// fakeReservationRepo is an in-memory reservation store.
type fakeReservationRepo struct {
	mu             sync.Mutex
	items          map[uuid.UUID]*reservationDomain.Reservation
	failNextUpdate bool
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: make(map[uuid.UUID]*reservationDomain.Reservation)}
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Reservation", id.String())
	}
	return cloneReservation(res), nil
}

func (r *fakeReservationRepo) FindByMemberID(_ context.Context, memberID uuid.UUID, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*reservationDomain.Reservation
	for _, res := range r.items {
		if res.IsOwnedBy(memberID) {
			all = append(all, cloneReservation(res))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().Before(all[j].CreatedAt()) })
	return paginate(all, page, limit), int64(len(all)), nil
}

func (r *fakeReservationRepo) ListAll(_ context.Context, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*reservationDomain.Reservation
	for _, res := range r.items {
		all = append(all, cloneReservation(res))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().Before(all[j].CreatedAt()) })
	return paginate(all, page, limit), int64(len(all)), nil
}

func (r *fakeReservationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, res := range r.items {
		counts[string(res.Status())]++
	}
	return counts, nil
}

func (r *fakeReservationRepo) Save(_ context.Context, res *reservationDomain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[res.ID()]; exists {
		return domain.NewConflictError("reservation already exists")
	}
	r.items[res.ID()] = cloneReservation(res)
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *reservationDomain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNextUpdate {
		r.failNextUpdate = false
		return domain.NewConflictError("reservation was modified concurrently")
	}
	current, ok := r.items[res.ID()]
	if !ok {
		return domain.NewNotFoundError("Reservation", res.ID().String())
	}
	if current.Version() != res.Version()-1 {
		return domain.NewConflictError("reservation was modified concurrently")
	}
	r.items[res.ID()] = cloneReservation(res)
	return nil
}

func (r *fakeReservationRepo) stored(id uuid.UUID) *reservationDomain.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil
	}
	return cloneReservation(res)
}

func paginate(all []*reservationDomain.Reservation, page, limit int) []*reservationDomain.Reservation {
	start := (page - 1) * limit
	if start >= len(all) {
		return nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func cloneReservation(res *reservationDomain.Reservation) *reservationDomain.Reservation {
	return reservationDomain.Reconstruct(
		res.ID(), res.Code(), res.MemberID(), res.AccommodationID(),
		res.Stay(), res.GuestCount(), res.TotalPriceCents(),
		res.Status(), res.PaymentDate(), res.CanceledAt(),
		res.Version(), res.CreatedAt(), res.UpdatedAt(),
	)
}

// fakeLedger is an in-memory booked-day ledger. One lock covers the
// check-then-insert of ReserveRange, mirroring the transactional behavior
// of the real implementation.
type fakeLedger struct {
	mu   sync.Mutex
	days map[dayKey]uuid.UUID // day -> owning reservation
}

type dayKey struct {
	accommodationID uuid.UUID
	date            time.Time
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{days: make(map[dayKey]uuid.UUID)}
}

func (l *fakeLedger) ReserveRange(_ context.Context, accommodationID uuid.UUID, stay reservationDomain.DateRange, ownerReservationID, excludeReservationID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range stay.Days() {
		owner, taken := l.days[dayKey{accommodationID, d}]
		if taken && (excludeReservationID == uuid.Nil || owner != excludeReservationID) {
			return domain.NewOverlapConflictError("requested days are not available")
		}
	}
	for _, d := range stay.Days() {
		l.days[dayKey{accommodationID, d}] = ownerReservationID
	}
	return nil
}

func (l *fakeLedger) MoveRange(_ context.Context, accommodationID uuid.UUID, stay reservationDomain.DateRange, ownerReservationID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range stay.Days() {
		owner, taken := l.days[dayKey{accommodationID, d}]
		if taken && owner != ownerReservationID {
			return domain.NewOverlapConflictError("requested days are not available")
		}
	}
	for k, owner := range l.days {
		if owner == ownerReservationID {
			delete(l.days, k)
		}
	}
	for _, d := range stay.Days() {
		l.days[dayKey{accommodationID, d}] = ownerReservationID
	}
	return nil
}

func (l *fakeLedger) ReleaseRange(_ context.Context, ownerReservationID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, owner := range l.days {
		if owner == ownerReservationID {
			delete(l.days, k)
		}
	}
	return nil
}

func (l *fakeLedger) DaysFor(_ context.Context, ownerReservationID uuid.UUID) ([]time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var dates []time.Time
	for k, owner := range l.days {
		if owner == ownerReservationID {
			dates = append(dates, k.date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (l *fakeLedger) HasOverlap(_ context.Context, accommodationID uuid.UUID, stay reservationDomain.DateRange, excludeReservationID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range stay.Days() {
		owner, taken := l.days[dayKey{accommodationID, d}]
		if taken && (excludeReservationID == uuid.Nil || owner != excludeReservationID) {
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLedger) dayCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.days)
}

// fakeMemberLookup resolves members from a fixed set.
type fakeMemberLookup struct {
	members map[uuid.UUID]*memberDomain.Member
}

func newFakeMemberLookup(members ...*memberDomain.Member) *fakeMemberLookup {
	m := make(map[uuid.UUID]*memberDomain.Member, len(members))
	for _, mem := range members {
		m[mem.ID()] = mem
	}
	return &fakeMemberLookup{members: m}
}

func (f *fakeMemberLookup) FindByID(_ context.Context, id uuid.UUID) (*memberDomain.Member, error) {
	mem, ok := f.members[id]
	if !ok {
		return nil, domain.NewNotFoundError("Member", id.String())
	}
	return mem, nil
}

// fakeAccommodationLookup resolves accommodations from a fixed set.
type fakeAccommodationLookup struct {
	accommodations map[uuid.UUID]*accommodationDomain.Accommodation
}

func newFakeAccommodationLookup(accs ...*accommodationDomain.Accommodation) *fakeAccommodationLookup {
	m := make(map[uuid.UUID]*accommodationDomain.Accommodation, len(accs))
	for _, acc := range accs {
		m[acc.ID()] = acc
	}
	return &fakeAccommodationLookup{accommodations: m}
}

func (f *fakeAccommodationLookup) FindByID(_ context.Context, id uuid.UUID) (*accommodationDomain.Accommodation, error) {
	acc, ok := f.accommodations[id]
	if !ok {
		return nil, domain.NewNotFoundError("Accommodation", id.String())
	}
	return acc, nil
}

func (f *fakeAccommodationLookup) FindByHostID(_ context.Context, hostID uuid.UUID) ([]*accommodationDomain.Accommodation, error) {
	var result []*accommodationDomain.Accommodation
	for _, acc := range f.accommodations {
		if acc.IsOwnedBy(hostID) {
			result = append(result, acc)
		}
	}
	return result, nil
}

// fakePictureRepo is an in-memory picture store.
type fakePictureRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*pictureDomain.Picture
}

func newFakePictureRepo() *fakePictureRepo {
	return &fakePictureRepo{items: make(map[uuid.UUID]*pictureDomain.Picture)}
}

func (r *fakePictureRepo) FindByID(_ context.Context, id uuid.UUID) (*pictureDomain.Picture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pic, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Picture", id.String())
	}
	return pic, nil
}

func (r *fakePictureRepo) FindByAccommodationID(_ context.Context, accommodationID uuid.UUID) ([]*pictureDomain.Picture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*pictureDomain.Picture
	for _, pic := range r.items {
		if pic.AccommodationID() == accommodationID {
			result = append(result, pic)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt().Before(result[j].CreatedAt()) })
	return result, nil
}

func (r *fakePictureRepo) Save(_ context.Context, pic *pictureDomain.Picture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[pic.ID()] = pic
	return nil
}

func (r *fakePictureRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("Picture", id.String())
	}
	delete(r.items, id)
	return nil
}
