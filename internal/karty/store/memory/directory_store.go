package memory

import (
	"context"
	"sync"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
)

// Directory is an in-memory configuration graph for tests and dev runs.
// Populate it with the Add/Link helpers before serving lookups.
type Directory struct {
	mu           sync.RWMutex
	users        []model.User
	groups       map[int64]model.Group
	timecards    map[model.ReaderCode]model.Timecard
	userGroups   map[int64][]int64 // user id -> group ids, membership order
	groupReaders map[int64][]model.ReaderCode
}

func NewDirectory() *Directory {
	return &Directory{
		groups:       make(map[int64]model.Group),
		timecards:    make(map[model.ReaderCode]model.Timecard),
		userGroups:   make(map[int64][]int64),
		groupReaders: make(map[int64][]model.ReaderCode),
	}
}

func (d *Directory) AddUser(u model.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, u)
}

func (d *Directory) AddGroup(g model.Group) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.groups[g.ID] = g
}

func (d *Directory) AddTimecard(tc model.Timecard) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timecards[tc.ReaderCode] = tc
}

func (d *Directory) LinkUserGroup(userID, groupID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userGroups[userID] = append(d.userGroups[userID], groupID)
}

func (d *Directory) LinkGroupReader(groupID int64, code model.ReaderCode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.groupReaders[groupID] = append(d.groupReaders[groupID], code)
}

func (d *Directory) FindUserByChip(_ context.Context, chip model.ChipNumber) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if model.MatchesChip(u.ChipNumber, chip) {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (d *Directory) GroupsForUser(_ context.Context, userID int64) ([]model.Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []model.Group
	for _, gid := range d.userGroups[userID] {
		if g, ok := d.groups[gid]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (d *Directory) ReadersForGroup(_ context.Context, groupID int64) ([]model.ReaderCode, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	codes := d.groupReaders[groupID]
	out := make([]model.ReaderCode, len(codes))
	copy(out, codes)
	return out, nil
}

func (d *Directory) FindTimecardByCode(_ context.Context, code model.ReaderCode) (model.Timecard, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tc, ok := d.timecards[code]
	if !ok {
		return model.Timecard{}, store.ErrNotFound
	}
	return tc, nil
}
