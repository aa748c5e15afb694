package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
)

// DirectoryStore serves the configuration graph from SQLite.  It only
// reads; administration of users/groups/readers happens out of band.
type DirectoryStore struct {
	conn *sql.DB
}

func NewDirectoryStore(conn *sql.DB) *DirectoryStore {
	return &DirectoryStore{conn: conn}
}

// FindUserByChip keeps the legacy lookup shape: the zero-padded chip is
// matched with LIKE as a prefix against the stored column, which is
// case-insensitive for ASCII.  First row by id wins, as the original
// .first() did.
func (s *DirectoryStore) FindUserByChip(ctx context.Context, chip model.ChipNumber) (model.User, error) {
	var u model.User
	var email, username sql.NullString
	err := s.conn.QueryRowContext(ctx, `
SELECT id, name, second_name, email, username, access, card_number, chip_number
FROM users
WHERE chip_number LIKE ? || '%'
ORDER BY id
LIMIT 1;
`, string(chip)).Scan(&u.ID, &u.Name, &u.SecondName, &email, &username, &u.Access, &u.CardNumber, &u.ChipNumber)
	if err == sql.ErrNoRows {
		return model.User{}, store.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("FindUserByChip query: %w", err)
	}
	u.Email = email.String
	u.Username = username.String
	return u, nil
}

func (s *DirectoryStore) GroupsForUser(ctx context.Context, userID int64) ([]model.Group, error) {
	rows, err := s.conn.QueryContext(ctx, `
SELECT g.id, g.group_name, g.weekdays, g.access_from_s, g.access_to_s
FROM groups g
JOIN user_groups ug ON ug.group_id = g.id
WHERE ug.user_id = ?
ORDER BY g.id;
`, userID)
	if err != nil {
		return nil, fmt.Errorf("GroupsForUser query: %w", err)
	}
	defer rows.Close()

	var out []model.Group
	for rows.Next() {
		var g model.Group
		var days, fromS, toS int64
		if err := rows.Scan(&g.ID, &g.Name, &days, &fromS, &toS); err != nil {
			return nil, fmt.Errorf("GroupsForUser scan: %w", err)
		}
		g.Days = model.WeekdaySet(days)
		g.Window = model.TimeWindow{From: model.TimeOfDay(fromS), To: model.TimeOfDay(toS)}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *DirectoryStore) ReadersForGroup(ctx context.Context, groupID int64) ([]model.ReaderCode, error) {
	rows, err := s.conn.QueryContext(ctx, `
SELECT t.reader_code
FROM timecards t
JOIN group_timecards gt ON gt.timecard_id = t.id
WHERE gt.group_id = ?
ORDER BY t.id;
`, groupID)
	if err != nil {
		return nil, fmt.Errorf("ReadersForGroup query: %w", err)
	}
	defer rows.Close()

	var out []model.ReaderCode
	for rows.Next() {
		var code model.ReaderCode
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("ReadersForGroup scan: %w", err)
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

func (s *DirectoryStore) FindTimecardByCode(ctx context.Context, code model.ReaderCode) (model.Timecard, error) {
	var tc model.Timecard
	err := s.conn.QueryRowContext(ctx, `
SELECT id, name, head, reader_code, push_open
FROM timecards
WHERE reader_code = ?;
`, string(code)).Scan(&tc.ID, &tc.Name, &tc.Head, &tc.ReaderCode, &tc.PushOpen)
	if err == sql.ErrNoRows {
		return model.Timecard{}, store.ErrNotFound
	}
	if err != nil {
		return model.Timecard{}, fmt.Errorf("FindTimecardByCode query: %w", err)
	}
	return tc, nil
}
