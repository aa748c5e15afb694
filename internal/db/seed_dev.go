package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SeedDev installs a minimal working configuration graph for local
// development: one user, one weekday group and one reader, linked up so a
// scan of chip 42 at reader R1 during working hours is allowed.
// Idempotent; safe to run on every dev start.
func SeedDev(ctx context.Context, conn *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	if _, err := conn.ExecContext(ctx, `
INSERT INTO users(name, second_name, access, card_number, chip_number, created_at_ms, updated_at_ms)
SELECT 'Jan', 'Novak', 'A', 'C100', '0000000042', ?, ?
WHERE NOT EXISTS (SELECT 1 FROM users WHERE chip_number = '0000000042');
`, now, now); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	// weekdays 0x3e = Mon..Fri; window 08:00:00..17:00:00.
	if _, err := conn.ExecContext(ctx, `
INSERT INTO groups(group_name, weekdays, access_from_s, access_to_s, created_at_ms, updated_at_ms)
SELECT 'Day', 62, 28800, 61200, ?, ?
WHERE NOT EXISTS (SELECT 1 FROM groups WHERE group_name = 'Day');
`, now, now); err != nil {
		return fmt.Errorf("seed group: %w", err)
	}

	if _, err := conn.ExecContext(ctx, `
INSERT INTO timecards(name, head, reader_code, push_open, created_at_ms, updated_at_ms)
SELECT 'Main Entrance', 'front', 'R1', 'relay-1', ?, ?
WHERE NOT EXISTS (SELECT 1 FROM timecards WHERE reader_code = 'R1');
`, now, now); err != nil {
		return fmt.Errorf("seed timecard: %w", err)
	}

	if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO user_groups(user_id, group_id)
SELECT u.id, g.id FROM users u, groups g
WHERE u.chip_number = '0000000042' AND g.group_name = 'Day';
`); err != nil {
		return fmt.Errorf("seed user_groups: %w", err)
	}

	if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO group_timecards(group_id, timecard_id)
SELECT g.id, t.id FROM groups g, timecards t
WHERE g.group_name = 'Day' AND t.reader_code = 'R1';
`); err != nil {
		return fmt.Errorf("seed group_timecards: %w", err)
	}

	return nil
}
