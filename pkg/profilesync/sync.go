// Package profilesync reconciles client-submitted child rows of a profile
// (education, work experience, skills, ...) with their persisted state.
// One engine serves all child tables; per-table knowledge lives in the
// column registry and a small Descriptor per entity type.
package profilesync

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Row is the capability every synchronizable child record provides.
// An id of 0 means the row has never been persisted.
type Row interface {
	RowID() uint
	SetRowID(uint)
}

// Descriptor binds an entity type to its table. Values must return the
// row's bind values in registry column order, excluding profile_id (the
// engine supplies it on insert; it is immutable afterwards).
type Descriptor[T Row] struct {
	Table  string
	Values func(T) []any
}

// Packet is what the editor submits for one entity section.
type Packet[T Row] struct {
	Upserts   []T    `json:"upserts"`
	DeleteIDs []uint `json:"deleteIds"`
	IsValid   bool   `json:"isValid"`
}

// Apply inserts every row with id 0 and updates every row with a real id,
// all against the transaction handle it is given. Generated ids are set on
// the rows and the slice is returned so callers can relay them to the
// client. Deletion is not Apply's job: rows disappear only through the
// caller's explicit delete-id pass, never by being absent from rows.
//
// Apply opens no transaction of its own; any SQL error propagates so the
// enclosing transaction is the single rollback point.
func Apply[T Row](tx *gorm.DB, d Descriptor[T], rows []T, profileID uint) ([]T, error) {
	cols, err := Columns(d.Table)
	if err != nil {
		return nil, err
	}

	inserted := make(map[int]bool, len(rows))
	for i, row := range rows {
		if row.RowID() != 0 {
			continue
		}
		inserted[i] = true
		vals := d.Values(row)
		if len(vals) != len(cols)-1 {
			return nil, fmt.Errorf("profilesync: %s descriptor returned %d values, want %d", d.Table, len(vals), len(cols)-1)
		}
		placeholders := make([]string, len(cols))
		for i := range cols {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		sql := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			d.Table, strings.Join(cols, ","), strings.Join(placeholders, ","),
		)
		args := append([]any{profileID}, vals...)
		var id uint
		if err := tx.Raw(sql, args...).Row().Scan(&id); err != nil {
			return nil, fmt.Errorf("insert %s: %w", d.Table, err)
		}
		row.SetRowID(id)
	}

	for i, row := range rows {
		if inserted[i] || row.RowID() == 0 {
			continue
		}
		vals := d.Values(row)
		if len(vals) != len(cols)-1 {
			return nil, fmt.Errorf("profilesync: %s descriptor returned %d values, want %d", d.Table, len(vals), len(cols)-1)
		}
		sets := make([]string, 0, len(cols)-1)
		for i, c := range cols[1:] {
			sets = append(sets, fmt.Sprintf("%s=$%d", c, i+1))
		}
		sql := fmt.Sprintf(
			"UPDATE %s SET %s, updated_at=NOW() WHERE id=$%d",
			d.Table, strings.Join(sets, ","), len(vals)+1,
		)
		args := append(vals, any(row.RowID()))
		if res := tx.Exec(sql, args...); res.Error != nil {
			return nil, fmt.Errorf("update %s: %w", d.Table, res.Error)
		}
	}

	return rows, nil
}

// DeleteIDs removes the explicitly marked rows, scoped to the owning
// profile so a stray id can never cross into another portfolio.
func DeleteIDs(tx *gorm.DB, table string, ids []uint, profileID uint) error {
	if _, err := Columns(table); err != nil {
		return err
	}
	for _, id := range ids {
		sql := fmt.Sprintf("DELETE FROM %s WHERE id=$1 AND profile_id=$2", table)
		if res := tx.Exec(sql, id, profileID); res.Error != nil {
			return fmt.Errorf("delete %s: %w", table, res.Error)
		}
	}
	return nil
}
