package profilesync

import (
	"errors"
	"fmt"
)

// ErrUnknownTable is returned when a table name was never registered.
// Hitting it means a caller bug, not bad user input.
var ErrUnknownTable = errors.New("unknown table")

// tableColumns maps each child table to its insertable/updatable columns.
// profile_id comes first; id, created_at and updated_at are handled by the
// engine itself. The slice order is the positional-parameter order of every
// generated statement, so entries must never be reordered.
var tableColumns = map[string][]string{
	"pf_education": {
		"profile_id",
		"institution",
		"degree",
		"field_of_study",
		"start_month",
		"end_month",
		"remark",
		"location",
	},
	"pf_work_experience": {
		"profile_id",
		"company",
		"position",
		"start_month",
		"end_month",
		"description",
		"remark",
		"location",
		"is_present",
	},
	"pf_language": {
		"profile_id",
		"language",
		"proficiency",
		"remark",
	},
	"pf_skill": {
		"profile_id",
		"skill",
		"level",
		"remark",
	},
	"pf_certificate": {
		"profile_id",
		"title",
		"issuer",
		"issue_date",
		"expiry_date",
		"remark",
	},
	"pf_project": {
		"profile_id",
		"title",
		"description",
		"link",
		"remark",
	},
	"pf_volunteer_experience": {
		"profile_id",
		"organization",
		"role",
		"start_month",
		"end_month",
		"description",
		"remark",
		"is_present",
	},
	"pf_social_link": {
		"profile_id",
		"platform",
		"url",
		"remark",
	},
}

// Columns returns the registered column list for table.
func Columns(table string) ([]string, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return cols, nil
}
