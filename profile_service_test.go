package main

import (
	"errors"
	"regexp"
	"testing"

	"pb01/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupServiceMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	db = gdb
	return mock
}

func TestSavePortfolioRejectsBadDateOrder(t *testing.T) {
	mock := setupServiceMockDB(t)

	payload := &savePayload{}
	payload.Work.Upserts = []*models.Work{{
		Company:    "Acme",
		Position:   "Engineer",
		StartMonth: "2024-05",
		EndMonth:   "2024-01",
		IsPresent:  false,
	}}

	_, err := savePortfolio(1, payload)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "End Month must be later or equal to Start Month", verr.Rule)
	// nothing may be written before validation passes
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePortfolioCertificateDateRule(t *testing.T) {
	mock := setupServiceMockDB(t)

	payload := &savePayload{}
	payload.Certificate.Upserts = []*models.Certificate{{
		Title:      "Cert",
		IssueDate:  "2023-06",
		ExpiryDate: "2022-01",
	}}

	_, err := savePortfolio(1, payload)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Expiry Date must be later or equal to Issue Date", verr.Rule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePortfolioPresentClearsEndMonth(t *testing.T) {
	mock := setupServiceMockDB(t)

	updateWorkSQL := "UPDATE pf_work_experience SET company=$1,position=$2,start_month=$3,end_month=$4,description=$5,remark=$6,location=$7,is_present=$8, updated_at=NOW() WHERE id=$9"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateWorkSQL)).
		WithArgs("Acme", "Engineer", "2020-01-01", nil, "", "", "", true, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload := &savePayload{}
	payload.Work.Upserts = []*models.Work{{
		ID:         5,
		Company:    "Acme",
		Position:   "Engineer",
		StartMonth: "2020-01",
		EndMonth:   "2024-05", // stale; the ongoing flag wins
		IsPresent:  true,
	}}

	result, err := savePortfolio(1, payload)
	require.NoError(t, err)
	require.Len(t, result.Work, 1)
	assert.Equal(t, models.Date(""), result.Work[0].EndMonth)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePortfolioDeletesBeforeUpserts(t *testing.T) {
	mock := setupServiceMockDB(t)

	deleteEduSQL := "DELETE FROM pf_education WHERE id=$1 AND profile_id=$2"
	insertEduSQL := "INSERT INTO pf_education (profile_id,institution,degree,field_of_study,start_month,end_month,remark,location) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteEduSQL)).
		WithArgs(3, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertEduSQL)).
		WithArgs(1, "MIT", "BSc", "CS", "2018-09-01", "2022-06-01", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(44))
	mock.ExpectCommit()

	payload := &savePayload{}
	payload.Education.DeleteIDs = []uint{3}
	payload.Education.Upserts = []*models.Education{{
		Institution:  "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		StartMonth:   "2018-09",
		EndMonth:     "2022-06",
	}}

	result, err := savePortfolio(1, payload)
	require.NoError(t, err)
	require.Len(t, result.Education, 1)
	assert.Equal(t, uint(44), result.Education[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePortfolioRollsBackOnMidEntityFailure(t *testing.T) {
	mock := setupServiceMockDB(t)

	insertEduSQL := "INSERT INTO pf_education (profile_id,institution,degree,field_of_study,start_month,end_month,remark,location) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id"
	updateSkillSQL := "UPDATE pf_skill SET skill=$1,level=$2,remark=$3, updated_at=NOW() WHERE id=$4"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertEduSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
	mock.ExpectExec(regexp.QuoteMeta(updateSkillSQL)).
		WithArgs("Go", "Expert", "", 9).
		WillReturnError(errors.New("value too long for column"))
	mock.ExpectRollback()

	payload := &savePayload{}
	payload.Education.Upserts = []*models.Education{{Institution: "MIT"}}
	payload.Skill.Upserts = []*models.Skill{{ID: 9, Skill: "Go", Level: "Expert"}}

	_, err := savePortfolio(1, payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value too long")
	// the rollback expectation proves the education insert did not commit
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidatePayloadAcceptsEqualBounds(t *testing.T) {
	payload := &savePayload{}
	payload.Education.Upserts = []*models.Education{{
		StartMonth: "2020-01",
		EndMonth:   "2020-01-01", // mixed widths compare equal after normalization
	}}
	require.NoError(t, validatePayload(payload))
}
