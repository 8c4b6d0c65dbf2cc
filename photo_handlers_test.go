package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pb01/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/portfolio/:id/photo", servePhotoHandler)
	return r
}

func writeTestPhoto(t *testing.T, name string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROFILE_PHOTO_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("jpeg-bytes"), 0644))
}

func profileRow(userID uint, isPublic bool, photoPath any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "is_public", "is_deleted", "photo_path"}).
		AddRow(4, userID, isPublic, false, photoPath)
}

func TestServePhotoPublicProfile(t *testing.T) {
	mock := setupServiceMockDB(t)
	writeTestPhoto(t, "abc.jpg")

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRow(7, true, "abc.jpg"))

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/portfolio/4/photo", nil)
	photoTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServePhotoPrivateNeedsToken(t *testing.T) {
	mock := setupServiceMockDB(t)
	writeTestPhoto(t, "abc.jpg")

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRow(7, false, "abc.jpg"))

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/portfolio/4/photo", nil)
	photoTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServePhotoPrivateOwner(t *testing.T) {
	mock := setupServiceMockDB(t)
	writeTestPhoto(t, "abc.jpg")
	jwtSecret = []byte("test-secret")

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRow(7, false, "abc.jpg"))

	token, err := issueAccessToken(&models.User{ID: 7, Email: "owner@example.com"}, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/portfolio/4/photo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	photoTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}

func TestServePhotoPrivateStranger(t *testing.T) {
	mock := setupServiceMockDB(t)
	writeTestPhoto(t, "abc.jpg")
	jwtSecret = []byte("test-secret")

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRow(7, false, "abc.jpg"))

	token, err := issueAccessToken(&models.User{ID: 8, Email: "other@example.com"}, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/portfolio/4/photo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	photoTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServePhotoNoPhotoSet(t *testing.T) {
	mock := setupServiceMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(profileRow(7, true, nil))

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/portfolio/4/photo", nil)
	photoTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
