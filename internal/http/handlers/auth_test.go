package handlers

import (
	"net/http"
	"testing"
	"time"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/repositories"
	"abarto-backend/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var adminsRes = domain.Resource{
	Name:     "admins",
	Singular: "admin",
	Table:    "admins",
	Fields: []domain.Field{
		{Name: "first_name", Type: domain.FieldString, Required: true},
		{Name: "last_name", Type: domain.FieldString, Required: true},
		{Name: "email", Type: domain.FieldString, Required: true, Unique: true},
		{Name: "phone", Type: domain.FieldString},
		{Name: "position", Type: domain.FieldString},
		{Name: "role", Type: domain.FieldString},
		{Name: "password", Column: "password_hash", Type: domain.FieldString, Required: true, Secret: true},
	},
	DefaultSort:  "last_name",
	DefaultOrder: "asc",
	Timestamps:   true,
}

func authRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repositories.NewResourceRepository(db, adminsRes)
	auth := services.NewAuthService(repo, "handler-test-secret", time.Hour)
	h := NewAuthHandler(auth, services.NewResourceService(repo))

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r, mock
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	r, mock := authRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, password_hash FROM admins WHERE email = \? LIMIT 1`).
		WithArgs("ada@abarto.example").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(1), string(hash)))
	mock.ExpectQuery(`FROM admins WHERE id = \? LIMIT 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "position", "role", "created_at", "updated_at"}).
			AddRow(int64(1), "Ada", "Lovelace", "ada@abarto.example", "", "", "admin", nil, nil))

	w := perform(r, http.MethodPost, "/api/auth/login", `{"email":"Ada@Abarto.Example","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode(t, w)
	require.Equal(t, true, got["success"])
	require.NotEmpty(t, got["token"])

	principal := got["data"].(map[string]any)
	require.Equal(t, "ada@abarto.example", principal["email"])
	_, hasSecret := principal["password"]
	require.False(t, hasSecret)
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	r, mock := authRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, password_hash FROM admins WHERE email = \? LIMIT 1`).
		WithArgs("ada@abarto.example").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(1), string(hash)))

	w := perform(r, http.MethodPost, "/api/auth/login", `{"email":"ada@abarto.example","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	r, mock := authRouter(t)

	mock.ExpectExec(`INSERT INTO admins`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ada@abarto.example' for key 'admins.email'"})

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@abarto.example","password":"s3cret"}`
	w := perform(r, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, decode(t, w)["error"], "email")
}

func TestRegisterMissingFieldsIs400(t *testing.T) {
	r, _ := authRouter(t)

	w := perform(r, http.MethodPost, "/api/auth/register", `{"email":"x@y.z"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	msg := decode(t, w)["error"].(string)
	require.Contains(t, msg, "first_name is required")
	require.Contains(t, msg, "password is required")
}
