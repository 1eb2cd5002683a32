package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jansunwai/jansunwai-backend/internal/auth/jwt"
	"github.com/jansunwai/jansunwai-backend/internal/user/repository"
	"github.com/jansunwai/jansunwai-backend/internal/user/service"
	"github.com/jansunwai/jansunwai-backend/pkg/config"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
	"github.com/jansunwai/jansunwai-backend/pkg/testutil"
)

// recordingSink captures published user events
type recordingSink struct {
	registered []*messaging.UserRegisteredEvent
	updated    []*messaging.UserUpdatedEvent
}

func (r *recordingSink) UserRegistered(_ context.Context, e *messaging.UserRegisteredEvent) {
	r.registered = append(r.registered, e)
}

func (r *recordingSink) UserUpdated(_ context.Context, e *messaging.UserUpdatedEvent) {
	r.updated = append(r.updated, e)
}

func newTestManager() *jwt.Manager {
	return jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret-at-least-32-characters!!",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "jansunwai-test",
	})
}

func TestRegisterPublishesEvent(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO users").
		WithArgs(testutil.AnyUUID{}, "ramesh@example.in", sqlmock.AnyArg(), "Ramesh Kumar",
			nil, "citizen", nil, nil, nil, true).
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(time.Now(), time.Now()))

	sink := &recordingSink{}
	svc := service.NewUserService(
		repository.NewUserRepository(mockDB.WrapDB()),
		newTestManager(),
		sink,
		logger.New("test", "test"),
	)

	profile, err := svc.Register(context.Background(), &service.RegisterRequest{
		Email:    "ramesh@example.in",
		Password: "password123",
		Name:     "Ramesh Kumar",
	})
	require.NoError(t, err)
	assert.Equal(t, "ramesh@example.in", profile.Email)
	assert.Equal(t, "citizen", profile.Role)

	require.Len(t, sink.registered, 1)
	assert.Equal(t, profile.ID, sink.registered[0].UserID)

	mockDB.ExpectationsWereMet(t)
}

func TestLoginSuccess(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	now := time.Now()
	mockDB.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("sunita@example.in").
		WillReturnRows(testutil.MockRows(
			"id", "email", "password_hash", "name", "phone", "role", "state", "district",
			"department_code", "is_active", "created_at", "updated_at", "last_login_at",
		).AddRow(
			"3d9a2f8e-1111-4bbb-9ccc-222233334444", "sunita@example.in", string(hash),
			"Sunita Sharma", nil, "citizen", nil, nil, nil, true, now, now, nil,
		))
	mockDB.ExpectExec("UPDATE users SET last_login_at").
		WithArgs("3d9a2f8e-1111-4bbb-9ccc-222233334444", testutil.AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := service.NewUserService(
		repository.NewUserRepository(mockDB.WrapDB()),
		newTestManager(),
		&recordingSink{},
		logger.New("test", "test"),
	)

	resp, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    "sunita@example.in",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "sunita@example.in", resp.User.Email)

	mockDB.ExpectationsWereMet(t)
}

func TestLoginWrongPassword(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	now := time.Now()
	mockDB.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("sunita@example.in").
		WillReturnRows(testutil.MockRows(
			"id", "email", "password_hash", "name", "phone", "role", "state", "district",
			"department_code", "is_active", "created_at", "updated_at", "last_login_at",
		).AddRow(
			"3d9a2f8e-1111-4bbb-9ccc-222233334444", "sunita@example.in", string(hash),
			"Sunita Sharma", nil, "citizen", nil, nil, nil, true, now, now, nil,
		))

	svc := service.NewUserService(
		repository.NewUserRepository(mockDB.WrapDB()),
		newTestManager(),
		&recordingSink{},
		logger.New("test", "test"),
	)

	_, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    "sunita@example.in",
		Password: "wrong-password",
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("nobody@example.in").
		WillReturnRows(testutil.MockRows("id"))

	svc := service.NewUserService(
		repository.NewUserRepository(mockDB.WrapDB()),
		newTestManager(),
		&recordingSink{},
		logger.New("test", "test"),
	)

	_, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    "nobody@example.in",
		Password: "password123",
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestLoginDisabledAccount(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	now := time.Now()
	mockDB.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("vijay@example.in").
		WillReturnRows(testutil.MockRows(
			"id", "email", "password_hash", "name", "phone", "role", "state", "district",
			"department_code", "is_active", "created_at", "updated_at", "last_login_at",
		).AddRow(
			"3d9a2f8e-2222-4bbb-9ccc-222233334444", "vijay@example.in", string(hash),
			"Vijay Singh", nil, "citizen", nil, nil, nil, false, now, now, nil,
		))

	svc := service.NewUserService(
		repository.NewUserRepository(mockDB.WrapDB()),
		newTestManager(),
		&recordingSink{},
		logger.New("test", "test"),
	)

	_, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    "vijay@example.in",
		Password: "password123",
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestUpdateProfileNoChangesSkipsWrite(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	mockDB.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("3d9a2f8e-1111-4bbb-9ccc-222233334444").
		WillReturnRows(testutil.MockRows(
			"id", "email", "password_hash", "name", "phone", "role", "state", "district",
			"department_code", "is_active", "created_at", "updated_at", "last_login_at",
		).AddRow(
			"3d9a2f8e-1111-4bbb-9ccc-222233334444", "sunita@example.in", "hash",
			"Sunita Sharma", nil, "citizen", nil, nil, nil, true, now, now, nil,
		))

	sink := &recordingSink{}
	svc := service.NewUserService(
		repository.NewUserRepository(mockDB.WrapDB()),
		newTestManager(),
		sink,
		logger.New("test", "test"),
	)

	profile, err := svc.UpdateProfile(context.Background(), "3d9a2f8e-1111-4bbb-9ccc-222233334444", &service.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Sunita Sharma", profile.Name)
	assert.Empty(t, sink.updated)

	mockDB.ExpectationsWereMet(t)
}
