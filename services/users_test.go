package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andrewpaige1/thoughtcatcher-api/auth"
	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func register(t *testing.T, svc *Users, username, email, password string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{Username: username, Email: email, Password: password})
	require.NoError(t, err)
}

func TestUsers_RegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsers(db, fakeTokens{}, time.Hour)
	ctx := context.Background()

	token, err := svc.Register(ctx, RegisterInput{Username: "john_doe", Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "john@example.com").First(&stored).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "password123"))
	assert.Equal(t, models.DefaultPreferences(), stored.Preferences)
	assert.Nil(t, stored.LastLogin)

	token, err = svc.Login(ctx, LoginInput{Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "token-"+stored.ID, token)

	require.NoError(t, db.First(&stored, "id = ?", stored.ID).Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestUsers_RegisterDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsers(db, fakeTokens{}, time.Hour)
	register(t, svc, "john_doe", "john@example.com", "password123")

	tests := []struct {
		name  string
		in    RegisterInput
		msg   string
		param string
	}{
		{
			name: "same email",
			in:   RegisterInput{Username: "someone_else", Email: "john@example.com", Password: "password123"},
			msg:  "User already exists",
		},
		{
			name:  "same username",
			in:    RegisterInput{Username: "john_doe", Email: "other@example.com", Password: "password123"},
			msg:   "Username is already taken",
			param: "username",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.Errors[0].Msg)
			assert.Equal(t, tt.param, verr.Errors[0].Param)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUsers_RegisterValidation(t *testing.T) {
	svc := NewUsers(newTestDB(t), fakeTokens{}, time.Hour)

	tests := []struct {
		name  string
		in    RegisterInput
		param string
	}{
		{name: "short username", in: RegisterInput{Username: "jo", Email: "jo@example.com", Password: "password123"}, param: "username"},
		{name: "bad email", in: RegisterInput{Username: "john", Email: "not-an-email", Password: "password123"}, param: "email"},
		{name: "short password", in: RegisterInput{Username: "john", Email: "john@example.com", Password: "12345"}, param: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.param, verr.Errors[0].Param)
		})
	}
}

func TestUsers_LoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsers(db, fakeTokens{}, time.Hour)
	register(t, svc, "john_doe", "john@example.com", "password123")

	for _, in := range []LoginInput{
		{Email: "john@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "password123"},
	} {
		_, err := svc.Login(context.Background(), in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []FieldError{{Msg: "Invalid Credentials"}}, verr.Errors)
	}
}

func TestUsers_PasswordReset(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsers(db, fakeTokens{}, time.Hour)
	ctx := context.Background()
	register(t, svc, "john_doe", "john@example.com", "password123")

	_, err := svc.ForgotPassword(ctx, ForgotPasswordInput{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrUnknownEmail)

	token, err := svc.ForgotPassword(ctx, ForgotPasswordInput{Email: "john@example.com"})
	require.NoError(t, err)
	assert.Len(t, token, resetTokenLength)

	err = svc.ResetPassword(ctx, "not-the-token", ResetPasswordInput{Password: "brand-new"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, token, ResetPasswordInput{Password: "brand-new"}))

	// Tokens are single use
	err = svc.ResetPassword(ctx, token, ResetPasswordInput{Password: "another-one"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = svc.Login(ctx, LoginInput{Email: "john@example.com", Password: "password123"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, LoginInput{Email: "john@example.com", Password: "brand-new"})
	assert.NoError(t, err)
}

func TestUsers_PasswordResetExpires(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsers(db, fakeTokens{}, time.Hour)
	ctx := context.Background()
	register(t, svc, "john_doe", "john@example.com", "password123")

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.ForgotPassword(ctx, ForgotPasswordInput{Email: "john@example.com"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(61 * time.Minute) }
	err = svc.ResetPassword(ctx, token, ResetPasswordInput{Password: "brand-new"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	err = svc.ResetPassword(ctx, "", ResetPasswordInput{Password: "brand-new"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestUsers_ProfileAndPreferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsers(db, fakeTokens{}, time.Hour)
	ctx := context.Background()
	user := createUser(t, db, "alice")

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdatePreferences(ctx, user.ID, PreferencesPatch{Theme: ptr("dark")})
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Preferences.Theme)
	assert.Equal(t, 5000, updated.Preferences.AutoSaveInterval)

	_, err = svc.UpdatePreferences(ctx, user.ID, PreferencesPatch{AutoSaveInterval: ptr(10)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "auto_save_interval", verr.Errors[0].Param)
}

func TestUsers_StoreFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE email = $1`)).
		WithArgs("john@example.com").
		WillReturnError(errors.New("connection reset"))

	svc := NewUsers(db, fakeTokens{}, time.Hour)
	_, err = svc.Register(context.Background(), RegisterInput{Username: "john_doe", Email: "john@example.com", Password: "password123"})
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
