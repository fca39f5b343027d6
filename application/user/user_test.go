package user_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	appuser "github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/cmd/config"
	"github.com/muhammadheryan/marketplace/constant"
	redismocks "github.com/muhammadheryan/marketplace/mocks/repository/redis"
	usermocks "github.com/muhammadheryan/marketplace/mocks/repository/user"
	"github.com/muhammadheryan/marketplace/model"
	redisrepo "github.com/muhammadheryan/marketplace/repository/redis"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-jwt-signing",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
			BcryptCost:     bcrypt.MinCost,
		},
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hashed)
}

func strPtr(s string) *string { return &s }

func assertCustomError(t *testing.T, err error, errCode constant.ErrorType, errMsg string) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
	if errMsg != "" && ce.Error() != errMsg {
		t.Fatalf("error message = %q, want %q", ce.Error(), errMsg)
	}
}

func TestUserApp_Register(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	type fields struct {
		config    *config.Config
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.UserEntity
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name: "success: register new user with normalised email",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "  Dana Levi ",
					Email:    " Dana@Example.COM ",
					Password: "secret1",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "dana@example.com"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Name == "Dana Levi" &&
							ent.Email == "dana@example.com" &&
							ent.IsActive &&
							bcrypt.CompareHashAndPassword([]byte(ent.PasswordHash), []byte("secret1")) == nil
					})).
					Return(&model.UserEntity{
						ID:           1,
						Name:         "Dana Levi",
						Email:        "dana@example.com",
						PasswordHash: "hashed_password",
						IsActive:     true,
						CreatedAt:    createdAt,
					}, nil).
					Once()
			},
			want: &model.UserEntity{
				ID:        1,
				Name:      "Dana Levi",
				Email:     "dana@example.com",
				IsActive:  true,
				CreatedAt: createdAt,
			},
		},
		{
			name: "error: email already exists",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "existing@example.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "existing@example.com"}).
					Return(&model.UserEntity{ID: 1, Email: "existing@example.com"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: duplicate key on insert",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "race@example.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.userRepo.
					On("Create", mock.Anything, mock.Anything).
					Return(nil, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: invalid email format",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "dana@example", Password: "secret1"},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "Invalid email format",
		},
		{
			name: "error: short password",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "12345"},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "password must be at least 6 characters",
		},
		{
			name: "error: password longer than 72 bytes",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: strings.Repeat("é", 40)},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "password must be at most 72 bytes",
		},
		{
			name: "error: blank name",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "   ", Email: "dana@example.com", Password: "secret1"},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "Name, email and password are required",
		},
		{
			name: "error: store unavailable",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, driver.ErrBadConn).Once()
			},
			wantErr: true,
			errCode: constant.ErrServiceUnavailable,
		},
		{
			name: "error: create failed",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Register(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				assertCustomError(t, err, tt.errCode, tt.errMsg)
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Register() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	type fields struct {
		config    *config.Config
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	type args struct {
		ctx context.Context
		req *model.LoginRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.UserEntity
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: login with mixed case email",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "A@Test.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "a@test.com"}).
					Return(&model.UserEntity{
						ID:           1,
						Name:         "A",
						Email:        "a@test.com",
						PasswordHash: hashOf(t, "secret1"),
						IsActive:     true,
					}, nil).
					Once()

				f.userRepo.On("UpdateLastLogin", mock.Anything, uint64(1)).Return(nil).Once()

				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
					Return(nil).
					Once()
			},
			want: &model.UserEntity{ID: 1, Name: "A", Email: "a@test.com", IsActive: true},
		},
		{
			name: "error: unknown email",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "notfound@example.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "notfound@example.com"}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredentials,
		},
		{
			name: "error: wrong password",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "a@test.com", Password: "wrong-password"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "a@test.com"}).
					Return(&model.UserEntity{ID: 1, Email: "a@test.com", PasswordHash: hashOf(t, "secret1"), IsActive: true}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredentials,
		},
		{
			name: "error: disabled account",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "a@test.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "a@test.com"}).
					Return(&model.UserEntity{ID: 1, Email: "a@test.com", PasswordHash: hashOf(t, "secret1"), IsActive: false}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name: "error: missing password",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "a@test.com"},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: redis set session failed",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.LoginRequest{Email: "a@test.com", Password: "secret1"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, mock.Anything).
					Return(&model.UserEntity{ID: 1, Email: "a@test.com", PasswordHash: hashOf(t, "secret1"), IsActive: true}, nil).
					Once()
				f.userRepo.On("UpdateLastLogin", mock.Anything, uint64(1)).Return(nil).Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).
					Return(errors.New("redis down")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrServiceUnavailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Login(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				assertCustomError(t, err, tt.errCode, "")
				return
			}

			if got.Token == "" {
				t.Fatal("Login() token should not be empty")
			}
			if got.User.PasswordHash != "" {
				t.Fatal("Login() must not return the password hash")
			}
			if got.User.LastLogin == nil {
				t.Fatal("Login() should stamp last login")
			}
			if got.User.ID != tt.want.ID || got.User.Email != tt.want.Email || got.User.Name != tt.want.Name {
				t.Fatalf("Login() user = %+v, want %+v", got.User, tt.want)
			}
		})
	}
}

func TestUserApp_ValidateToken(t *testing.T) {
	type fields struct {
		config    *config.Config
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	tests := []struct {
		name     string
		fields   fields
		token    string
		mockCall func(f fields)
		want     uint64
		wantErr  bool
		errCode  *constant.ErrorType
	}{
		{
			name: "success: valid token",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetSession", mock.Anything, mock.AnythingOfType("string")).
					Return(uint64(1), nil).
					Once()
			},
			want: 1,
		},
		{
			name: "error: invalid token format",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			token:   "invalid.token.string",
			wantErr: true,
		},
		{
			name: "error: session revoked",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetSession", mock.Anything, mock.AnythingOfType("string")).
					Return(uint64(0), redisrepo.ErrSessionNotFound).
					Once()
			},
			wantErr: true,
		},
		{
			name: "error: session belongs to another user",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetSession", mock.Anything, mock.AnythingOfType("string")).
					Return(uint64(2), nil).
					Once()
			},
			wantErr: true,
		},
		{
			name: "error: redis unreachable",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetSession", mock.Anything, mock.AnythingOfType("string")).
					Return(uint64(0), errors.New("dial tcp: connection refused")).
					Once()
			},
			wantErr: true,
			errCode: func() *constant.ErrorType { e := constant.ErrServiceUnavailable; return &e }(),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := appuser.NewUserApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo)

			if tt.token == "" {
				// Create a valid token by logging in first
				tt.fields.userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{
					ID:           1,
					Email:        "a@test.com",
					PasswordHash: hashOf(t, "secret1"),
					IsActive:     true,
				}, nil).Once()
				tt.fields.userRepo.On("UpdateLastLogin", mock.Anything, uint64(1)).Return(nil).Once()
				tt.fields.redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()

				loginResp, err := app.Login(context.Background(), &model.LoginRequest{Email: "a@test.com", Password: "secret1"})
				if err != nil {
					t.Fatalf("Login() error = %v", err)
				}
				tt.token = loginResp.Token
			}

			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}

			got, err := app.ValidateToken(context.Background(), tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if tt.errCode != nil {
					assertCustomError(t, err, *tt.errCode, "")
				}
				return
			}

			if got.UserID != tt.want || got.Email != "a@test.com" || got.SessionID == "" {
				t.Fatalf("ValidateToken() = %+v, want user %v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Logout(t *testing.T) {
	redisRepo := redismocks.NewRedisRepository(t)
	redisRepo.On("DeleteSession", mock.Anything, "jti-1").Return(nil).Once()
	redisRepo.On("DeleteSession", mock.Anything, "jti-2").Return(errors.New("redis down")).Once()

	app := appuser.NewUserApp(testConfig(), usermocks.NewUserRepository(t), redisRepo)

	if err := app.Logout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	assertCustomError(t, app.Logout(context.Background(), "jti-2"), constant.ErrServiceUnavailable, "")
}

func TestUserApp_GetProfile(t *testing.T) {
	userRepo := usermocks.NewUserRepository(t)
	userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).
		Return(&model.UserEntity{ID: 1, Name: "A", Email: "a@test.com", PasswordHash: "hash", IsActive: true}, nil).Once()
	userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 2}).Return(nil, nil).Once()

	app := appuser.NewUserApp(testConfig(), userRepo, redismocks.NewRedisRepository(t))

	got, err := app.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.PasswordHash != "" || got.Email != "a@test.com" {
		t.Fatalf("GetProfile() = %+v", got)
	}

	_, err = app.GetProfile(context.Background(), 2)
	assertCustomError(t, err, constant.ErrNotFound, "User not found")
}

func TestUserApp_UpdateProfile(t *testing.T) {
	type fields struct {
		userRepo *usermocks.UserRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.UpdateProfileRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name:   "success: rename and change email",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req:    &model.UpdateProfileRequest{Name: strPtr(" Noa "), Email: strPtr("NOA@test.com")},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "noa@test.com"}).Return(nil, nil).Once()
				f.userRepo.On("Update", mock.Anything, uint64(1), &model.UserUpdate{Name: strPtr("Noa"), Email: strPtr("noa@test.com")}).Return(nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1, Name: "Noa", Email: "noa@test.com"}, nil).Once()
			},
		},
		{
			name:   "success: keep own email",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req:    &model.UpdateProfileRequest{Email: strPtr("a@test.com")},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "a@test.com"}).Return(&model.UserEntity{ID: 1}, nil).Once()
				f.userRepo.On("Update", mock.Anything, uint64(1), mock.Anything).Return(nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(&model.UserEntity{ID: 1}, nil).Once()
			},
		},
		{
			name:   "error: email taken by another user",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req:    &model.UpdateProfileRequest{Email: strPtr("b@test.com")},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "b@test.com"}).Return(&model.UserEntity{ID: 2}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name:    "error: invalid email",
			fields:  fields{userRepo: usermocks.NewUserRepository(t)},
			req:     &model.UpdateProfileRequest{Email: strPtr("nope")},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "Invalid email format",
		},
		{
			name:    "error: nothing to update",
			fields:  fields{userRepo: usermocks.NewUserRepository(t)},
			req:     &model.UpdateProfileRequest{},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "No fields to update",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(testConfig(), tt.fields.userRepo, redismocks.NewRedisRepository(t))

			got, err := app.UpdateProfile(context.Background(), 1, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertCustomError(t, err, tt.errCode, tt.errMsg)
				return
			}
			if got == nil || got.ID != 1 {
				t.Fatalf("UpdateProfile() = %+v", got)
			}
		})
	}
}

func TestUserApp_DeleteAccount(t *testing.T) {
	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	tests := []struct {
		name     string
		fields   fields
		userID   uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: every session revoked before delete",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			userID: 1,
			mockCall: func(f fields) {
				f.redisRepo.On("DeleteUserSessions", mock.Anything, uint64(1)).Return(nil).Once()
				f.userRepo.On("Delete", mock.Anything, uint64(1)).Return(true, nil).Once()
			},
		},
		{
			name:   "error: user not found",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			userID: 2,
			mockCall: func(f fields) {
				f.redisRepo.On("DeleteUserSessions", mock.Anything, uint64(2)).Return(nil).Once()
				f.userRepo.On("Delete", mock.Anything, uint64(2)).Return(false, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:   "error: session store down keeps the account",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			userID: 1,
			mockCall: func(f fields) {
				f.redisRepo.On("DeleteUserSessions", mock.Anything, uint64(1)).Return(errors.New("dial tcp: connection refused")).Once()
			},
			wantErr: true,
			errCode: constant.ErrServiceUnavailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.mockCall(tt.fields)
			app := appuser.NewUserApp(testConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			err := app.DeleteAccount(context.Background(), tt.userID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteAccount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertCustomError(t, err, tt.errCode, "")
			}
		})
	}
}

func TestUserApp_ChangePassword(t *testing.T) {
	type fields struct {
		userRepo *usermocks.UserRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.ChangePasswordRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name:   "success: password changed",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req:    &model.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1, PasswordHash: hashOf(t, "secret1")}, nil).Once()
				f.userRepo.On("Update", mock.Anything, uint64(1), mock.MatchedBy(func(u *model.UserUpdate) bool {
					return u.Name == nil && u.Email == nil && u.PasswordHash != nil &&
						bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("secret2")) == nil
				})).Return(nil).Once()
			},
		},
		{
			name:   "error: wrong current password",
			fields: fields{userRepo: usermocks.NewUserRepository(t)},
			req:    &model.ChangePasswordRequest{CurrentPassword: "nope12", NewPassword: "secret2"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1, PasswordHash: hashOf(t, "secret1")}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "Current password is incorrect",
		},
		{
			name:    "error: new password too short",
			fields:  fields{userRepo: usermocks.NewUserRepository(t)},
			req:     &model.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "123"},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "newPassword must be at least 6 characters",
		},
		{
			name:    "error: new password longer than 72 bytes",
			fields:  fields{userRepo: usermocks.NewUserRepository(t)},
			req:     &model.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: strings.Repeat("a", 73)},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
			errMsg:  "newPassword must be at most 72 bytes",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(testConfig(), tt.fields.userRepo, redismocks.NewRedisRepository(t))

			err := app.ChangePassword(context.Background(), 1, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChangePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertCustomError(t, err, tt.errCode, tt.errMsg)
			}
		})
	}
}
