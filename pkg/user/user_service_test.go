package user

import (
	"EcoBite-Backend/domain"
	"EcoBite-Backend/entities"
	"EcoBite-Backend/pkg/jwt"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Post{}, &entities.Claim{}))
	return NewUserService(NewUserRepository(db), jwt.NewJWTService())
}

func TestRegister(t *testing.T) {
	service := newTestService(t)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, domain.RoleUser, res.User.Role)

	// Same address, different casing.
	_, err = service.Register(context.Background(), domain.RegisterRequest{
		Email:    "ALICE@example.com",
		Password: "another pass",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterRoleFallback(t *testing.T) {
	service := newTestService(t)

	business, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "cafe@example.com",
		Password: "correct horse",
		Role:     domain.RoleBusiness,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBusiness, business.User.Role)

	odd, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "odd@example.com",
		Password: "correct horse",
		Role:     "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, odd.User.Role)
}

func TestLogin(t *testing.T) {
	service := newTestService(t)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong horse",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	// Unknown accounts fail with the same error as bad passwords.
	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestMe(t *testing.T) {
	service := newTestService(t)

	created, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	me, err := service.Me(context.Background(), created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = service.Me(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
