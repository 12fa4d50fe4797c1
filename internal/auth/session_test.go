package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

const testSecret = "unit-test-secret"

func testUser() *models.User {
	return &models.User{
		ID:        "0192aaaa-0000-7000-8000-0000000000aa",
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      models.RoleManager,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	user := testUser()

	token, err := IssueToken(testSecret, time.Hour, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := VerifyToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.ID)
	assert.Equal(t, "Alice", session.Name)
	assert.Equal(t, models.RoleManager, session.Role)
	assert.Equal(t, user.CreatedAt.Unix(), session.CreatedAt)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, time.Hour, testUser())
	require.NoError(t, err)

	_, err = VerifyToken("another-secret", token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := IssueToken(testSecret, -time.Minute, testUser())
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyToken_UnknownRole(t *testing.T) {
	user := testUser()
	user.Role = models.Role("superuser")

	token, err := IssueToken(testSecret, time.Hour, user)
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssueToken_RequiresSecret(t *testing.T) {
	_, err := IssueToken("", time.Hour, testUser())
	assert.Error(t, err)
}
