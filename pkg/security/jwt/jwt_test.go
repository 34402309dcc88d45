package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumes/pkg/auth"
)

const (
	testSecret = "test-signing-key"
	testIssuer = "test-issuer"
)

func TestGenerate_SubjectIsUserID(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	user := auth.User{ID: uuid.New()}

	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := NewParser(testSecret, testIssuer).Subject(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestSubject_Rejects(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	valid, err := NewGenerator(testSecret, testIssuer, time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)
	expired, err := NewGenerator(testSecret, testIssuer, -time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)
	otherIssuer, err := NewGenerator(testSecret, "someone-else", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)
	otherKey, err := NewGenerator("other-key", testIssuer, time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parser := NewParser(testSecret, testIssuer)
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "invalid-token-string", ErrInvalidToken},
		{"expired", expired, ErrInvalidToken},
		{"wrong issuer", otherIssuer, ErrInvalidToken},
		{"wrong key", otherKey, ErrInvalidToken},
		{"alg none", unsigned, ErrInvalidToken},
		{"non uuid subject", badSubject, ErrInvalidClaims},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.Subject(tc.token)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err = parser.Subject(valid)
	require.NoError(t, err)
}
