package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	SymptomsText string `json:"symptoms_text" validate:"required,min=10"`
	Age          int    `json:"age" validate:"gte=1,lte=120"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{SymptomsText: "headache for two days", Age: 30}))

	err := ValidateRequest(sampleRequest{SymptomsText: "short", Age: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be at least 10", ve.Fields["symptoms_text"])
	assert.Equal(t, "must be >= 1", ve.Fields["age"])
}

type conflictErr struct{}

func (conflictErr) Error() string   { return "already done" }
func (conflictErr) StatusCode() int { return fiber.StatusConflict }

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"fiber error", fiber.NewError(fiber.StatusNotFound, "nope"), 404, "nope"},
		{"http error", conflictErr{}, 409, "already done"},
		{"validation", &ValidationError{Fields: map[string]string{"age": "is required"}}, 400, "Validation failed"},
		{"unknown hides detail", errors.New("pq: connection refused"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userID := uuid.New().String()

	app := fiber.New()
	app.Get("/", JwtMiddleware, func(c *fiber.Ctx) error {
		return c.SendString(UserID(c).String())
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", 401},
		{"garbage", "Bearer abc.def.ghi", 401},
		{"user_id claim", "Bearer " + signed(t, jwt.MapClaims{"user_id": userID, "exp": time.Now().Add(time.Hour).Unix()}), 200},
		{"sub claim", "Bearer " + signed(t, jwt.MapClaims{"sub": userID}), 200},
		{"non uuid subject", "Bearer " + signed(t, jwt.MapClaims{"sub": "admin"}), 401},
		{"expired", "Bearer " + signed(t, jwt.MapClaims{"sub": userID, "exp": time.Now().Add(-time.Hour).Unix()}), 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}
