package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neetharmaliackal/fittrack-pro-02/pkg/validator"
)

func TestAuthTokens_WireNames(t *testing.T) {
	raw, err := json.Marshal(AuthTokens{Access: "A", Refresh: "R"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"access":"A","refresh":"R"}`, string(raw))
}

func TestRegisterPayload_Validation(t *testing.T) {
	valid := RegisterPayload{
		Username:  "johndoe",
		Email:     "john@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Password:  "password123",
		Password2: "password123",
	}

	tests := []struct {
		name   string
		mutate func(*RegisterPayload)
		want   string // wanted field error, "" means valid
	}{
		{"valid", func(p *RegisterPayload) {}, ""},
		{"missing username", func(p *RegisterPayload) { p.Username = "" }, "Username"},
		{"bad email", func(p *RegisterPayload) { p.Email = "nope" }, "Email"},
		{"short password", func(p *RegisterPayload) { p.Password = "pw"; p.Password2 = "pw" }, "Password"},
		{"mismatched confirmation", func(p *RegisterPayload) { p.Password2 = "differentpassword" }, "Password2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := validator.Validate(p)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}

			var valErr *validator.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Fields(), tt.want)
		})
	}
}
