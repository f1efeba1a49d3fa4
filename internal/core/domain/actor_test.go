package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestActor_Permissions(t *testing.T) {
	tests := []struct {
		name       string
		actor      domain.Actor
		valid      bool
		canWrite   bool
		privileged bool
	}{
		{"admin", domain.Actor{UserID: "u", Role: domain.RoleAdmin}, true, true, true},
		{"accountant", domain.Actor{UserID: "u", Role: domain.RoleAccountant}, true, true, false},
		{"read only", domain.Actor{UserID: "u", Role: domain.RoleReadOnly}, true, false, false},
		{"system", domain.SystemActor(), true, true, true},
		{"no role", domain.Actor{UserID: "u"}, false, false, false},
		{"unknown role", domain.Actor{UserID: "u", Role: "GUEST"}, false, false, false},
		{"lowercase role", domain.Actor{UserID: "u", Role: "admin"}, false, false, false},
		{"no user", domain.Actor{Role: domain.RoleAdmin}, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.actor.Role.IsValid())
			assert.Equal(t, tt.canWrite, tt.actor.CanWrite())
			assert.Equal(t, tt.privileged, tt.actor.IsPrivileged())
		})
	}
}
