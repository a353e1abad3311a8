package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole_FallsBackToEmployee(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"manager", RoleManager},
		{"employee", RoleEmployee},
		{"", RoleEmployee},
		{"superuser", RoleEmployee},
		{"Admin", RoleEmployee}, // roles are case-sensitive on the backend
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseRole(tc.in), "input %q", tc.in)
	}
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleEmployee.IsAdmin())
	assert.False(t, RoleManager.IsAdmin())
	assert.False(t, Role("superuser").IsAdmin())
	assert.False(t, Role("").IsAdmin())
}
