package authz

import (
	"testing"

	domainShipment "logitrack/internal/domain/shipment"
	domainUser "logitrack/internal/domain/user"
	appErrors "logitrack/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestAuthorizeRoleTable(t *testing.T) {
	admin := &domainUser.Identity{UserID: uuid.New(), Role: domainUser.RoleAdmin}
	driver := &domainUser.Identity{UserID: uuid.New(), Role: domainUser.RoleDriver}

	tests := []struct {
		name     string
		identity *domainUser.Identity
		op       Operation
		wantCode string
	}{
		{"admin lists shipments", admin, OpListShipments, ""},
		{"driver lists shipments", driver, OpListShipments, ""},
		{"admin creates shipment", admin, OpCreateShipment, ""},
		{"driver cannot create shipment", driver, OpCreateShipment, appErrors.CodeForbidden},
		{"admin lists drivers", admin, OpListDrivers, ""},
		{"driver cannot list drivers", driver, OpListDrivers, appErrors.CodeForbidden},
		{"admin cannot view driver profile", admin, OpViewDriverProfile, appErrors.CodeForbidden},
		{"driver views own profile", driver, OpViewDriverProfile, ""},
		{"anonymous is unauthenticated", nil, OpListShipments, appErrors.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.op)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, codeOf(t, err))
		})
	}
}

func TestAuthorizeShipmentAccessOwnership(t *testing.T) {
	ownerID := uuid.New()
	s := &domainShipment.Shipment{ID: uuid.New(), DriverID: &ownerID}
	unassigned := &domainShipment.Shipment{ID: uuid.New()}

	admin := &domainUser.Identity{UserID: uuid.New(), Role: domainUser.RoleAdmin}
	owner := &domainUser.Identity{UserID: ownerID, Role: domainUser.RoleDriver}
	stranger := &domainUser.Identity{UserID: uuid.New(), Role: domainUser.RoleDriver}

	assert.NoError(t, AuthorizeShipmentAccess(admin, OpViewShipment, s))
	assert.NoError(t, AuthorizeShipmentAccess(owner, OpViewShipment, s))
	assert.Equal(t, appErrors.CodeForbidden, codeOf(t, AuthorizeShipmentAccess(stranger, OpViewShipment, s)))
	assert.Equal(t, appErrors.CodeForbidden, codeOf(t, AuthorizeShipmentAccess(owner, OpViewShipment, unassigned)))

	assert.NoError(t, AuthorizeShipmentAccess(owner, OpUpdateShipmentStatus, s))
	assert.Equal(t, appErrors.CodeForbidden, codeOf(t, AuthorizeShipmentAccess(stranger, OpUpdateShipmentStatus, s)))

	assert.Equal(t, appErrors.CodeUnauthenticated, codeOf(t, AuthorizeShipmentAccess(nil, OpViewShipment, s)))
}
