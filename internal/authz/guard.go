package authz

import (
	domainShipment "logitrack/internal/domain/shipment"
	domainUser "logitrack/internal/domain/user"
	appErrors "logitrack/pkg/errors"
)

// Operation names a protected capability. Each operation declares the set
// of roles allowed to invoke it; driver-scoped operations additionally
// require resource ownership.
type Operation string

const (
	OpListShipments        Operation = "shipments.list"
	OpCreateShipment       Operation = "shipments.create"
	OpViewShipment         Operation = "shipments.view"
	OpUpdateShipmentStatus Operation = "shipments.update_status"
	OpListDrivers          Operation = "drivers.list"
	OpCreateDriver         Operation = "drivers.create"
	OpViewDriverProfile    Operation = "drivers.profile"
)

// allowedRoles is the capability table: operation -> roles permitted to
// invoke it. Tracking by number is absent on purpose; it requires no
// identity at all.
var allowedRoles = map[Operation][]domainUser.Role{
	OpListShipments:        {domainUser.RoleAdmin, domainUser.RoleDriver},
	OpCreateShipment:       {domainUser.RoleAdmin},
	OpViewShipment:         {domainUser.RoleAdmin, domainUser.RoleDriver},
	OpUpdateShipmentStatus: {domainUser.RoleAdmin, domainUser.RoleDriver},
	OpListDrivers:          {domainUser.RoleAdmin},
	OpCreateDriver:         {domainUser.RoleAdmin},
	OpViewDriverProfile:    {domainUser.RoleDriver},
}

// Authorize checks the caller's role against the operation's allowed set.
// A nil identity fails as unauthenticated, a wrong role as forbidden.
func Authorize(identity *domainUser.Identity, op Operation) error {
	if identity == nil {
		return appErrors.Unauthenticated("Authentication required")
	}

	roles, exists := allowedRoles[op]
	if !exists {
		return appErrors.Forbidden("Unknown operation")
	}

	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}

	return appErrors.Forbidden("Insufficient permissions")
}

// AuthorizeShipmentAccess layers the ownership rule on top of the role
// check: admins reach any shipment, drivers only shipments assigned to
// them. A driver probing a foreign shipment id gets forbidden rather than
// not-found; existence disclosure is a disclosed trade-off of the design.
func AuthorizeShipmentAccess(identity *domainUser.Identity, op Operation, s *domainShipment.Shipment) error {
	if err := Authorize(identity, op); err != nil {
		return err
	}

	switch identity.Role {
	case domainUser.RoleAdmin:
		return nil
	case domainUser.RoleDriver:
		if s.AssignedTo(identity.UserID) {
			return nil
		}
		return appErrors.Forbidden("Not authorized to access this shipment")
	default:
		return appErrors.Forbidden("Insufficient permissions")
	}
}
