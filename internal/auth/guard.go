package auth

import (
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/models"
)

// Principal is the verified identity behind a request.
type Principal struct {
	ID    uint64
	Email string
	Role  models.Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// Predicate decides whether an authenticated principal may proceed.
type Predicate interface {
	Admit(p *Principal) error
}

type roleRequirement struct {
	role    models.Role
	message string
}

func (r roleRequirement) Admit(p *Principal) error {
	if p.Role != r.role {
		return apperror.Forbidden(r.message)
	}
	return nil
}

type selfOrAdmin struct {
	target uint64
}

func (s selfOrAdmin) Admit(p *Principal) error {
	if p.Role == models.RoleAdmin || p.ID == s.target {
		return nil
	}
	return apperror.Forbidden("access denied")
}

type authenticated struct{}

func (authenticated) Admit(*Principal) error {
	return nil
}

// RequireAuthenticated admits any verified principal.
func RequireAuthenticated() Predicate {
	return authenticated{}
}

// RequireAdmin admits administrators only.
func RequireAdmin() Predicate {
	return roleRequirement{role: models.RoleAdmin, message: "admin access required"}
}

// RequireStaff admits staff members only.
func RequireStaff() Predicate {
	return roleRequirement{role: models.RoleStaff, message: "staff access required"}
}

// RequireSelfOrAdmin admits administrators and the user identified by targetID.
func RequireSelfOrAdmin(targetID uint64) Predicate {
	return selfOrAdmin{target: targetID}
}

// Authorize is the single enforcement point for access rules: a missing
// principal is unauthorized, a failing predicate is forbidden.
func Authorize(p *Principal, pred Predicate) error {
	if p == nil || p.ID == 0 {
		return apperror.Unauthorized("authentication required")
	}
	return pred.Admit(p)
}
