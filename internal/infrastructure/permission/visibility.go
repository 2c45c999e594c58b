package permission

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/shared/utils/setutil"
)

const (
	SubjectUserPrefix   = "user:"
	ObjectProjectPrefix = "project:"
	RoleAdmin           = "role:admin"
	ActionView          = "view"
)

var _ ticket.VisibilityPredicate = (*ProjectVisibility)(nil)

// ProjectVisibility answers which projects an actor may browse, from the
// casbin policy: "view" on "project:<id>", directly or through a role.
// Holders of role:admin see everything.
type ProjectVisibility struct {
	enforcer *Enforcer
}

func NewProjectVisibility(enforcer *Enforcer) *ProjectVisibility {
	return &ProjectVisibility{enforcer: enforcer}
}

func UserSubject(userID uint) string {
	return SubjectUserPrefix + strconv.FormatUint(uint64(userID), 10)
}

func ProjectObject(projectID uint) string {
	return ObjectProjectPrefix + strconv.FormatUint(uint64(projectID), 10)
}

func (v *ProjectVisibility) VisibleProjectIDs(ctx context.Context, userID uint) ([]uint, bool, error) {
	subject := UserSubject(userID)

	admin, err := v.enforcer.HasRoleForUser(subject, RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	if admin {
		return nil, true, nil
	}

	permissions, err := v.enforcer.GetPermissionsForUser(subject)
	if err != nil {
		return nil, false, err
	}

	set := setutil.NewUintSet()
	for _, p := range permissions {
		// p is {subject, object, action}
		if len(p) < 3 || p[2] != ActionView {
			continue
		}
		raw, ok := strings.CutPrefix(p[1], ObjectProjectPrefix)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return nil, false, fmt.Errorf("malformed project object %q in policy: %w", p[1], err)
		}
		set.Add(uint(id))
	}

	return set.Sorted(), false, nil
}

// CanView reports whether userID may see projectID.
func (v *ProjectVisibility) CanView(userID, projectID uint) (bool, error) {
	return v.enforcer.Enforce(UserSubject(userID), ProjectObject(projectID), ActionView)
}

// GrantView lets userID see projectID.
func (v *ProjectVisibility) GrantView(userID, projectID uint) error {
	return v.enforcer.AddPolicy(UserSubject(userID), ProjectObject(projectID), ActionView)
}

// GrantAdmin lets userID see every project.
func (v *ProjectVisibility) GrantAdmin(userID uint) error {
	return v.enforcer.AddRoleForUser(UserSubject(userID), RoleAdmin)
}

// RevokeView removes a direct grant of projectID to userID.
func (v *ProjectVisibility) RevokeView(userID, projectID uint) error {
	return v.enforcer.RemovePolicy(UserSubject(userID), ProjectObject(projectID), ActionView)
}
