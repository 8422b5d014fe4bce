// Package policy holds the per-request authorization rules. Safe (read-only)
// operations are always allowed on public resources; these predicates gate the
// unsafe ones. Anonymous viewers are rejected earlier, by the auth middleware.
package policy

import "github.com/foodgram/backend/internal/models"

// CanModifyRecipe reports whether viewer may modify or delete recipe:
// its author, or a superuser.
func CanModifyRecipe(viewer *models.User, recipe *models.Recipe) bool {
	if viewer == nil || recipe == nil {
		return false
	}
	return recipe.AuthorID == viewer.ID || viewer.IsSuperuser
}

// CanManageReference reports whether viewer may modify reference data
// (tags, ingredients). Staff only.
func CanManageReference(viewer *models.User) bool {
	return viewer != nil && viewer.IsStaff
}
