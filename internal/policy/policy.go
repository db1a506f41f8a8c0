// Package policy holds the pure access decisions gating every survey read
// and write. Callers resolve grant existence against the store and pass it
// in; nothing here touches the database.
package policy

import "github.com/adrianlee69dev/advantage-survey/internal/models"

// IsOwner reports whether the actor is the admin who created the survey.
// Publishing, sharing and adding questions are owner-only.
func IsOwner(actor models.User, survey models.Survey) bool {
	return actor.IsAdmin() && actor.ID == survey.OwnerID
}

// CanManage reports whether the actor may read responses and aggregates:
// the owner, or an admin holding a SurveyAccess grant.
func CanManage(actor models.User, survey models.Survey, hasGrant bool) bool {
	return actor.IsAdmin() && (actor.ID == survey.OwnerID || hasGrant)
}

// CanView reports whether the actor may see the survey and its questions.
// Answerers see published surveys only; admins need manage rights.
func CanView(actor models.User, survey models.Survey, hasGrant bool) bool {
	if actor.IsAnswerer() {
		return survey.IsPublished
	}
	return CanManage(actor, survey, hasGrant)
}

// CanGrant reports whether a share grantee is eligible: it must exist and
// have the admin role.
func CanGrant(grantee *models.User) bool {
	return grantee != nil && grantee.IsAdmin()
}
