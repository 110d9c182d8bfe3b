// ABOUTME: Resource ownership checks for folders, sets, and custom exercises
// ABOUTME: Pure equality of owner id and principal id, no privileged principals

package auth

import "errors"

// ErrNotOwner is returned when the requesting principal does not own the
// resource it is trying to read or mutate.
var ErrNotOwner = errors.New("unauthorized access")

// CheckOwnership returns ErrNotOwner unless the principal owns the resource.
// There is no admin or superuser bypass in this model.
func CheckOwnership(ownerID, principalID string) error {
	if ownerID != principalID {
		return ErrNotOwner
	}
	return nil
}
