package util

import "bible_trivia_backend/internal/model"

// Authorize checks that the caller holds at least the required role.
func Authorize(claims *Claims, required model.UserRole) error {
	if claims == nil {
		return ErrInvalidToken
	}
	switch required {
	case model.RoleUser:
		return nil
	case model.RoleAdmin:
		if claims.Role == model.RoleAdmin {
			return nil
		}
	}
	return ErrPermissionDenied
}
