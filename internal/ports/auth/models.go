package auth

// Claims representa la información extraída del token de staff.
// ShelterID es la tenant key: todos los recursos se filtran por ella.
type Claims struct {
	UserID    string
	Email     string
	ShelterID string
}
