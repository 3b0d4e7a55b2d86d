package game

// Authorize decides whether caller may mutate target's record. Acting on
// yourself is always allowed; acting on someone else needs isAdmin.
func Authorize(caller, target string, isAdmin bool) error {
	if target == "" || target == caller {
		return nil
	}
	if isAdmin {
		return nil
	}
	return ErrAdminRequired
}
