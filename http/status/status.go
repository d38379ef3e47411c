package status

// Class returns the hundreds digit of the code, e.g. 4 for 404.
func Class(code Code) uint16 {
	return uint16(code) / 100
}

// IsInformational reports whether the code belongs to the 1xx class.
func IsInformational(code Code) bool {
	return Class(code) == 1
}

// IsBodyless reports whether a response carrying the code never has a body, regardless
// of its headers: 1xx, 204 (No Content) and 304 (Not Modified).
func IsBodyless(code Code) bool {
	return IsInformational(code) || code == NoContent || code == NotModified
}
