// Package phone validates customer mobile numbers against the formats the
// mobile-money gateway accepts.
package phone

// IsValid reports whether candidate is a number the gateway will accept:
// exactly 12 digits, starting with 254 followed by 7 or 1 (2547xxxxxxxx or
// 2541xxxxxxxx). The gateway rejects everything else, including +254... and
// local 07.../01... forms, so this check must not be relaxed.
func IsValid(candidate string) bool {
	if len(candidate) != 12 {
		return false
	}
	for i := 0; i < len(candidate); i++ {
		if candidate[i] < '0' || candidate[i] > '9' {
			return false
		}
	}
	if candidate[0] != '2' || candidate[1] != '5' || candidate[2] != '4' {
		return false
	}
	return candidate[3] == '7' || candidate[3] == '1'
}
