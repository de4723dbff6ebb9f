package util

// MaskNumber obscures a card number for logging, showing only the first
// and last few characters.
func MaskNumber(number string) string {
	if len(number) > 8 {
		return number[:4] + "..." + number[len(number)-4:]
	} else if len(number) > 4 {
		return number[:2] + "..." + number[len(number)-2:]
	} else if len(number) > 2 {
		return number[:1] + "..." + number[len(number)-1:]
	}
	return number
}
