// Package pi holds the reference digit sequence.
package pi

// Digits is the first 100 decimal places of pi.
const Digits = "1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

// Len is the number of digits in Digits.
const Len = len(Digits)

// Display returns the sequence with its leading "3." for reference output.
func Display() string {
	return "3." + Digits
}
