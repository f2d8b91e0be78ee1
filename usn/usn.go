// CLAUDE:SUMMARY USN (university seat number) construction and roll parsing: prefix + year + dept + 3-digit roll.
// Package usn builds and inspects university seat numbers.
//
// A USN addresses exactly one result sheet on the report portal:
//
//	1DS 23 CS 042
//	└┬┘ └┬┘ └┬┘ └┬┘
//	prefix year dept roll
//
// USNs are deterministic and generated on the fly — never stored.
package usn

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the institution code shared by every seat number.
const Prefix = "1DS"

// Format builds a seat number from its parts. The department code is
// uppercased; the roll is zero-padded to three digits.
func Format(year, dept string, roll int) string {
	return fmt.Sprintf("%s%s%s%03d", Prefix, year, strings.ToUpper(dept), roll)
}

// Roll extracts the trailing 3-digit sequence from a seat number.
// Returns 0 when the USN is too short or the suffix is not numeric.
func Roll(u string) int {
	if len(u) < 3 {
		return 0
	}
	n, err := strconv.Atoi(u[len(u)-3:])
	if err != nil {
		return 0
	}
	return n
}
