package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// newOfficeID builds ids such as "<company>_SYDNEY_01".
func newOfficeID(companyID, city string, seq int) string {
	return fmt.Sprintf("%s%02d", officeIDPrefix(companyID, city), seq)
}

func officeIDPrefix(companyID, city string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToUpper(strings.TrimSpace(city)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && sb.Len() > 0 {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	cityPart := strings.TrimSuffix(sb.String(), "_")
	if cityPart == "" {
		cityPart = "OFFICE"
	}
	return companyID + "_" + cityPart + "_"
}

// nextOfficeSeq returns one past the highest sequence already used for the
// company and city, so gaps left by deletes are never reused.
func nextOfficeSeq(companyID, city string, existing []string) int {
	prefix := officeIDPrefix(companyID, city)
	maxSeq := 0
	for _, id := range existing {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil || seq < 0 {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return maxSeq + 1
}
