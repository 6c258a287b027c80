package extract

import (
	"regexp"
	"strconv"
)

// Validators for the two national identifier formats the pipeline must
// recognize. Both are used as exclusion filters: a candidate that validates
// as a CNS must never be returned as a card or document number.

var dateLike = regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}$|^\d{1,2}[/.\-][A-Z]{3}[/.\-]\d{2,4}$`)

// IsValidCNS reports whether s is a valid national health card number
// (Cartão Nacional de Saúde). The number has 15 digits and two families:
// definitive cards start with 1 or 2 and carry a derived suffix, provisional
// cards start with 7, 8 or 9 and use a plain weighted mod-11 check.
func IsValidCNS(s string) bool {
	d := onlyDigits(s)
	if len(d) != 15 {
		return false
	}
	switch d[0] {
	case '7', '8', '9':
		return cnsWeightedSum(d)%11 == 0
	case '1', '2':
		return d == cnsFromPIS(d[:11])
	default:
		return false
	}
}

func cnsWeightedSum(d string) int {
	sum := 0
	for i := 0; i < len(d); i++ {
		sum += int(d[i]-'0') * (15 - i)
	}
	return sum
}

// cnsFromPIS derives the full definitive CNS from its 11-digit PIS prefix.
func cnsFromPIS(pis string) string {
	sum := 0
	for i := 0; i < 11; i++ {
		sum += int(pis[i]-'0') * (15 - i)
	}
	dv := 11 - sum%11
	if dv == 11 {
		dv = 0
	}
	if dv == 10 {
		dv = 11 - (sum+2)%11
		if dv == 11 {
			dv = 0
		}
		return pis + "001" + strconv.Itoa(dv)
	}
	return pis + "000" + strconv.Itoa(dv)
}

// IsValidCPF reports whether s is a valid taxpayer number (CPF): 11 digits
// with two mod-11 check digits. Repeated-digit sequences pass the checksum
// but are rejected as known invalid.
func IsValidCPF(s string) bool {
	d := onlyDigits(s)
	if len(d) != 11 {
		return false
	}
	same := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	if cpfCheckDigit(d, 9) != int(d[9]-'0') {
		return false
	}
	return cpfCheckDigit(d, 10) == int(d[10]-'0')
}

func cpfCheckDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	return sum * 10 % 11 % 10
}

// looksLikeDate filters numeric candidates that are actually printed dates.
func looksLikeDate(s string) bool {
	return dateLike.MatchString(s)
}
