package util

import (
	"strings"
)

// OnlyDigits strips every non-digit rune from s.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF validates the check digits of a CPF (11 digits).
// Accepts formatted or bare input; repeated-digit sequences are rejected.
func IsValidCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 || allSameDigit(d) {
		return false
	}

	nums := make([]int, 11)
	for i, r := range d {
		nums[i] = int(r - '0')
	}

	d1 := cpfVerifierDigit(nums[:9], 10)
	d2 := cpfVerifierDigit(append(append([]int{}, nums[:9]...), d1), 11)
	return nums[9] == d1 && nums[10] == d2
}

func cpfVerifierDigit(digits []int, startWeight int) int {
	sum := 0
	weight := startWeight
	for _, n := range digits {
		sum += n * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// IsValidCNPJ validates the check digits of a CNPJ (14 digits).
func IsValidCNPJ(cnpj string) bool {
	d := OnlyDigits(cnpj)
	if len(d) != 14 || allSameDigit(d) {
		return false
	}

	nums := make([]int, 14)
	for i, r := range d {
		nums[i] = int(r - '0')
	}

	d1 := cnpjVerifierDigit(nums[:12])
	d2 := cnpjVerifierDigit(append(append([]int{}, nums[:12]...), d1))
	return nums[12] == d1 && nums[13] == d2
}

func cnpjVerifierDigit(digits []int) int {
	// weights cycle 2..9 from the rightmost digit
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += digits[i] * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// IsValidDocument accepts either a valid CPF or a valid CNPJ.
func IsValidDocument(doc string) bool {
	d := OnlyDigits(doc)
	switch len(d) {
	case 11:
		return IsValidCPF(d)
	case 14:
		return IsValidCNPJ(d)
	default:
		return false
	}
}

func allSameDigit(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
