package domain

import (
	"fmt"
	"strings"
)

// Department is the closed set of business units an interview or user belongs to.
type Department string

const (
	DepartmentSoftware      Department = "Software"
	DepartmentTesting       Department = "Testing"
	DepartmentCyberSecurity Department = "Cyber-Security"
	DepartmentFinance       Department = "Finance"
)

// Departments lists every valid department in display order.
func Departments() []Department {
	return []Department{
		DepartmentSoftware,
		DepartmentTesting,
		DepartmentCyberSecurity,
		DepartmentFinance,
	}
}

// ParseDepartment matches raw input against the known departments, ignoring case
// and surrounding whitespace.
func ParseDepartment(raw string) (Department, error) {
	raw = strings.TrimSpace(raw)
	for _, d := range Departments() {
		if strings.EqualFold(raw, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown department %q", raw)
}

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}
	return false
}
