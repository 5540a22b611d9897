package service

import (
	"sort"
	"strings"

	"labdoc-data/internal/domain"
)

// Assignment is what the visibility filter needs from either assignment kind.
type Assignment interface {
	RecordID() int64
	AssigneeEmployeeID() int64
	IssuerEmployeeID() int64
}

// Role keywords as stored by the personnel system. Matching ignores case and
// accents and looks for the keyword anywhere in the label, so "Químico
// Farmacéutico" and "QUIMICO FORENSE" both classify as chemist.
const (
	roleAdminKeyword   = "admin"
	roleChemistKeyword = "quimico"
)

// VisibleAssignments filters a listing down to what the viewer may see:
// administrators see everything, chemists see work assigned to them, everyone
// else sees only what they issued. A nil viewer (no identity header) sees the
// full listing. The result is ordered newest first regardless of input order.
func VisibleAssignments[T Assignment](items []T, viewer *domain.Employee) []T {
	role := ""
	if viewer != nil {
		role = normalizeRole(viewer.Role)
	}
	seeAll := viewer == nil || strings.Contains(role, roleAdminKeyword)
	chemist := strings.Contains(role, roleChemistKeyword)

	out := make([]T, 0, len(items))
	for _, it := range items {
		switch {
		case seeAll:
			out = append(out, it)
		case chemist:
			if it.AssigneeEmployeeID() == viewer.ID {
				out = append(out, it)
			}
		default:
			if it.IssuerEmployeeID() == viewer.ID {
				out = append(out, it)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordID() > out[j].RecordID() })
	return out
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u",
)

func normalizeRole(role string) string {
	return strings.ToLower(accentFolder.Replace(strings.TrimSpace(role)))
}
