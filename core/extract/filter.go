package extract

import (
	"strings"

	"github.com/avigny/taskforge/core/model"
)

// roleKeywords drives the keyword match of FilterByRole. Matching is
// case-insensitive over title, description and category.
var roleKeywords = map[model.Role][]string{
	model.RoleFrontend: {
		"ui", "page", "component", "style", "frontend", "interaction",
		"animation", "responsive", "layout",
	},
	model.RoleBackend: {
		"api", "endpoint", "database", "backend", "service", "auth",
		"permission", "middleware", "cache",
	},
	model.RoleTest: {
		"test", "case", "automation", "unit test", "integration", "e2e",
	},
}

// FilterByRole keeps the candidate tasks whose text mentions any of the
// role's keywords, preserving order.
func FilterByRole(tasks []model.CandidateTask, role model.Role) []model.CandidateTask {
	keywords := roleKeywords[role]
	out := make([]model.CandidateTask, 0, len(tasks))
	for _, t := range tasks {
		text := strings.ToLower(t.Title + " " + t.Description + " " + t.Category)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
