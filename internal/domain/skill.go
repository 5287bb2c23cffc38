package domain

import "strings"

// DefaultSkillCategory is given to skills created from free-form user input.
const DefaultSkillCategory = "General"

const (
	MaxSkillNameLength = 50
	MaxSkillsPerList   = 30
)

// SkillKind separates skills a user can teach from skills they want to learn.
type SkillKind string

const (
	SkillKindTeach SkillKind = "teach"
	SkillKindLearn SkillKind = "learn"
)

func (k SkillKind) Valid() bool {
	return k == SkillKindTeach || k == SkillKindLearn
}

type Skill struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type UserSkills struct {
	Teach []string `json:"teach_skills"`
	Learn []string `json:"learn_skills"`
}

// NormalizeSkillNames trims names, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeSkillNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.Join(strings.Fields(n), " ")
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
