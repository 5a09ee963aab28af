package models

import "strings"

// ValidationErrors maps a form field to its message
type ValidationErrors map[string]string

// Validate checks the fields that must be non-empty before a task is saved
func Validate(title, assignee string) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(assignee) == "" {
		errs["assignee"] = "Assignee is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Initials returns the upper-cased first letter of each word of name
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
	}
	return b.String()
}

// TagCategory derives a display category for a task's tags from its title
func TagCategory(t Task) string {
	title := strings.ToLower(t.Title)
	switch {
	case strings.Contains(title, "design") || strings.Contains(title, "ui/ux"):
		return "design"
	case strings.Contains(title, "ci/cd") || strings.Contains(title, "pipeline"):
		return "devops"
	case strings.Contains(title, "api"):
		return "backend"
	case strings.Contains(title, "mobile"):
		return "mobile"
	case strings.Contains(title, "security"):
		return "security"
	}
	return "frontend"
}

// ParseTags splits a comma separated list, dropping empty entries
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Stats summarises the board for the header
type Stats struct {
	Total    int
	ByStatus map[Status]int
}

// Summarize counts tasks per column
func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks), ByStatus: map[Status]int{}}
	for _, t := range tasks {
		s.ByStatus[t.Status]++
	}
	return s
}
