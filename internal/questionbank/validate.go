package questionbank

import (
	"fmt"
	"strings"
)

// validateQuestions performs structural checks on the catalog.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string
	seen := make(map[string]bool, len(questions))

	for _, q := range questions {
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		sector, ok := SectorOf(q.ID)
		if !ok {
			errs = append(errs, fmt.Sprintf("question %q has no sector prefix", q.ID))
		} else if sector != q.Sector {
			errs = append(errs, fmt.Sprintf("question %q prefix implies %s but sector is %s", q.ID, sector, q.Sector))
		}

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %q has an empty prompt", q.ID))
		}

		switch q.Kind {
		case KindChoice:
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("choice question %q needs at least 2 options", q.ID))
			}
			tags := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if o.Tag == "" {
					errs = append(errs, fmt.Sprintf("question %q has an option without a tag", q.ID))
				}
				if tags[o.Tag] {
					errs = append(errs, fmt.Sprintf("question %q repeats tag %q", q.ID, o.Tag))
				}
				tags[o.Tag] = true
			}
		case KindScalar:
			if q.Min >= q.Max {
				errs = append(errs, fmt.Sprintf("scalar question %q has empty range [%d,%d]", q.ID, q.Min, q.Max))
			}
		default:
			errs = append(errs, fmt.Sprintf("question %q has unknown kind %d", q.ID, q.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
