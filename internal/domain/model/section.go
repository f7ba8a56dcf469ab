// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSection is returned for a section id or key outside the form.
var ErrUnknownSection = errors.New("unknown section")

// Section identifies one appraisal form section.
type Section string

// Form sections. The set is closed; AllSections lists every member.
const (
	SectionGeneral         Section = "1-10"
	SectionEvents          Section = "11"
	SectionTeachingLoad    Section = "12.1"
	SectionProjectGuidance Section = "12.3-12.4"
	SectionActivities      Section = "13"
	SectionPublications    Section = "14"
	SectionBooks           Section = "15"
	SectionProjects        Section = "16"
	SectionGuidedDegrees   Section = "17"
	SectionPositions       Section = "18"
	SectionAwards          Section = "19"
)

const teachingLoadKeyPrefix = string(SectionTeachingLoad) + "_"

var allSections = []Section{
	SectionGeneral,
	SectionEvents,
	SectionTeachingLoad,
	SectionProjectGuidance,
	SectionActivities,
	SectionPublications,
	SectionBooks,
	SectionProjects,
	SectionGuidedDegrees,
	SectionPositions,
	SectionAwards,
}

// AllSections returns every form section in form order.
func AllSections() []Section {
	out := make([]Section, len(allSections))
	copy(out, allSections)
	return out
}

// ParseSection validates a section id.
func ParseSection(s string) (Section, error) {
	s = strings.TrimSpace(s)
	for _, sec := range allSections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

func (s Section) String() string { return string(s) }

// Scored reports whether the section is evaluated. 1-10 is stored as given.
func (s Section) Scored() bool { return s != SectionGeneral }

// PerSemester reports whether the section is stored once per semester.
func (s Section) PerSemester() bool { return s == SectionTeachingLoad }

// Key returns the storage key of the section. Teaching load is stored per
// semester as "12.1_<semester>"; the semester is ignored for other sections.
func (s Section) Key(semester string) string {
	if s.PerSemester() {
		return teachingLoadKeyPrefix + strings.TrimSpace(semester)
	}
	return string(s)
}

// ParseKey validates a storage key and returns its section and semester.
func ParseKey(key string) (Section, string, error) {
	key = strings.TrimSpace(key)
	if sem, ok := strings.CutPrefix(key, teachingLoadKeyPrefix); ok {
		if sem == "" {
			return "", "", fmt.Errorf("%w: %q has no semester", ErrUnknownSection, key)
		}
		return SectionTeachingLoad, sem, nil
	}
	sec, err := ParseSection(key)
	if err != nil {
		return "", "", err
	}
	if sec.PerSemester() {
		return "", "", fmt.Errorf("%w: %q has no semester", ErrUnknownSection, key)
	}
	return sec, "", nil
}
