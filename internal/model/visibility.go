// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Visibility tags recognised by the navigation gate. Tags outside this
// set render visible (fail-open).
const (
	TagResearch           = "research"
	TagPlacement          = "placement"
	TagAlumni             = "alumni"
	TagEvents             = "events"
	TagExamTimetable      = "exam_timetable"
	TagExamRevaluation    = "exam_revaluation"
	TagExamQuestionPapers = "exam_question_papers"
	TagExamRules          = "exam_rules"
	TagStudentPortal      = "student_portal"
	TagSportsCultural     = "sports_cultural"
	TagNSSNCC             = "nss_ncc"
	TagResearchCenters    = "research_centers"
	TagPublications       = "publications"
	TagPatentsProjects    = "patents_projects"
)

// VisibilityTags lists every recognised visibility tag.
var VisibilityTags = []string{
	TagResearch, TagPlacement, TagAlumni, TagEvents,
	TagExamTimetable, TagExamRevaluation, TagExamQuestionPapers, TagExamRules,
	TagStudentPortal, TagSportsCultural, TagNSSNCC,
	TagResearchCenters, TagPublications, TagPatentsProjects,
}

// VisibilitySettings is the single current record mapping visibility
// tags to booleans. When no record exists one is lazily created with
// every flag set to true.
type VisibilitySettings struct {
	ID                    int64
	ShowResearch          bool
	ShowPlacement         bool
	ShowAlumni            bool
	ShowEvents            bool
	ShowExamTimetable     bool
	ShowExamRevaluation   bool
	ShowExamQuestionPaper bool
	ShowExamRules         bool
	ShowStudentPortal     bool
	ShowSportsCultural    bool
	ShowNSSNCC            bool
	ShowResearchCenters   bool
	ShowPublications      bool
	ShowPatentsProjects   bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// FlagFor returns the stored boolean for a recognised tag. The second
// return value is false for unknown tags.
func (v *VisibilitySettings) FlagFor(tag string) (bool, bool) {
	switch tag {
	case TagResearch:
		return v.ShowResearch, true
	case TagPlacement:
		return v.ShowPlacement, true
	case TagAlumni:
		return v.ShowAlumni, true
	case TagEvents:
		return v.ShowEvents, true
	case TagExamTimetable:
		return v.ShowExamTimetable, true
	case TagExamRevaluation:
		return v.ShowExamRevaluation, true
	case TagExamQuestionPapers:
		return v.ShowExamQuestionPaper, true
	case TagExamRules:
		return v.ShowExamRules, true
	case TagStudentPortal:
		return v.ShowStudentPortal, true
	case TagSportsCultural:
		return v.ShowSportsCultural, true
	case TagNSSNCC:
		return v.ShowNSSNCC, true
	case TagResearchCenters:
		return v.ShowResearchCenters, true
	case TagPublications:
		return v.ShowPublications, true
	case TagPatentsProjects:
		return v.ShowPatentsProjects, true
	}
	return true, false
}
