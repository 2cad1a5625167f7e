// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const visibilityColumns = `id, show_research, show_placement, show_alumni, show_events,
show_exam_timetable, show_exam_revaluation, show_exam_question_papers, show_exam_rules,
show_student_portal, show_sports_cultural, show_nss_ncc, show_research_centers,
show_publications, show_patents_projects, created_at, updated_at`

const getVisibilitySettings = `
SELECT ` + visibilityColumns + ` FROM visibility_settings ORDER BY id LIMIT 1`

const insertDefaultVisibility = `
INSERT INTO visibility_settings (show_research, show_placement, show_alumni, show_events,
	show_exam_timetable, show_exam_revaluation, show_exam_question_papers, show_exam_rules,
	show_student_portal, show_sports_cultural, show_nss_ncc, show_research_centers,
	show_publications, show_patents_projects, created_at, updated_at)
VALUES (1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, ?, ?)
RETURNING ` + visibilityColumns

// GetVisibilitySettings returns the current visibility record, creating
// one with every flag set to true if none exists.
func (q *Queries) GetVisibilitySettings(ctx context.Context) (model.VisibilitySettings, error) {
	v, err := scanVisibility(q.db.QueryRowContext(ctx, getVisibilitySettings))
	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now()
		return scanVisibility(q.db.QueryRowContext(ctx, insertDefaultVisibility, now, now))
	}
	return v, err
}

const updateVisibilitySettings = `
UPDATE visibility_settings SET show_research = ?, show_placement = ?, show_alumni = ?,
	show_events = ?, show_exam_timetable = ?, show_exam_revaluation = ?,
	show_exam_question_papers = ?, show_exam_rules = ?, show_student_portal = ?,
	show_sports_cultural = ?, show_nss_ncc = ?, show_research_centers = ?,
	show_publications = ?, show_patents_projects = ?, updated_at = ?
WHERE id = ?
RETURNING ` + visibilityColumns

// UpdateVisibilitySettings rewrites the visibility flags.
func (q *Queries) UpdateVisibilitySettings(ctx context.Context, v model.VisibilitySettings) (model.VisibilitySettings, error) {
	row := q.db.QueryRowContext(ctx, updateVisibilitySettings,
		v.ShowResearch, v.ShowPlacement, v.ShowAlumni, v.ShowEvents,
		v.ShowExamTimetable, v.ShowExamRevaluation, v.ShowExamQuestionPaper, v.ShowExamRules,
		v.ShowStudentPortal, v.ShowSportsCultural, v.ShowNSSNCC, v.ShowResearchCenters,
		v.ShowPublications, v.ShowPatentsProjects, time.Now(), v.ID)
	return scanVisibility(row)
}

func scanVisibility(r rowScanner) (model.VisibilitySettings, error) {
	var v model.VisibilitySettings
	err := r.Scan(&v.ID, &v.ShowResearch, &v.ShowPlacement, &v.ShowAlumni, &v.ShowEvents,
		&v.ShowExamTimetable, &v.ShowExamRevaluation, &v.ShowExamQuestionPaper,
		&v.ShowExamRules, &v.ShowStudentPortal, &v.ShowSportsCultural, &v.ShowNSSNCC,
		&v.ShowResearchCenters, &v.ShowPublications, &v.ShowPatentsProjects,
		&v.CreatedAt, &v.UpdatedAt)
	return v, err
}
