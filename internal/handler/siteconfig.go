// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// SiteConfigHandler handles the header, navbar and college info
// families. All three are strict: saving a second active record is
// rejected until the incumbent is deactivated.
type SiteConfigHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	activation     *service.ActivationService
}

// NewSiteConfigHandler creates a new SiteConfigHandler.
func NewSiteConfigHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, activation *service.ActivationService) *SiteConfigHandler {
	return &SiteConfigHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		activation:     activation,
	}
}

// --- Headers ---

// HeadersListData holds data for the header infos list template.
type HeadersListData struct {
	Headers []model.HeaderInfo
}

// HeaderFormData holds data for the header info form template.
type HeaderFormData struct {
	Header     *model.HeaderInfo
	Layouts    []string
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// ListHeaders handles GET /admin/headers.
func (h *SiteConfigHandler) ListHeaders(w http.ResponseWriter, r *http.Request) {
	headers, err := h.queries.ListHeaderInfos(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list header infos", "error", err)
		return
	}
	h.renderList(w, r, "admin/headers_list", "Headers", redirectAdminHeaders, HeadersListData{Headers: headers})
}

// NewHeaderForm handles GET /admin/headers/new.
func (h *SiteConfigHandler) NewHeaderForm(w http.ResponseWriter, r *http.Request) {
	h.renderHeaderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// CreateHeader handles POST /admin/headers.
func (h *SiteConfigHandler) CreateHeader(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminHeaders+RouteSuffixNew) {
		return
	}

	header, errors, formValues := headerFromForm(r)
	if len(errors) > 0 {
		h.renderHeaderForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateHeaderInfo(r.Context(), header)
	if err != nil {
		slog.Error("failed to create header info", "error", err)
		flashError(w, r, h.renderer, redirectAdminHeaders+RouteSuffixNew, "Error creating header")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyHeaderInfo)
	slog.Info("header info created", "category", "config", "header_id", created.ID)
	flashSuccess(w, r, h.renderer, redirectAdminHeaders, "Header created successfully")
}

// EditHeaderForm handles GET /admin/headers/{id}.
func (h *SiteConfigHandler) EditHeaderForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminHeaders, "Invalid header ID")
		return
	}

	header, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminHeaders, "header", id,
		func(id int64) (model.HeaderInfo, error) { return h.queries.GetHeaderInfoByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderHeaderForm(w, r, &header, make(map[string]string), make(map[string]string))
}

// UpdateHeader handles POST /admin/headers/{id}.
func (h *SiteConfigHandler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminHeaders, "Invalid header ID")
		return
	}
	headerURL := fmt.Sprintf("%s/%d", redirectAdminHeaders, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminHeaders, "header", id,
		func(id int64) (model.HeaderInfo, error) { return h.queries.GetHeaderInfoByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, headerURL) {
		return
	}

	header, errors, formValues := headerFromForm(r)
	if len(errors) > 0 {
		h.renderHeaderForm(w, r, &existing, errors, formValues)
		return
	}
	header.ID = id

	if _, err := h.queries.UpdateHeaderInfo(r.Context(), header); err != nil {
		slog.Error("failed to update header info", "error", err, "header_id", id)
		flashError(w, r, h.renderer, headerURL, "Error updating header")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyHeaderInfo)
	slog.Info("header info updated", "category", "config", "header_id", id)
	flashSuccess(w, r, h.renderer, headerURL, "Header updated successfully")
}

// DeleteHeader handles POST /admin/headers/{id}/delete.
func (h *SiteConfigHandler) DeleteHeader(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminHeaders, "Invalid header ID")
		return
	}

	if err := h.queries.DeleteHeaderInfo(r.Context(), id); err != nil {
		slog.Error("failed to delete header info", "error", err, "header_id", id)
		flashError(w, r, h.renderer, redirectAdminHeaders, "Error deleting header")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyHeaderInfo)
	slog.Info("header info deleted", "category", "config", "header_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminHeaders, "Header deleted successfully")
}

// ActivateHeader handles POST /admin/headers/{id}/activate.
func (h *SiteConfigHandler) ActivateHeader(w http.ResponseWriter, r *http.Request) {
	h.activateByID(w, r, model.FamilyHeaderInfo, redirectAdminHeaders)
}

// DeactivateHeader handles POST /admin/headers/{id}/deactivate.
func (h *SiteConfigHandler) DeactivateHeader(w http.ResponseWriter, r *http.Request) {
	h.deactivateByID(w, r, model.FamilyHeaderInfo, redirectAdminHeaders)
}

func headerFromForm(r *http.Request) (model.HeaderInfo, map[string]string, map[string]string) {
	collegeName := formString(r, "college_name")
	layout := formString(r, "layout")

	formValues := map[string]string{
		"college_name": collegeName,
		"layout":       layout,
	}

	errors := make(map[string]string)

	if collegeName == "" {
		errors["college_name"] = "College name is required"
	}
	if layout == "" {
		layout = model.LayoutCentered
	}
	if layout != model.LayoutCentered && layout != model.LayoutLeftRight && layout != model.LayoutThreeColumn {
		errors["layout"] = "Invalid layout"
	}
	for _, field := range []string{"name_color", "address_color", "affiliations_color", "background_color", "border_color"} {
		if v := formString(r, field); v != "" && !util.IsValidHexColor(v) {
			errors[field] = "Invalid hex color"
		}
	}

	header := model.HeaderInfo{
		CollegeName:       collegeName,
		NameFontSize:      formInt64(r, "name_font_size", 28),
		NameFontWeight:    formString(r, "name_font_weight"),
		NameFontFamily:    formString(r, "name_font_family"),
		NameColor:         formString(r, "name_color"),
		ShowCollegeName:   formBool(r, "show_college_name"),
		Address:           formString(r, "address"),
		AddressColor:      formString(r, "address_color"),
		ShowAddress:       formBool(r, "show_address"),
		Affiliations:      formString(r, "affiliations"),
		AffiliationsColor: formString(r, "affiliations_color"),
		ShowAffiliations:  formBool(r, "show_affiliations"),

		Email:           formString(r, "email"),
		Phone:           formString(r, "phone"),
		WebsiteURL:      formString(r, "website_url"),
		ShowContactInfo: formBool(r, "show_contact_info"),

		LogoLeft:     formString(r, "logo_left"),
		LogoLeftAlt:  formString(r, "logo_left_alt"),
		LogoRight:    formString(r, "logo_right"),
		LogoRightAlt: formString(r, "logo_right_alt"),
		LogoSize:     formInt64(r, "logo_size", 80),

		FacebookURL:     formString(r, "facebook_url"),
		YouTubeURL:      formString(r, "youtube_url"),
		InstagramURL:    formString(r, "instagram_url"),
		TwitterURL:      formString(r, "twitter_url"),
		LinkedInURL:     formString(r, "linkedin_url"),
		WhatsAppNumber:  formString(r, "whatsapp_number"),
		ShowSocialLinks: formBool(r, "show_social_links"),

		Layout:          layout,
		BackgroundColor: formString(r, "background_color"),
		BorderBottom:    formBool(r, "border_bottom"),
		BorderColor:     formString(r, "border_color"),
		Shadow:          formBool(r, "shadow"),
	}
	return header, errors, formValues
}

func (h *SiteConfigHandler) renderHeaderForm(w http.ResponseWriter, r *http.Request, header *model.HeaderInfo, errors, formValues map[string]string) {
	title := "New Header"
	if header != nil {
		title = "Edit Header"
	}
	h.renderConfigForm(w, r, "admin/headers_form", title, "Headers", redirectAdminHeaders, HeaderFormData{
		Header:     header,
		Layouts:    []string{model.LayoutCentered, model.LayoutLeftRight, model.LayoutThreeColumn},
		Errors:     errors,
		FormValues: formValues,
		IsEdit:     header != nil,
	})
}

// --- Navbars ---

// NavbarsListData holds data for the navbar infos list template.
type NavbarsListData struct {
	Navbars []model.NavbarInfo
}

// NavbarFormData holds data for the navbar info form template.
type NavbarFormData struct {
	Navbar     *model.NavbarInfo
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// ListNavbars handles GET /admin/navbars.
func (h *SiteConfigHandler) ListNavbars(w http.ResponseWriter, r *http.Request) {
	navbars, err := h.queries.ListNavbarInfos(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list navbar infos", "error", err)
		return
	}
	h.renderList(w, r, "admin/navbars_list", "Navbars", redirectAdminNavbars, NavbarsListData{Navbars: navbars})
}

// NewNavbarForm handles GET /admin/navbars/new.
func (h *SiteConfigHandler) NewNavbarForm(w http.ResponseWriter, r *http.Request) {
	h.renderNavbarForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// CreateNavbar handles POST /admin/navbars.
func (h *SiteConfigHandler) CreateNavbar(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminNavbars+RouteSuffixNew) {
		return
	}

	navbar, errors, formValues := navbarFromForm(r)
	if len(errors) > 0 {
		h.renderNavbarForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateNavbarInfo(r.Context(), navbar)
	if err != nil {
		slog.Error("failed to create navbar info", "error", err)
		flashError(w, r, h.renderer, redirectAdminNavbars+RouteSuffixNew, "Error creating navbar")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyNavbarInfo)
	slog.Info("navbar info created", "category", "config", "navbar_id", created.ID)
	flashSuccess(w, r, h.renderer, redirectAdminNavbars, "Navbar created successfully")
}

// EditNavbarForm handles GET /admin/navbars/{id}.
func (h *SiteConfigHandler) EditNavbarForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNavbars, "Invalid navbar ID")
		return
	}

	navbar, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminNavbars, "navbar", id,
		func(id int64) (model.NavbarInfo, error) { return h.queries.GetNavbarInfoByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderNavbarForm(w, r, &navbar, make(map[string]string), make(map[string]string))
}

// UpdateNavbar handles POST /admin/navbars/{id}.
func (h *SiteConfigHandler) UpdateNavbar(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNavbars, "Invalid navbar ID")
		return
	}
	navbarURL := fmt.Sprintf("%s/%d", redirectAdminNavbars, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminNavbars, "navbar", id,
		func(id int64) (model.NavbarInfo, error) { return h.queries.GetNavbarInfoByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, navbarURL) {
		return
	}

	navbar, errors, formValues := navbarFromForm(r)
	if len(errors) > 0 {
		h.renderNavbarForm(w, r, &existing, errors, formValues)
		return
	}
	navbar.ID = id

	if _, err := h.queries.UpdateNavbarInfo(r.Context(), navbar); err != nil {
		slog.Error("failed to update navbar info", "error", err, "navbar_id", id)
		flashError(w, r, h.renderer, navbarURL, "Error updating navbar")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyNavbarInfo)
	slog.Info("navbar info updated", "category", "config", "navbar_id", id)
	flashSuccess(w, r, h.renderer, navbarURL, "Navbar updated successfully")
}

// DeleteNavbar handles POST /admin/navbars/{id}/delete.
func (h *SiteConfigHandler) DeleteNavbar(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNavbars, "Invalid navbar ID")
		return
	}

	if err := h.queries.DeleteNavbarInfo(r.Context(), id); err != nil {
		slog.Error("failed to delete navbar info", "error", err, "navbar_id", id)
		flashError(w, r, h.renderer, redirectAdminNavbars, "Error deleting navbar")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyNavbarInfo)
	slog.Info("navbar info deleted", "category", "config", "navbar_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminNavbars, "Navbar deleted successfully")
}

// ActivateNavbar handles POST /admin/navbars/{id}/activate.
func (h *SiteConfigHandler) ActivateNavbar(w http.ResponseWriter, r *http.Request) {
	h.activateByID(w, r, model.FamilyNavbarInfo, redirectAdminNavbars)
}

// DeactivateNavbar handles POST /admin/navbars/{id}/deactivate.
func (h *SiteConfigHandler) DeactivateNavbar(w http.ResponseWriter, r *http.Request) {
	h.deactivateByID(w, r, model.FamilyNavbarInfo, redirectAdminNavbars)
}

func navbarFromForm(r *http.Request) (model.NavbarInfo, map[string]string, map[string]string) {
	brandName := formString(r, "brand_name")

	formValues := map[string]string{
		"brand_name": brandName,
	}

	errors := make(map[string]string)

	if brandName == "" {
		errors["brand_name"] = "Brand name is required"
	}
	for _, field := range []string{"background_color", "text_color", "hover_color", "border_color"} {
		if v := formString(r, field); v != "" && !util.IsValidHexColor(v) {
			errors[field] = "Invalid hex color"
		}
	}

	navbar := model.NavbarInfo{
		BrandName:         brandName,
		BrandSubtitle:     formString(r, "brand_subtitle"),
		Logo:              formString(r, "logo"),
		ShowLogo:          formBool(r, "show_logo"),
		ShowBrandText:     formBool(r, "show_brand_text"),
		BackgroundColor:   formString(r, "background_color"),
		TextColor:         formString(r, "text_color"),
		HoverColor:        formString(r, "hover_color"),
		BorderColor:       formString(r, "border_color"),
		EnableSearch:      formBool(r, "enable_search"),
		SearchPlaceholder: formString(r, "search_placeholder"),
		IsSticky:          formBool(r, "is_sticky"),
		ShowBelowHeader:   formBool(r, "show_below_header"),
	}
	return navbar, errors, formValues
}

func (h *SiteConfigHandler) renderNavbarForm(w http.ResponseWriter, r *http.Request, navbar *model.NavbarInfo, errors, formValues map[string]string) {
	title := "New Navbar"
	if navbar != nil {
		title = "Edit Navbar"
	}
	h.renderConfigForm(w, r, "admin/navbars_form", title, "Navbars", redirectAdminNavbars, NavbarFormData{
		Navbar:     navbar,
		Errors:     errors,
		FormValues: formValues,
		IsEdit:     navbar != nil,
	})
}

// --- Colleges ---

// CollegesListData holds data for the college infos list template.
type CollegesListData struct {
	Colleges []model.CollegeInfo
}

// CollegeFormData holds data for the college info form template.
type CollegeFormData struct {
	College    *model.CollegeInfo
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// ListColleges handles GET /admin/colleges.
func (h *SiteConfigHandler) ListColleges(w http.ResponseWriter, r *http.Request) {
	colleges, err := h.queries.ListCollegeInfos(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list college infos", "error", err)
		return
	}
	h.renderList(w, r, "admin/colleges_list", "College Info", redirectAdminColleges, CollegesListData{Colleges: colleges})
}

// NewCollegeForm handles GET /admin/colleges/new.
func (h *SiteConfigHandler) NewCollegeForm(w http.ResponseWriter, r *http.Request) {
	h.renderCollegeForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// CreateCollege handles POST /admin/colleges.
func (h *SiteConfigHandler) CreateCollege(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminColleges+RouteSuffixNew) {
		return
	}

	college, errors, formValues := collegeFromForm(r)
	if len(errors) > 0 {
		h.renderCollegeForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateCollegeInfo(r.Context(), college)
	if err != nil {
		slog.Error("failed to create college info", "error", err)
		flashError(w, r, h.renderer, redirectAdminColleges+RouteSuffixNew, "Error creating college record")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyCollegeInfo)
	slog.Info("college info created", "category", "config", "college_id", created.ID)
	flashSuccess(w, r, h.renderer, redirectAdminColleges, "College record created successfully")
}

// EditCollegeForm handles GET /admin/colleges/{id}.
func (h *SiteConfigHandler) EditCollegeForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminColleges, "Invalid college ID")
		return
	}

	college, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminColleges, "college record", id,
		func(id int64) (model.CollegeInfo, error) { return h.queries.GetCollegeInfoByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderCollegeForm(w, r, &college, make(map[string]string), make(map[string]string))
}

// UpdateCollege handles POST /admin/colleges/{id}.
func (h *SiteConfigHandler) UpdateCollege(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminColleges, "Invalid college ID")
		return
	}
	collegeURL := fmt.Sprintf("%s/%d", redirectAdminColleges, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminColleges, "college record", id,
		func(id int64) (model.CollegeInfo, error) { return h.queries.GetCollegeInfoByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, collegeURL) {
		return
	}

	college, errors, formValues := collegeFromForm(r)
	if len(errors) > 0 {
		h.renderCollegeForm(w, r, &existing, errors, formValues)
		return
	}
	college.ID = id

	if _, err := h.queries.UpdateCollegeInfo(r.Context(), college); err != nil {
		slog.Error("failed to update college info", "error", err, "college_id", id)
		flashError(w, r, h.renderer, collegeURL, "Error updating college record")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyCollegeInfo)
	slog.Info("college info updated", "category", "config", "college_id", id)
	flashSuccess(w, r, h.renderer, collegeURL, "College record updated successfully")
}

// DeleteCollege handles POST /admin/colleges/{id}/delete.
func (h *SiteConfigHandler) DeleteCollege(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminColleges, "Invalid college ID")
		return
	}

	if err := h.queries.DeleteCollegeInfo(r.Context(), id); err != nil {
		slog.Error("failed to delete college info", "error", err, "college_id", id)
		flashError(w, r, h.renderer, redirectAdminColleges, "Error deleting college record")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyCollegeInfo)
	slog.Info("college info deleted", "category", "config", "college_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminColleges, "College record deleted successfully")
}

// ActivateCollege handles POST /admin/colleges/{id}/activate.
func (h *SiteConfigHandler) ActivateCollege(w http.ResponseWriter, r *http.Request) {
	h.activateByID(w, r, model.FamilyCollegeInfo, redirectAdminColleges)
}

// DeactivateCollege handles POST /admin/colleges/{id}/deactivate.
func (h *SiteConfigHandler) DeactivateCollege(w http.ResponseWriter, r *http.Request) {
	h.deactivateByID(w, r, model.FamilyCollegeInfo, redirectAdminColleges)
}

func collegeFromForm(r *http.Request) (model.CollegeInfo, map[string]string, map[string]string) {
	name := formString(r, "name")
	slug := formString(r, "slug")

	formValues := map[string]string{
		"name": name,
		"slug": slug,
	}

	errors := make(map[string]string)

	if name == "" {
		errors["name"] = "Name is required"
	}
	if slug == "" {
		slug = util.Slugify(name)
		formValues["slug"] = slug
	}
	if slug != "" && !util.IsValidSlug(slug) {
		errors["slug"] = "Invalid slug format"
	}

	college := model.CollegeInfo{
		Name:              name,
		Slug:              slug,
		EstablishmentYear: formInt64(r, "establishment_year", 0),
		Affiliation:       formString(r, "affiliation"),
		Address:           formString(r, "address"),
		Email:             formString(r, "email"),
		Phone:             formString(r, "phone"),

		MissionShort:     formString(r, "mission_short"),
		MissionLong:      formString(r, "mission_long"),
		FounderName:      formString(r, "founder_name"),
		FounderMessage:   formString(r, "founder_message"),
		PrincipalName:    formString(r, "principal_name"),
		PrincipalMessage: formString(r, "principal_message"),

		CoursesCount:      formString(r, "courses_count"),
		StudentsCount:     formString(r, "students_count"),
		FacultyStaffCount: formString(r, "faculty_staff_count"),
		YearsOfExcellence: formString(r, "years_of_excellence"),
		NAACGrade:         formString(r, "naac_grade"),
		IICRating:         formString(r, "iic_rating"),

		FacebookURL:  formString(r, "facebook_url"),
		YouTubeURL:   formString(r, "youtube_url"),
		InstagramURL: formString(r, "instagram_url"),
		Logo:         formString(r, "logo"),
		HeroImage:    formString(r, "hero_image"),
	}
	return college, errors, formValues
}

func (h *SiteConfigHandler) renderCollegeForm(w http.ResponseWriter, r *http.Request, college *model.CollegeInfo, errors, formValues map[string]string) {
	title := "New College Record"
	if college != nil {
		title = "Edit College Record"
	}
	h.renderConfigForm(w, r, "admin/colleges_form", title, "College Info", redirectAdminColleges, CollegeFormData{
		College:    college,
		Errors:     errors,
		FormValues: formValues,
		IsEdit:     college != nil,
	})
}

// --- shared ---

func (h *SiteConfigHandler) activateByID(w http.ResponseWriter, r *http.Request, f model.Family, redirectURL string) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectURL, "Invalid record ID")
		return
	}
	activateRecord(w, r, h.renderer, h.activation, f, id, redirectURL)
}

func (h *SiteConfigHandler) deactivateByID(w http.ResponseWriter, r *http.Request, f model.Family, redirectURL string) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectURL, "Invalid record ID")
		return
	}
	deactivateRecord(w, r, h.renderer, h.activation, f, id, redirectURL)
}

func (h *SiteConfigHandler) renderList(w http.ResponseWriter, r *http.Request, template, label, url string, data any) {
	if err := h.renderer.Render(w, r, template, render.TemplateData{
		Title: label,
		User:  middleware.GetUser(r),
		Data:  data,
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: label, URL: url, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

func (h *SiteConfigHandler) renderConfigForm(w http.ResponseWriter, r *http.Request, template, title, label, url string, data any) {
	if err := h.renderer.Render(w, r, template, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: label, URL: url},
			{Label: title, URL: "", Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
