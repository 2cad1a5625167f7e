// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ActivationMode selects how a singleton-active family resolves a write
// that would produce a second active record.
type ActivationMode string

const (
	// ModePromotional demotes the current active record automatically.
	ModePromotional ActivationMode = "promotional"
	// ModeStrict rejects the write with a field error while a
	// competitor is active.
	ModeStrict ActivationMode = "strict"
)

// Family identifies a singleton-active configuration family. At most
// one record per family may be active at any time.
type Family string

// Singleton-active families.
const (
	FamilyUtilityBar       Family = "utility_bar"
	FamilyHeaderInfo       Family = "header_info"
	FamilyNavbarInfo       Family = "navbar_info"
	FamilyCollegeInfo      Family = "college_info"
	FamilyDirectorMessage  Family = "director_message"
	FamilyPrincipalMessage Family = "principal_message"
	FamilyVisionMission    Family = "vision_mission"
	FamilyHeroCarousel     Family = "hero_carousel"
	FamilyNAACInfo         Family = "naac_info"
	FamilyNIRFInfo         Family = "nirf_info"
	FamilyIQACInfo         Family = "iqac_info"
	FamilyAccreditation    Family = "accreditation"
	FamilyExamRules        Family = "exam_rules"
	FamilyRevaluation      Family = "revaluation"
	FamilyResearchCenter   Family = "research_center"
	FamilyPublicationInfo  Family = "publication_info"
	FamilyPatentsProjects  Family = "patents_projects"
	FamilyConsultancy      Family = "consultancy"
)

// PanelFamilies are the families stored in the shared config_panels
// table. They all use promotional activation.
var PanelFamilies = []Family{
	FamilyNAACInfo, FamilyNIRFInfo, FamilyIQACInfo, FamilyAccreditation,
	FamilyExamRules, FamilyRevaluation, FamilyResearchCenter,
	FamilyPublicationInfo, FamilyPatentsProjects, FamilyConsultancy,
}

// IsPanelFamily reports whether f lives in the config_panels table.
func IsPanelFamily(f Family) bool {
	for _, p := range PanelFamilies {
		if p == f {
			return true
		}
	}
	return false
}

// Utility bar positions.
const (
	PositionTop         = "top"
	PositionBelowHeader = "below_header"
)

// UtilityBar configures the thin bar above or below the site header.
// Promotional family: activating one demotes the others.
type UtilityBar struct {
	ID              int64
	Name            string
	IsActive        bool
	BackgroundColor string
	TextColor       string
	Height          int64
	Position        string

	ShowSocialIcons bool
	EnableFacebook  bool
	FacebookURL     string
	EnableTwitter   bool
	TwitterURL      string
	EnableInstagram bool
	InstagramURL    string
	EnableYouTube   bool
	YouTubeURL      string
	EnableLinkedIn  bool
	LinkedInURL     string

	ShowContactInfo bool
	ContactPhone    string
	ContactEmail    string

	// Legacy fixed link slots, kept ahead of the dynamic custom_links
	// rows when both are populated.
	ShowCustomLinks bool
	Link1Text       string
	Link1URL        string
	Link2Text       string
	Link2URL        string
	Link3Text       string
	Link3URL        string

	ShowOnMobile    bool
	MobileCollapsed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomLink is a dynamic link row owned by a utility bar.
type CustomLink struct {
	ID           int64
	UtilityBarID int64
	Text         string
	URL          string
	IconClass    string
	Tooltip      string
	OpenInNewTab bool
	Ordering     int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SocialLink is a derived social-media entry for templates.
type SocialLink struct {
	Platform string
	URL      string
	Icon     string
}

// LinkEntry is a derived text+URL pair for templates.
type LinkEntry struct {
	Text      string
	URL       string
	IconClass string
}

// SocialLinks returns the enabled social links of the bar in a fixed
// platform order.
func (b *UtilityBar) SocialLinks() []SocialLink {
	var links []SocialLink
	add := func(enabled bool, platform, url, icon string) {
		if enabled && url != "" {
			links = append(links, SocialLink{Platform: platform, URL: url, Icon: icon})
		}
	}
	add(b.EnableFacebook, "facebook", b.FacebookURL, "fab fa-facebook-f")
	add(b.EnableTwitter, "twitter", b.TwitterURL, "fab fa-twitter")
	add(b.EnableInstagram, "instagram", b.InstagramURL, "fab fa-instagram")
	add(b.EnableYouTube, "youtube", b.YouTubeURL, "fab fa-youtube")
	add(b.EnableLinkedIn, "linkedin", b.LinkedInURL, "fab fa-linkedin-in")
	return links
}

// LegacyLinks returns the populated fixed link slots in slot order.
func (b *UtilityBar) LegacyLinks() []LinkEntry {
	var links []LinkEntry
	for _, pair := range [][2]string{
		{b.Link1Text, b.Link1URL},
		{b.Link2Text, b.Link2URL},
		{b.Link3Text, b.Link3URL},
	} {
		if pair[0] != "" && pair[1] != "" {
			links = append(links, LinkEntry{Text: pair[0], URL: pair[1]})
		}
	}
	return links
}

// Header layouts.
const (
	LayoutCentered    = "centered"
	LayoutLeftRight   = "left_right"
	LayoutThreeColumn = "three_column"
)

// HeaderInfo configures the site masthead. Strict family: saving a
// second active record is rejected.
type HeaderInfo struct {
	ID int64

	CollegeName       string
	NameFontSize      int64
	NameFontWeight    string
	NameFontFamily    string
	NameColor         string
	ShowCollegeName   bool
	Address           string
	AddressColor      string
	ShowAddress       bool
	Affiliations      string
	AffiliationsColor string
	ShowAffiliations  bool

	Email           string
	Phone           string
	WebsiteURL      string
	ShowContactInfo bool

	LogoLeft     string
	LogoLeftAlt  string
	LogoRight    string
	LogoRightAlt string
	LogoSize     int64

	FacebookURL     string
	YouTubeURL      string
	InstagramURL    string
	TwitterURL      string
	LinkedInURL     string
	WhatsAppNumber  string
	ShowSocialLinks bool

	Layout          string
	BackgroundColor string
	BorderBottom    bool
	BorderColor     string
	Shadow          bool

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NavbarInfo configures the primary navigation bar. Strict family.
type NavbarInfo struct {
	ID                int64
	BrandName         string
	BrandSubtitle     string
	Logo              string
	ShowLogo          bool
	ShowBrandText     bool
	BackgroundColor   string
	TextColor         string
	HoverColor        string
	BorderColor       string
	EnableSearch      bool
	SearchPlaceholder string
	IsSticky          bool
	ShowBelowHeader   bool
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CollegeInfo holds the institution's master record. Strict family.
type CollegeInfo struct {
	ID                int64
	Name              string
	Slug              string
	EstablishmentYear int64
	Affiliation       string
	Address           string
	Email             string
	Phone             string

	MissionShort     string
	MissionLong      string
	FounderName      string
	FounderMessage   string
	PrincipalName    string
	PrincipalMessage string

	CoursesCount      string
	StudentsCount     string
	FacultyStaffCount string
	YearsOfExcellence string
	NAACGrade         string
	IICRating         string

	FacebookURL  string
	YouTubeURL   string
	InstagramURL string
	Logo         string
	HeroImage    string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Leadership roles stored in the leadership_messages table.
const (
	RoleDirector  = "director"
	RolePrincipal = "principal"
)

// LeadershipMessage is a director's or principal's message page record.
// Each role is its own strict family scoped by the Role column.
type LeadershipMessage struct {
	ID               int64
	Role             string
	Name             string
	Designation      string
	Qualifications   string
	ExperienceYears  int64
	MessageTitle     string
	MessageContent   string
	Vision           string
	Achievements     string
	ProfilePhoto     string
	Email            string
	Phone            string
	LinkedInURL      string
	TwitterURL       string
	FacebookURL      string
	ShowOnHomepage   bool
	ShowAchievements bool
	ShowContactInfo  bool
	MetaDescription  string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VisionMission holds the vision/mission/core-values content. Strict family.
type VisionMission struct {
	ID         int64
	Title      string
	Vision     string
	Mission    string
	CoreValues string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HeroCarouselSettings configures the homepage carousel. Promotional family.
type HeroCarouselSettings struct {
	ID             int64
	Name           string
	Autoplay       bool
	IntervalMillis int64
	ShowIndicators bool
	ShowCaptions   bool
	Transition     string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ConfigPanel is a shared payload row for the long-tail info families
// (NAAC, NIRF, IQAC, accreditation, exam rules, revaluation, research
// center, publications, patents/projects, consultancy). The Family
// column scopes the singleton-active invariant. Promotional activation.
type ConfigPanel struct {
	ID           int64
	Family       Family
	Title        string
	ContentHTML  string
	DocumentPath string
	ContactEmail string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
