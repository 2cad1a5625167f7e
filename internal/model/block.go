// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Content block kinds. KindRank fixes the tiebreak order applied when
// two blocks on a page share the same ordering integer.
const (
	BlockRichText  = "rich_text"
	BlockGallery   = "gallery"
	BlockVideo     = "video"
	BlockDownloads = "downloads"
	BlockTable     = "table"
	BlockForm      = "form"
)

// BlockKinds lists all block kinds in tiebreak order.
var BlockKinds = []string{
	BlockRichText,
	BlockGallery,
	BlockVideo,
	BlockDownloads,
	BlockTable,
	BlockForm,
}

// Video providers.
const (
	ProviderYouTube = "youtube"
	ProviderVimeo   = "vimeo"
	ProviderOther   = "other"
)

// VideoProviders contains all valid video providers.
var VideoProviders = []string{ProviderYouTube, ProviderVimeo, ProviderOther}

// Form kinds selectable by a form block.
const (
	FormContact      = "contact"
	FormRegistration = "registration"
	FormFeedback     = "feedback"
)

// FormKinds contains all valid form kinds.
var FormKinds = []string{FormContact, FormRegistration, FormFeedback}

// ContentBlock is a single row of the tagged block union. The Kind tag
// selects which payload columns are meaningful:
//
//	rich_text: Body
//	gallery:   (gallery_images rows)
//	video:     Provider, VideoURL, EmbedCode
//	downloads: (download_files rows)
//	table:     HTML
//	form:      FormKind
type ContentBlock struct {
	ID        int64
	PageID    int64
	Kind      string
	Title     string
	Ordering  int64
	IsActive  bool
	Body      string
	Provider  string
	VideoURL  string
	EmbedCode string
	HTML      string
	FormKind  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KindRank returns the tiebreak rank of a block kind. Unknown kinds sort last.
func KindRank(kind string) int {
	for i, k := range BlockKinds {
		if k == kind {
			return i
		}
	}
	return len(BlockKinds)
}

// IsValidBlockKind checks a kind tag against the closed set.
func IsValidBlockKind(k string) bool {
	return KindRank(k) < len(BlockKinds)
}

// IsValidVideoProvider checks a provider tag against the closed set.
func IsValidVideoProvider(p string) bool {
	for _, v := range VideoProviders {
		if v == p {
			return true
		}
	}
	return false
}

// IsValidFormKind checks a form kind against the closed set.
func IsValidFormKind(k string) bool {
	for _, v := range FormKinds {
		if v == k {
			return true
		}
	}
	return false
}

// GalleryImage is an ordered image row owned by a gallery block.
type GalleryImage struct {
	ID        int64
	BlockID   int64
	ImagePath string
	Caption   string
	Ordering  int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DownloadFile is an ordered file row owned by a downloads block.
type DownloadFile struct {
	ID          int64
	BlockID     int64
	FilePath    string
	Title       string
	Description string
	Ordering    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
