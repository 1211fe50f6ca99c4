package models

import "time"

// Category classifies a Source into one of the fixed newsletter sections.
type Category string

const (
	CategoryInternal      Category = "internal"
	CategoryChallenges    Category = "challenges"
	CategoryKeyActivities Category = "key activities"
	CategoryWins          Category = "wins"
	CategoryUpdates       Category = "updates"
	CategoryGeneral       Category = "general"
)

// Categories lists every valid Category, in the order prompts present them.
var Categories = []Category{
	CategoryInternal,
	CategoryChallenges,
	CategoryKeyActivities,
	CategoryWins,
	CategoryUpdates,
	CategoryGeneral,
}

func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Circle is an optional organizational grouping, independent of Category.
type Circle string

const (
	CircleAnalytics     Circle = "Analytics"
	CircleBizDev        Circle = "BizDev"
	CircleOperations    Circle = "Operations"
	CircleEvents        Circle = "Events"
	CircleMarketing     Circle = "Marketing"
	CircleReview        Circle = "Review"
	CircleDocumentation Circle = "Documentation"
	CircleOnboarding    Circle = "Onboarding"
	CircleLab           Circle = "Lab"
	CircleDevOutreach   Circle = "DevOutreach"
)

// Circles lists every valid Circle, in the order prompts present them.
var Circles = []Circle{
	CircleAnalytics,
	CircleBizDev,
	CircleOperations,
	CircleEvents,
	CircleMarketing,
	CircleReview,
	CircleDocumentation,
	CircleOnboarding,
	CircleLab,
	CircleDevOutreach,
}

func (c Circle) IsValid() bool {
	for _, v := range Circles {
		if c == v {
			return true
		}
	}
	return false
}

// Source is a processed, categorized content record. Content, Circle, URL,
// ImageURL and Contributor are optional and omitted entirely when absent —
// they never persist as empty-string placeholders.
type Source struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	Summary      string    `json:"summary"`
	Category     Category  `json:"category"`
	Circle       Circle    `json:"circle,omitempty"`
	URL          string    `json:"url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Contributor  string    `json:"contributor,omitempty"`
	IsBookmarked bool      `json:"is_bookmarked,omitempty"`
}
