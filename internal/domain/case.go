package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rarity classifies reward items from most to least common.
type Rarity string

// Rarity tiers, ordered from most to least common.
// The backend draws rewards with server-side weights; the client only renders tiers.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var rarityTitle = cases.Title(language.English)

// Valid reports whether the rarity is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// RewardItem is a prize held in a case's reward pool ("vegetable").
// Immutable reference data owned by the backend.
type RewardItem struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Emoji         string `json:"emoji"`
	Rarity        Rarity `json:"rarity"`
	RarityDisplay string `json:"rarity_display"`
	Description   string `json:"description,omitempty"`
	Price         int    `json:"price"`
}

// DisplayRarity returns the server-provided rarity label, falling back to a
// title-cased rarity tier when the backend omits it.
func (i RewardItem) DisplayRarity() string {
	if i.RarityDisplay != "" {
		return i.RarityDisplay
	}
	return rarityTitle.String(string(i.Rarity))
}

// Case is a purchasable randomized reward container.
// Immutable once fetched; read-only reference data.
type Case struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       int          `json:"price"`
	ImageURL    string       `json:"image_url,omitempty"`
	Vegetables  []RewardItem `json:"vegetables"`
	IsActive    bool         `json:"is_active"`
}

// OpenResult is the authoritative outcome of a single case open.
// Produced once per open request, consumed by the UI and discarded.
type OpenResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Reward     *RewardItem `json:"reward,omitempty"`
	NewBalance *int        `json:"new_balance,omitempty"`
}
