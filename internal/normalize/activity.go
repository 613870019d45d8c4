package normalize

import (
	"math"

	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/providers"
	"github.com/voyagerhq/tripsearch/pkg/currency"
)

// minImageWidth is the preferred lower bound for picked image variants.
const minImageWidth = 600

// Activities converts a raw activity payload into canonical offers.
func Activities(payload *providers.ActivityPayload) []models.Offer {
	if payload == nil {
		return []models.Offer{}
	}

	offers := make([]models.Offer, 0, len(payload.Activities))
	for _, raw := range payload.Activities {
		offer, ok := activityOffer(raw)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func activityOffer(raw providers.RawActivity) (models.Offer, bool) {
	if raw.ID == "" || raw.RetailPrice <= 0 {
		return models.Offer{}, false
	}

	activity := &models.ActivityOffer{
		Title:       raw.Title,
		Summary:     raw.Abstract,
		Description: raw.Description,
		Supplier:    raw.SupplierName,
		Location: models.Location{
			Name: raw.Location.Name,
			City: raw.Location.Country,
		},
		Images: selectImages(raw.Pictures),
		Rating: models.Rating{
			Average:     raw.OverallRating,
			ReviewCount: raw.NumberOfRatings,
		},
		Duration:            activityDuration(raw),
		Tags:                raw.Tags,
		InstantConfirmation: raw.InstantConfirmation,
		FreeCancellation:    raw.FreeCancellation,
	}

	for _, c := range raw.Categories {
		activity.Categories = append(activity.Categories, models.Category{ID: c.ID, Name: c.Name})
	}

	if raw.OriginalRetailPrice != nil && *raw.OriginalRetailPrice > raw.RetailPrice {
		original := *raw.OriginalRetailPrice
		activity.OriginalPrice = &models.Money{
			Amount:    original,
			Currency:  raw.Currency,
			Formatted: currency.Format(original, raw.Currency),
		}
		pct := int(math.Round((original - raw.RetailPrice) / original * 100))
		activity.DiscountPercent = &pct
	}

	return models.Offer{
		ID:   raw.ID,
		Kind: models.OfferKindActivity,
		Price: models.Money{
			Amount:    raw.RetailPrice,
			Currency:  raw.Currency,
			Formatted: currency.Format(raw.RetailPrice, raw.Currency),
		},
		Activity: activity,
	}, true
}

// selectImages picks one URL per picture: the first variant at least 600px
// wide, else the first variant. Pictures with no usable variant are dropped;
// an offer may legitimately end up with no images.
func selectImages(pictures []providers.RawPicture) []string {
	images := make([]string, 0, len(pictures))
	for _, pic := range pictures {
		url := ""
		for _, v := range pic.Variants {
			if v.URL == "" {
				continue
			}
			if url == "" {
				url = v.URL
			}
			if v.Width >= minImageWidth {
				url = v.URL
				break
			}
		}
		if url != "" {
			images = append(images, url)
		}
	}
	return images
}

// activityDuration resolves the fixed-duration field first, then the
// min/max range, and reports unknown when neither parses.
func activityDuration(raw providers.RawActivity) models.ActivityDuration {
	if minutes, ok := ParseISODuration(raw.Duration); ok && minutes > 0 {
		return models.ActivityDuration{
			Minutes:   minutes,
			Formatted: FormatMinutes(minutes),
		}
	}

	if raw.DurationRange != nil {
		low, okLow := ParseISODuration(raw.DurationRange.Min)
		high, okHigh := ParseISODuration(raw.DurationRange.Max)
		if okLow && okHigh && low > 0 && high > 0 {
			return models.ActivityDuration{
				MinMinutes: low,
				MaxMinutes: high,
				Formatted:  FormatMinutesRange(low, high),
			}
		}
	}

	return models.ActivityDuration{}
}
