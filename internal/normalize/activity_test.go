package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/providers"
)

func rawActivity(id string, price float64) providers.RawActivity {
	return providers.RawActivity{
		ID:              id,
		Title:           "Canal Cruise",
		SupplierName:    "Blue Boat Company",
		Location:        providers.RawActivityLocation{Name: "Amsterdam", Country: "Netherlands"},
		RetailPrice:     price,
		Currency:        "EUR",
		OverallRating:   4.6,
		NumberOfRatings: 812,
		Duration:        "PT1H15M",
	}
}

func TestActivities(t *testing.T) {
	raw := rawActivity("act_1", 32.50)
	raw.Categories = []providers.RawCategory{{ID: "cruises", Name: "Cruises"}}
	raw.InstantConfirmation = true

	offers := Activities(&providers.ActivityPayload{Activities: []providers.RawActivity{raw}})
	require.Len(t, offers, 1)

	offer := offers[0]
	assert.Equal(t, models.OfferKindActivity, offer.Kind)
	assert.Equal(t, 32.50, offer.Price.Amount)
	assert.Equal(t, "Blue Boat Company", offer.Activity.Supplier)
	assert.Equal(t, 75, offer.Activity.Duration.Minutes)
	assert.Equal(t, "1h 15min", offer.Activity.Duration.Formatted)
	assert.Equal(t, 4.6, offer.Activity.Rating.Average)
	assert.True(t, offer.Activity.InstantConfirmation)
	assert.Nil(t, offer.Activity.DiscountPercent)
}

func TestActivitiesDiscount(t *testing.T) {
	tests := []struct {
		name     string
		retail   float64
		original *float64
		want     *int
	}{
		{"quarter off", 75, ptr(100.0), ptrInt(25)},
		{"rounded", 80, ptr(120.0), ptrInt(33)},
		{"no original price", 75, nil, nil},
		{"original not higher", 75, ptr(75.0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawActivity("act_d", tt.retail)
			raw.OriginalRetailPrice = tt.original

			offers := Activities(&providers.ActivityPayload{Activities: []providers.RawActivity{raw}})
			require.Len(t, offers, 1)

			got := offers[0].Activity.DiscountPercent
			if tt.want == nil {
				assert.Nil(t, got, "discount must be absent, not zero")
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestActivitiesImageSelection(t *testing.T) {
	raw := rawActivity("act_img", 20)
	raw.Pictures = []providers.RawPicture{
		// Wide variant wins over the first one.
		{Variants: []providers.RawPictureVariant{
			{URL: "https://img.test/small.jpg", Width: 320},
			{URL: "https://img.test/large.jpg", Width: 800},
		}},
		// No wide variant: first is kept.
		{Variants: []providers.RawPictureVariant{
			{URL: "https://img.test/only-small.jpg", Width: 200},
		}},
		// Nothing usable: dropped.
		{Variants: []providers.RawPictureVariant{{URL: "", Width: 1024}}},
		{},
	}

	offers := Activities(&providers.ActivityPayload{Activities: []providers.RawActivity{raw}})
	require.Len(t, offers, 1)
	assert.Equal(t, []string{
		"https://img.test/large.jpg",
		"https://img.test/only-small.jpg",
	}, offers[0].Activity.Images)
}

func TestActivitiesDurationRange(t *testing.T) {
	raw := rawActivity("act_r", 45)
	raw.Duration = ""
	raw.DurationRange = &providers.RawDurationRange{Min: "PT1H", Max: "PT2H30M"}

	offers := Activities(&providers.ActivityPayload{Activities: []providers.RawActivity{raw}})
	require.Len(t, offers, 1)

	d := offers[0].Activity.Duration
	assert.Equal(t, 0, d.Minutes)
	assert.Equal(t, 60, d.MinMinutes)
	assert.Equal(t, 150, d.MaxMinutes)
	assert.Equal(t, "1h - 2h 30min", d.Formatted)
}

func TestActivitiesUnknownDuration(t *testing.T) {
	raw := rawActivity("act_u", 45)
	raw.Duration = ""

	offers := Activities(&providers.ActivityPayload{Activities: []providers.RawActivity{raw}})
	require.Len(t, offers, 1)
	assert.Equal(t, models.ActivityDuration{}, offers[0].Activity.Duration)
}

func TestActivitiesDropsMalformedRecords(t *testing.T) {
	payload := &providers.ActivityPayload{Activities: []providers.RawActivity{
		rawActivity("", 20),
		rawActivity("act_free", 0),
		rawActivity("act_ok", 25),
	}}

	offers := Activities(payload)
	require.Len(t, offers, 1)
	assert.Equal(t, "act_ok", offers[0].ID)
}

func ptr(f float64) *float64 { return &f }
func ptrInt(i int) *int      { return &i }
