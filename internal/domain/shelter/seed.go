package shelter

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCatalog arma el catálogo inicial que se siembra en el primer arranque,
// cuando la copia durable todavía no tiene perros.
func DefaultCatalog(now time.Time) []Dog {
	seed := []Dog{
		{
			Name: "Buddy", Breed: "Golden Retriever", Age: 3,
			Size: SizeLarge, Gender: GenderMale,
			Description: "Friendly and energetic, loves long walks and fetch.",
			Personality: "Playful, loyal, great with kids",
			ImageURL:    "https://images.unsplash.com/photo-1552053831-71594a27632d",
		},
		{
			Name: "Luna", Breed: "German Shepherd", Age: 2,
			Size: SizeLarge, Gender: GenderFemale,
			Description: "Smart and protective, already knows basic commands.",
			Personality: "Alert, intelligent, affectionate",
			ImageURL:    "https://images.unsplash.com/photo-1589941013453-ec89f33b5e95",
		},
		{
			Name: "Max", Breed: "Beagle", Age: 5,
			Size: SizeMedium, Gender: GenderMale,
			Description: "Calm senior-in-training who enjoys sniffing everything.",
			Personality: "Curious, easygoing, food motivated",
			ImageURL:    "https://images.unsplash.com/photo-1505628346881-b72b27e84530",
		},
		{
			Name: "Daisy", Breed: "Labrador Mix", Age: 1,
			Size: SizeMedium, Gender: GenderFemale,
			Description: "Young mix full of energy, needs an active family.",
			Personality: "Bouncy, social, eager to please",
			ImageURL:    "https://images.unsplash.com/photo-1543466835-00a7907e9de1",
		},
		{
			Name: "Rocky", Breed: "Bulldog", Age: 4,
			Size: SizeMedium, Gender: GenderMale,
			Description: "Couch companion, short walks and long naps.",
			Personality: "Mellow, stubborn, snores",
			ImageURL:    "https://images.unsplash.com/photo-1583337130417-3346a1be7dee",
		},
		{
			Name: "Coco", Breed: "Poodle", Age: 7,
			Size: SizeSmall, Gender: GenderFemale,
			Description: "Gentle lap dog looking for a quiet home.",
			Personality: "Sweet, calm, a bit shy at first",
			ImageURL:    "https://images.unsplash.com/photo-1616149562385-1d84e79478a3",
		},
	}

	for i := range seed {
		seed[i].ID = uuid.NewString()
		seed[i].Status = StatusAvailable
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
	}
	return seed
}
