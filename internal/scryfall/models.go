package scryfall

// Card is the subset of a Scryfall card object this service consumes.
type Card struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	SetCode         string     `json:"set"`
	CollectorNumber string     `json:"collector_number"`
	Layout          string     `json:"layout"`
	ImageURIs       *ImageURIs `json:"image_uris,omitempty"`
	CardFaces       []CardFace `json:"card_faces,omitempty"`
}

// CardFace represents one face of a multi-faced card. Double-faced
// cards carry their images on the faces instead of the card itself.
type CardFace struct {
	Name      string     `json:"name"`
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// ImageURL returns the best available artwork URL for the card:
// the card-level image first, then the first face of a multi-faced
// card, preferring normal over png over large over small. Returns ""
// when no image exists.
func (c *Card) ImageURL() string {
	if url := c.ImageURIs.pick(); url != "" {
		return url
	}
	if len(c.CardFaces) > 0 {
		return c.CardFaces[0].ImageURIs.pick()
	}
	return ""
}

func (i *ImageURIs) pick() string {
	if i == nil {
		return ""
	}
	for _, url := range []string{i.Normal, i.PNG, i.Large, i.Small} {
		if url != "" {
			return url
		}
	}
	return ""
}
