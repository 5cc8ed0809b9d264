package member

import "time"

// Photo is the canonical image pair. Older documents carried the URL under
// image/photoUrl/profilePhoto; the repository collapses those on read.
type Photo struct {
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
	ThumbURL string `bson:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
}

// Member is a club member document.
type Member struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Role       string    `bson:"role" json:"role"`
	Department string    `bson:"department,omitempty" json:"department,omitempty"`
	Year       string    `bson:"year,omitempty" json:"year,omitempty"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Photo      Photo     `bson:"photo,omitempty" json:"photo"`
	Bio        string    `bson:"bio,omitempty" json:"bio,omitempty"`
	JoinedAt   time.Time `bson:"joinedAt" json:"joinedAt"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// memberDoc carries the legacy field aliases still present in old documents.
type memberDoc struct {
	Member       `bson:",inline"`
	Image        string `bson:"image,omitempty"`
	PhotoURL     string `bson:"photoUrl,omitempty"`
	ProfilePhoto *Photo `bson:"profilePhoto,omitempty"`
}

// normalized resolves alias chains into the canonical shape, once, at the
// repository boundary.
func (d memberDoc) normalized() Member {
	m := d.Member
	if m.Photo.URL == "" {
		switch {
		case d.ProfilePhoto != nil && d.ProfilePhoto.URL != "":
			m.Photo = *d.ProfilePhoto
		case d.Image != "":
			m.Photo.URL = d.Image
		case d.PhotoURL != "":
			m.Photo.URL = d.PhotoURL
		}
	}
	return m
}
