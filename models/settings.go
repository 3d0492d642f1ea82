package models

// StudioSettings describes the studio: about text, client list,
// services offered and recognitions received.
type StudioSettings struct {
	About        string   `json:"about"`
	Clients      []string `json:"clients"`
	Services     []string `json:"services"`
	Recognitions []string `json:"recognitions"`
}

// ContactSettings holds the contact call-to-action buttons.
type ContactSettings struct {
	Buttons []LinkButton `json:"buttons"`
}

// Settings is the site-wide singleton settings document.
type Settings struct {
	Studio  StudioSettings  `json:"studio"`
	Contact ContactSettings `json:"contact"`
}
