package models

type Theme struct {
	SiteName       string `json:"siteName"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

func (t Theme) IsZero() bool {
	return t == Theme{}
}
