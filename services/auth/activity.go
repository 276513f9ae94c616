package auth

import (
	"github.com/mileusna/useragent"
)

// ParseLoginActivity builds a LoginActivity from the raw request
// metadata, classifying the client from its User-Agent header.
func ParseLoginActivity(userID, ip, rawUserAgent string) *LoginActivity {
	ua := useragent.Parse(rawUserAgent)

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	return &LoginActivity{
		UserID:  userID,
		IP:      ip,
		Browser: ua.Name,
		OS:      ua.OS,
		Device:  device,
	}
}
