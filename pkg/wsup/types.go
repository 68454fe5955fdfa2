package wsup

import "strconv"

// AppID identifies the application (game) a workshop item belongs to.
type AppID uint32

// String returns the decimal form of the id.
func (id AppID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// PublishedFileID identifies a workshop item on the platform.
type PublishedFileID uint64

// String returns the decimal form of the id.
func (id PublishedFileID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParsePublishedFileID parses the decimal form produced by String.
func ParsePublishedFileID(s string) (PublishedFileID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return PublishedFileID(v), nil
}

// ItemPageURL returns the public page of a workshop item.
func ItemPageURL(id PublishedFileID) string {
	return "https://steamcommunity.com/sharedfiles/filedetails/?id=" + id.String()
}
