package enums

import "fmt"

// CategoryKind scopes a category to movies, series, or both.
type CategoryKind string

const (
	CategoryKindMovie  CategoryKind = "movie"
	CategoryKindSeries CategoryKind = "series"
	CategoryKindBoth   CategoryKind = "both"
)

var validCategoryKinds = []CategoryKind{
	CategoryKindMovie,
	CategoryKindSeries,
	CategoryKindBoth,
}

// String implements fmt.Stringer.
func (c CategoryKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CategoryKind.
func (c CategoryKind) IsValid() bool {
	for _, candidate := range validCategoryKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// Accepts reports whether a category of this kind may hold the given media type.
func (c CategoryKind) Accepts(mediaType MediaType) bool {
	switch c {
	case CategoryKindBoth:
		return mediaType.IsValid()
	case CategoryKindMovie:
		return mediaType == MediaTypeMovie
	case CategoryKindSeries:
		return mediaType == MediaTypeSeries
	}
	return false
}

// ParseCategoryKind converts raw input into a CategoryKind.
func ParseCategoryKind(value string) (CategoryKind, error) {
	for _, candidate := range validCategoryKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category kind %q", value)
}
