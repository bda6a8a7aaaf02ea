package model

const (
	// Rating
	MinRating = 0.0
	MaxRating = 10.0

	MaxTitleLength  = 255
	MaxImgURLLength = 255
)
